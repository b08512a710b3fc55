package textprocessor

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	spacesPattern   = regexp.MustCompile(` +`)
	markupReplacer  = strings.NewReplacer("\"", "", "<", " ", ">", " ", "[", " ", "]", " ", "{", " ", "}", " ", "|", " ", "\\", " ")
	spacingReplacer = strings.NewReplacer(",", ", ", ".", ". ")
)

// Clean strips markup left in stored abstracts: quotation marks, HTML tags,
// brackets, pipes and backslashes. It puts a space after commas and periods and
// collapses repeated spaces.
func Clean(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = markupReplacer.Replace(text)
	text = spacingReplacer.Replace(text)
	text = spacesPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "\n ", "\n")
	text = strings.ReplaceAll(text, " \n", "\n")

	return strings.TrimSpace(text)
}
