package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deidaraiorek/deirake/internal/abstracts"
	"github.com/deidaraiorek/deirake/internal/rake"
	"github.com/deidaraiorek/deirake/internal/storage"
)

const diophantine = "Criteria of compatibility of a system of linear Diophantine equations"

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand_Definition(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "deirake", root.Use)

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"extract", "bulk", "serve", "stoplist", "status"}, names)
}

func TestExtractCmd_Flags(t *testing.T) {
	cmd := newExtractCommand()

	tests := []struct {
		name     string
		defValue string
	}{
		{"file", ""},
		{"stoplist", ""},
		{"top", "0"},
		{"graph", "false"},
		{"clean", "false"},
		{"format", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	out, err := execute(t, "", "extract", diophantine)
	require.NoError(t, err)

	assert.Contains(t, out, "Keywords (4):")
	assert.Contains(t, out, "1. 9 linear diophantine equations\n")
	assert.Contains(t, out, "2. 1 criteria\n")
}

func TestExtract_Top(t *testing.T) {
	out, err := execute(t, "", "extract", "--top", "1", diophantine)
	require.NoError(t, err)

	assert.Contains(t, out, "Keywords (1):")
	assert.NotContains(t, out, "criteria")
}

func TestExtract_Graph(t *testing.T) {
	out, err := execute(t, "", "extract", "--graph", diophantine)
	require.NoError(t, err)

	assert.Contains(t, out, "Co-occurrence graph:")
	assert.Contains(t, out, "linear\n\tdiophantine: 1\n\tequations: 1\n\tlinear: 1\n")
}

func TestExtract_JSON(t *testing.T) {
	out, err := execute(t, "", "extract", "--format", "json", diophantine)
	require.NoError(t, err)

	var resp rake.Result
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Keywords, 4)
	assert.Equal(t, "linear diophantine equations", resp.Keywords[0].Phrase)
	assert.Equal(t, []string{"linear", "diophantine", "equations"}, resp.Keywords[0].Words)
}

func TestExtract_YAMLFromStdin(t *testing.T) {
	out, err := execute(t, diophantine, "extract", "--format", "yaml")
	require.NoError(t, err)

	var resp struct {
		Keywords []rake.Keyword `yaml:"keywords"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Keywords, 4)
	assert.Equal(t, 9.0, resp.Keywords[0].Score)
}

func TestExtract_FileAndStoplist(t *testing.T) {
	textPath := writeFile(t, "abstract.txt", "word word")
	stopPath := writeFile(t, "stops.txt", "of\n")

	out, err := execute(t, "", "extract", "--file", textPath, "--stoplist", stopPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1. 4 word word\n")
}

func TestExtract_Clean(t *testing.T) {
	out, err := execute(t, "", "extract", "--clean", "<p>Boolean functions</p>")
	require.NoError(t, err)
	assert.Contains(t, out, "1. 4 boolean functions\n")
}

func TestExtract_Empty(t *testing.T) {
	out, err := execute(t, "", "extract")
	require.NoError(t, err)
	assert.Contains(t, out, "No keywords found.")
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"extract", "--format", "xml", diophantine}},
		{"graph needs text format", []string{"extract", "--graph", "--format", "json", diophantine}},
		{"negative top", []string{"extract", "--top", "-1", diophantine}},
		{"missing file", []string{"extract", "--file", filepath.Join(t.TempDir(), "missing.txt")}},
		{"missing stoplist", []string{"extract", "--stoplist", filepath.Join(t.TempDir(), "missing.txt"), diophantine}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestStoplistCmd(t *testing.T) {
	path := writeFile(t, "stops.txt", "# comment\nOf\na\n")

	out, err := execute(t, "", "stoplist", "--stoplist", path)
	require.NoError(t, err)
	assert.Equal(t, "a\nof\n", out)
}

func TestStoplistCmd_Default(t *testing.T) {
	out, err := execute(t, "", "stoplist")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "the")
}

func TestBulkCmd(t *testing.T) {
	dir := t.TempDir()
	abstractPath := filepath.Join(dir, "abstracts.db")
	keywordPath := filepath.Join(dir, "keywords.db")
	t.Setenv("ABSTRACT_DB_PATH", abstractPath)
	t.Setenv("KEYWORD_DB_PATH", keywordPath)
	t.Setenv("APP_LOG_LEVEL", "error")

	adb, err := abstracts.NewAbstractDB(abstractPath)
	require.NoError(t, err)
	require.NoError(t, adb.SaveAbstract(&abstracts.Abstract{ID: 1, Text: diophantine, Source: "Hulth2003", Type: "Testing"}))
	require.NoError(t, adb.SaveAbstract(&abstracts.Abstract{ID: 2, Text: "Decomposition of Boolean functions", Source: "Hulth2003", Type: "Training"}))
	require.NoError(t, adb.Close())

	out, err := execute(t, "", "bulk", "--type", "Testing", "--workers", "2", "--batch-size", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "abstracts: 1 (sampled 1)")
	assert.Contains(t, out, "extracted: 1")

	kdb, err := storage.NewKeywordDB(keywordPath)
	require.NoError(t, err)
	defer kdb.Close()

	keywords, err := kdb.GetKeywords(context.Background(), 1, "RAKE")
	require.NoError(t, err)
	require.NotEmpty(t, keywords)
	assert.Equal(t, "linear diophantine equations", keywords[0].Phrase)

	keywords, err = kdb.GetKeywords(context.Background(), 2, "RAKE")
	require.NoError(t, err)
	assert.Empty(t, keywords)
}

func TestBulkCmd_InvalidSample(t *testing.T) {
	t.Setenv("ABSTRACT_DB_PATH", filepath.Join(t.TempDir(), "abstracts.db"))

	_, err := execute(t, "", "bulk", "--sample", "1.5")
	assert.Error(t, err)

	_, err = execute(t, "", "bulk", "--batch-size", "0")
	assert.Error(t, err)
}

func TestStatusCmd(t *testing.T) {
	dir := t.TempDir()
	abstractPath := filepath.Join(dir, "abstracts.db")
	t.Setenv("ABSTRACT_DB_PATH", abstractPath)
	t.Setenv("KEYWORD_DB_PATH", filepath.Join(dir, "keywords.db"))
	t.Setenv("APP_LOG_LEVEL", "error")

	adb, err := abstracts.NewAbstractDB(abstractPath)
	require.NoError(t, err)
	require.NoError(t, adb.SaveAbstract(&abstracts.Abstract{ID: 1, Text: diophantine, Source: "Hulth2003", Type: "Testing"}))
	require.NoError(t, adb.SaveAbstract(&abstracts.Abstract{ID: 2, Text: "Decomposition of Boolean functions", Source: "Hulth2003", Type: "Training"}))
	require.NoError(t, adb.SaveAbstract(&abstracts.Abstract{ID: 3, Text: "Simple disjunctive decomposition", Source: "Kaggle", Type: "Testing"}))
	require.NoError(t, adb.Close())

	out, err := execute(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Abstracts: 3\n")
	assert.Contains(t, out, "  Hulth2003: 2\n  Kaggle: 1\n")
	assert.Contains(t, out, "Extracted (RAKE): 0\n")
	assert.Contains(t, out, "No extraction runs yet.")

	_, err = execute(t, "", "bulk", "--type", "Testing")
	require.NoError(t, err)

	out, err = execute(t, "", "status", "--type", "Testing")
	require.NoError(t, err)
	assert.Contains(t, out, "Abstracts: 2\n")
	assert.Contains(t, out, "  Hulth2003: 1\n  Kaggle: 1\n")
	assert.Contains(t, out, "Extracted (RAKE): 2\n")
	assert.Contains(t, out, "Last run: ")
	assert.Contains(t, out, `filter:    source="" type="Testing"`)
	assert.Contains(t, out, "extracted: 2\n")
	assert.Contains(t, out, "failed:    0\n")
}
