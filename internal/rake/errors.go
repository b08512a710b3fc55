package rake

import (
	"errors"

	"github.com/deidaraiorek/deirake/internal/stoplist"
)

var (
	// ErrConfiguration is returned when the stoplist cannot be loaded.
	ErrConfiguration = stoplist.ErrConfiguration

	// ErrUnknownWord is returned when an edit names a word that is not a vertex
	// of the co-occurrence graph.
	ErrUnknownWord = errors.New("unknown word")

	// ErrInvariantViolation is returned when the graph is in a state scoring
	// cannot handle, such as a scored word with zero frequency or a negative
	// edge weight.
	ErrInvariantViolation = errors.New("graph invariant violation")
)
