package datasets

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFileNotFound is returned for a missing CSV or index file and for a
	// dataset path that maps to no known index file.
	ErrFileNotFound = errors.New("file not found")

	// ErrLabelColumnNotFound is returned when no column matches the label
	// marker, or the configured label column is absent.
	ErrLabelColumnNotFound = errors.New("label column not found")

	// ErrAmbiguousLabelColumn is returned when several columns match the label
	// marker.
	ErrAmbiguousLabelColumn = errors.New("ambiguous label column")

	// ErrColumnMissing is returned when expected embedding or sequence columns
	// are absent from the CSV.
	ErrColumnMissing = errors.New("column missing")

	// ErrInvalidSymbol is returned when a sequence holds a symbol outside
	// Alphabet.
	ErrInvalidSymbol = errors.New("invalid amino-acid symbol")

	// ErrIndexOutOfRange is returned when an index list points past the rows
	// of the loaded file.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidIndexFile is returned for malformed index partition files.
	ErrInvalidIndexFile = errors.New("invalid index file")
)

// InvalidSymbolError reports the first symbol of a sequence that is not in
// Alphabet.
type InvalidSymbolError struct {
	Symbol   rune
	Position int
	Sequence string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid amino-acid symbol %q at position %d", e.Symbol, e.Position)
}

// Is makes errors.Is(err, ErrInvalidSymbol) hold.
func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}
