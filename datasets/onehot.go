package datasets

import (
	"strings"

	"github.com/pkg/errors"
)

// Alphabet is the amino-acid alphabet of the one-hot encoding. The position of
// a symbol is its column in the encoded matrix.
const Alphabet = "GALMFWKQESPVICYHRNDT"

var aaIndex = func() map[rune]int {
	idx := make(map[rune]int, len(Alphabet))
	for i, aa := range Alphabet {
		idx[aa] = i
	}
	return idx
}()

// OneHotEncode converts an amino-acid sequence to a len(seq) x 20 matrix with a
// single 1 per row at the column of the symbol. Symbols are matched exactly,
// lowercase letters are invalid. The position of an invalid symbol counts
// characters, not bytes.
func OneHotEncode(seq string) (*Matrix, error) {
	out := NewMatrix(len(seq), len(Alphabet))
	pos := 0
	for _, r := range seq {
		col, ok := aaIndex[r]
		if !ok {
			return nil, &InvalidSymbolError{Symbol: r, Position: pos, Sequence: seq}
		}
		out.Data[pos*out.Cols+col] = 1
		pos++
	}
	return out, nil
}

// OneHotEncodeAll encodes every sequence, stopping at the first failure.
func OneHotEncodeAll(seqs []string) ([]*Matrix, error) {
	out := make([]*Matrix, len(seqs))
	for i, s := range seqs {
		enc, err := OneHotEncode(s)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %d", i)
		}
		out[i] = enc
	}
	return out, nil
}

// OneHotDecode is the inverse of OneHotEncode.
func OneHotDecode(m *Matrix) (string, error) {
	if m.Cols != len(Alphabet) {
		return "", errors.Errorf("one-hot matrix has %d columns, want %d", m.Cols, len(Alphabet))
	}
	var sb strings.Builder
	sb.Grow(m.Rows)
	for i := range m.Rows {
		hot := -1
		for j, v := range m.Row(i) {
			switch v {
			case 0:
			case 1:
				if hot >= 0 {
					return "", errors.Errorf("row %d has more than one hot column", i)
				}
				hot = j
			default:
				return "", errors.Errorf("row %d has non-binary value %v", i, v)
			}
		}
		if hot < 0 {
			return "", errors.Errorf("row %d has no hot column", i)
		}
		sb.WriteByte(Alphabet[hot])
	}
	return sb.String(), nil
}
