package notation

import (
	"fmt"
	"strings"

	"tilechess/types"
)

// ParseRank reads a rank string such as "RNBQKBNR" or "..P.P" into the kind
// names engine.Layout expects, one per file. '.' leaves a file empty and comes
// back as "". Letters are PRNBQK in either case; spaces are ignored.
func ParseRank(s string) ([]string, error) {
	var out []string
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t':
			continue
		case ch == '.':
			out = append(out, "")
		default:
			kind, ok := types.KindFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece letter %q in %q", ErrBadRank, ch, s)
			}
			out = append(out, kind.String())
		}
	}
	return out, nil
}

// FormatRank writes layout entries back as a rank string in upper case.
func FormatRank(entries []string) (string, error) {
	var sb strings.Builder
	for _, entry := range entries {
		name := strings.TrimSpace(entry)
		if name == "" || name == "." {
			sb.WriteByte('.')
			continue
		}
		kind, ok := types.ParseKind(name)
		if !ok {
			return "", fmt.Errorf("%w: unknown piece %q", ErrBadRank, entry)
		}
		sb.WriteByte(kind.Letter())
	}
	return sb.String(), nil
}

// PieceLetter is the diagram letter for a piece: upper case for side 0, lower
// case for side 1.
func PieceLetter(kind types.PieceKind, side types.Side) byte {
	l := kind.Letter()
	if side == types.Black && l != '.' {
		l += 'a' - 'A'
	}
	return l
}
