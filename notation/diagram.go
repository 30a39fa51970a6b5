package notation

import (
	"fmt"
	"strconv"
	"strings"

	"tilechess/engine"
	"tilechess/types"
)

// FormatDiagram draws a snapshot as text, far rank first:
//
//	8 r n b q k b n r
//	...
//	1 R N B Q K B N R
//	  a b c d e f g h
//	White to move
func FormatDiagram(snap *types.Snapshot) string {
	h, w := snap.Height(), snap.Width()
	labelWidth := len(strconv.Itoa(h))

	var sb strings.Builder
	for y := h - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%*d", labelWidth, y+1)
		for x := 0; x < w; x++ {
			cell := snap.At(types.Coord{X: x, Y: y})
			sb.WriteByte(' ')
			if cell.Empty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(PieceLetter(cell.Kind, cell.Side))
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat(" ", labelWidth))
	for x := 0; x < w; x++ {
		sb.WriteByte(' ')
		if x < MaxFiles {
			sb.WriteByte(byte('a' + x))
		} else {
			sb.WriteByte('?')
		}
	}
	sb.WriteByte('\n')
	sb.WriteString(snap.Turn.String())
	sb.WriteByte('\n')
	return sb.String()
}

// Diagram is a position read back from FormatDiagram output.
type Diagram struct {
	Width  int
	Height int
	Pieces []engine.Placement
}

// ParseDiagram reads the rank lines of a diagram. Lines that do not start with a
// rank number (the file legend, the turn line, blank lines) are skipped. Ranks
// must run from 1 to the board height with the same number of files each.
func ParseDiagram(text string) (Diagram, error) {
	var d Diagram
	seen := make(map[int]bool)

	for n, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rank, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		if rank < 1 {
			return Diagram{}, fmt.Errorf("%w: line %d: rank %d", ErrBadDiagram, n+1, rank)
		}
		if seen[rank] {
			return Diagram{}, fmt.Errorf("%w: line %d: rank %d repeated", ErrBadDiagram, n+1, rank)
		}
		seen[rank] = true

		files := fields[1:]
		if d.Width == 0 {
			d.Width = len(files)
		} else if len(files) != d.Width {
			return Diagram{}, fmt.Errorf("%w: line %d: %d files, want %d", ErrBadDiagram, n+1, len(files), d.Width)
		}

		for x, f := range files {
			if len(f) != 1 {
				return Diagram{}, fmt.Errorf("%w: line %d: %q is not a square", ErrBadDiagram, n+1, f)
			}
			if f[0] == '.' {
				continue
			}
			kind, ok := types.KindFromLetter(f[0])
			if !ok {
				return Diagram{}, fmt.Errorf("%w: line %d: unknown piece letter %q", ErrBadDiagram, n+1, f)
			}
			side := types.White
			if f[0] >= 'a' && f[0] <= 'z' {
				side = types.Black
			}
			d.Pieces = append(d.Pieces, engine.Placement{Kind: kind, Side: side, At: types.Coord{X: x, Y: rank - 1}})
		}
		d.Height = max(d.Height, rank)
	}

	if d.Height == 0 || d.Width == 0 {
		return Diagram{}, fmt.Errorf("%w: no ranks", ErrBadDiagram)
	}
	if len(seen) != d.Height {
		return Diagram{}, fmt.Errorf("%w: %d ranks listed for a board of height %d", ErrBadDiagram, len(seen), d.Height)
	}
	return d, nil
}

// Apply sets up e with an empty board of the diagram's size and places its pieces.
func (d Diagram) Apply(e engine.GameEngine) error {
	if err := e.SetupBoard(d.Width, d.Height); err != nil {
		return err
	}
	for _, pl := range d.Pieces {
		if err := e.PlacePiece(pl.Kind, pl.Side, pl.At); err != nil {
			return err
		}
	}
	return nil
}
