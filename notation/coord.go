// Package notation reads and writes the text forms used by configuration files,
// logs and the -print mode: square names, rank strings and board diagrams.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tilechess/types"
)

var (
	ErrBadCoord   = errors.New("invalid square name")
	ErrBadRank    = errors.New("invalid rank string")
	ErrBadDiagram = errors.New("invalid diagram")
)

// MaxFiles is the widest board that has a letter for every file.
const MaxFiles = 26

// Square names:
// - Files: a, b, c... from x=0 (left)
// - Ranks: 1, 2, 3... from y=0 (side 0's back rank)
// - Example: (0, 0) -> a1, (4, 3) -> e4

// FormatCoord names a square, "e4" for (4, 3). Coordinates without a file letter
// fall back to the "(x, y)" form.
func FormatCoord(c types.Coord) string {
	if c.X < 0 || c.X >= MaxFiles || c.Y < 0 {
		return c.String()
	}
	return fmt.Sprintf("%c%d", 'a'+rune(c.X), c.Y+1)
}

// ParseCoord parses a square name for a width x height board. Case is ignored.
func ParseCoord(s string, width, height int) (types.Coord, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) < 2 {
		return types.Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}

	x := int(name[0]) - 'a'
	if x < 0 || x >= MaxFiles {
		return types.Coord{}, fmt.Errorf("%w: bad file in %q", ErrBadCoord, s)
	}

	rank, err := strconv.Atoi(name[1:])
	if err != nil {
		return types.Coord{}, fmt.Errorf("%w: bad rank in %q", ErrBadCoord, s)
	}
	y := rank - 1

	if x >= width || y < 0 || y >= height {
		return types.Coord{}, fmt.Errorf("%w: %q is off a %dx%d board", ErrBadCoord, s, width, height)
	}
	return types.Coord{X: x, Y: y}, nil
}
