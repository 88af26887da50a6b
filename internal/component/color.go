package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadColor = errors.New("malformed color")

// Color is a packed 0xRRGGBBAA value.
type Color uint32

const White Color = 0xffffffff

func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// String formats the color as lowercase "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor accepts "#rrggbbaa" and "#rrggbb" (opaque), in either case.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("%w: %q has no leading '#'", ErrBadColor, s)
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Color(v), nil
}

// ColorFromNumber converts a numeric color. Values that fit in 24 bits are
// legacy 0xRRGGBB and become opaque; anything larger is already packed RGBA.
func ColorFromNumber(n uint64) Color {
	if n <= 0xffffff {
		return Color(uint32(n)<<8 | 0xff)
	}
	return Color(uint32(n))
}
