package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gitaura/gitaura/internal/domain/palette"
)

// RGB is a color with float components in [0, 1].
type RGB struct {
	R float64
	G float64
	B float64
}

// FromHex parses "#rrggbb" (leading '#' optional). Malformed input falls
// back to mid gray rather than failing, matching how GitHub-supplied
// language colors are treated everywhere else.
func FromHex(s string) RGB {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{R: 0.5, G: 0.5, B: 0.5}
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return RGB{R: 0.5, G: 0.5, B: 0.5}
	}
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Blend linearly interpolates toward other by weight in [0, 1].
func (c RGB) Blend(other RGB, weight float64) RGB {
	return RGB{
		R: c.R*(1-weight) + other.R*weight,
		G: c.G*(1-weight) + other.G*weight,
		B: c.B*(1-weight) + other.B*weight,
	}
}

// Lighten blends toward white.
func (c RGB) Lighten(amount float64) RGB {
	return c.Blend(RGB{R: 1, G: 1, B: 1}, amount)
}

// Darken blends toward black.
func (c RGB) Darken(amount float64) RGB {
	return c.Blend(RGB{}, amount)
}

// BaseColor computes the weighted average of the palette entries; it tints
// the glow and anchors the derived stroke palette.
func BaseColor(entries []palette.Entry) RGB {
	if len(entries) == 0 {
		return FromHex(palette.DefaultHex)
	}
	var out RGB
	for _, e := range entries {
		c := FromHex(e.Hex)
		out.R += c.R * e.Weight
		out.G += c.G * e.Weight
		out.B += c.B * e.Weight
	}
	return out
}

// strokePalette derives the five stroke colors used round-robin across
// paths: the base, a light and a dark variant, and a channel-rotated
// accent with its own light variant.
func strokePalette(base RGB) []RGB {
	shifted := RGB{
		R: base.G*0.7 + base.R*0.3,
		G: base.B*0.7 + base.G*0.3,
		B: base.R*0.7 + base.B*0.3,
	}
	return []RGB{
		base,
		base.Lighten(0.3),
		base.Darken(0.2),
		shifted,
		shifted.Lighten(0.2),
	}
}
