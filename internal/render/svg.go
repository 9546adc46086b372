// Package render converts traced particle paths and a feature vector into
// a standalone SVG document. Rendering is a pure transformation to a
// string: identical input always yields identical bytes, and no file or
// network I/O happens here.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gitaura/gitaura/internal/domain/particles"
	"github.com/gitaura/gitaura/internal/domain/stats"
)

// Rendering constants; pinned by tests.
const (
	defaultWidth  = 800
	defaultHeight = 800

	// backgroundHex is the dark-mode canvas fill.
	backgroundHex = "#0d1117"

	// Glow blur radius range: stdDeviation = blurMin + intensity*blurRange.
	blurMin   = 2.0
	blurRange = 13.0

	strokeWidthBase = 1.5
	strokeWidthMax  = 3.0

	// strokeOpacityScale damps per-particle opacity so overlapping paths
	// stay readable.
	strokeOpacityScale = 0.8

	// glowRadiusFactor sizes the central glow circle.
	glowRadiusFactor = 0.4
)

// Renderer builds SVG documents. Construct with New.
type Renderer struct {
	width   int
	height  int
	animate bool
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// WithAnimation toggles the CSS pulse animation.
func WithAnimation(animate bool) Option {
	return func(r *Renderer) {
		r.animate = animate
	}
}

// New creates a Renderer with an 800x800 animated canvas by default.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:   defaultWidth,
		height:  defaultHeight,
		animate: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render emits the complete SVG document for the given paths and features.
// Non-finite geometry returns ErrRender before any markup is produced.
func (r *Renderer) Render(paths []particles.Path, fv stats.FeatureVector) (string, error) {
	if err := checkFinite(paths); err != nil {
		return "", err
	}

	base := BaseColor(fv.Palette)
	strokes := strokePalette(base)

	var b strings.Builder
	b.Grow(1 << 16)

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		r.width, r.height, r.width, r.height)

	r.writeDefs(&b, base, fv.Intensity)

	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", r.width, r.height, backgroundHex)

	cx, cy := float64(r.width)/2, float64(r.height)/2
	glowRadius := glowRadiusFactor * math.Min(float64(r.width), float64(r.height))
	fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="url(#center-glow)"/>`+"\n", cx, cy, glowRadius)

	b.WriteString(`<g id="aura-paths" filter="url(#aura-glow)" fill="none" stroke-linecap="round" stroke-linejoin="round">` + "\n")
	for i, p := range paths {
		r.writePath(&b, i, p, strokes)
	}
	b.WriteString("</g>\n</svg>\n")

	return b.String(), nil
}

// writeDefs emits the glow filter, the central radial gradient and, when
// animating, the pulse keyframes.
func (r *Renderer) writeDefs(b *strings.Builder, base RGB, intensity float64) {
	blur := blurMin + intensity*blurRange

	b.WriteString("<defs>\n")
	b.WriteString(`<filter id="aura-glow" x="-50%" y="-50%" width="200%" height="200%">` + "\n")
	fmt.Fprintf(b, `<feGaussianBlur in="SourceGraphic" stdDeviation="%.2f" result="blur"/>`+"\n", blur)
	fmt.Fprintf(b, `<feColorMatrix in="blur" type="matrix" values="%.3f 0 0 0 0 0 %.3f 0 0 0 0 0 %.3f 0 0 0 0 0 1 0" result="coloredBlur"/>`+"\n",
		base.R, base.G, base.B)
	b.WriteString("<feMerge>\n<feMergeNode in=\"coloredBlur\"/>\n<feMergeNode in=\"SourceGraphic\"/>\n</feMerge>\n</filter>\n")

	hex := base.Hex()
	b.WriteString(`<radialGradient id="center-glow">` + "\n")
	fmt.Fprintf(b, `<stop offset="0%%" stop-color="%s" stop-opacity="%.2f"/>`+"\n", hex, 0.3*intensity)
	fmt.Fprintf(b, `<stop offset="50%%" stop-color="%s" stop-opacity="%.2f"/>`+"\n", hex, 0.1*intensity)
	fmt.Fprintf(b, `<stop offset="100%%" stop-color="%s" stop-opacity="0"/>`+"\n", hex)
	b.WriteString("</radialGradient>\n")

	if r.animate {
		b.WriteString("<style>\n")
		b.WriteString("@keyframes aura-pulse { 0%, 100% { opacity: 0.8; } 50% { opacity: 1; } }\n")
		b.WriteString("#aura-paths { animation: aura-pulse 4s ease-in-out infinite; transform-origin: center; }\n")
		b.WriteString("</style>\n")
	}
	b.WriteString("</defs>\n")
}

// writePath emits one smoothed particle trace. Stroke colors rotate through
// the palette with a small sine-based variation; width grows with path
// length up to a cap.
func (r *Renderer) writePath(b *strings.Builder, i int, p particles.Path, strokes []RGB) {
	if len(p.Points) < 2 {
		return
	}

	color := strokes[i%len(strokes)]
	variation := math.Sin(float64(i)*0.1) * 0.1
	if variation > 0 {
		color = color.Lighten(variation)
	} else {
		color = color.Darken(-variation)
	}

	width := strokeWidthBase * (0.5 + float64(len(p.Points))/200)
	width = math.Min(width, strokeWidthMax)

	fmt.Fprintf(b, `<path d="%s" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"/>`+"\n",
		pathData(p.Points), color.Hex(), width, p.Opacity*strokeOpacityScale)
}

// pathData converts a point trace to an SVG path description, smoothing
// with quadratic beziers whose targets are segment midpoints.
func pathData(pts []particles.Point) string {
	var d strings.Builder
	d.Grow(len(pts) * 24)

	fmt.Fprintf(&d, "M %.2f %.2f", pts[0].X, pts[0].Y)
	if len(pts) == 2 {
		fmt.Fprintf(&d, " L %.2f %.2f", pts[1].X, pts[1].Y)
		return d.String()
	}

	fmt.Fprintf(&d, " L %.2f %.2f", pts[1].X, pts[1].Y)
	for i := 2; i < len(pts); i++ {
		ex, ey := pts[i].X, pts[i].Y
		if i < len(pts)-1 {
			ex = (pts[i].X + pts[i+1].X) / 2
			ey = (pts[i].Y + pts[i+1].Y) / 2
		}
		fmt.Fprintf(&d, " Q %.2f %.2f %.2f %.2f", pts[i-1].X, pts[i-1].Y, ex, ey)
	}
	return d.String()
}

func checkFinite(paths []particles.Path) error {
	for _, p := range paths {
		if math.IsNaN(p.Opacity) || math.IsInf(p.Opacity, 0) {
			return fmt.Errorf("%w: non-finite opacity", ErrRender)
		}
		for _, pt := range p.Points {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
				return fmt.Errorf("%w: non-finite coordinate", ErrRender)
			}
		}
	}
	return nil
}
