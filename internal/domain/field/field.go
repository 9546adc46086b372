// Package field implements the deterministic vector flow field that guides
// particle motion. The field is a pure function of position once built: the
// same seed, turbulence and canvas always produce the same vectors.
package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Fixed field-shape constants; pinned by tests.
const (
	// baseNoiseScale and turbulenceNoiseScale map turbulence to the
	// spatial frequency of the noise: scale = base + chi * range.
	baseNoiseScale       = 0.005
	turbulenceNoiseScale = 0.015

	// fractal octaves of the primary angle noise.
	octaves     = 3
	persistence = 0.6

	// turbulenceThreshold gates the secondary high-frequency term.
	turbulenceThreshold = 0.3

	// rimAttenuation weakens the field toward the canvas corners,
	// keeping motion centered.
	rimAttenuation = 0.5
)

// Vector is a 2D direction with magnitude at most 1.
type Vector struct {
	X float64
	Y float64
}

// Field samples deterministic direction vectors over the canvas.
type Field struct {
	noise      opensimplex.Noise
	width      float64
	height     float64
	turbulence float64
	scale      float64
}

// Option applies a configuration option to the Field.
type Option func(*Field)

// WithTurbulence sets the turbulence factor in [0, 1]. Higher values raise
// the noise frequency and add a secondary chaotic term.
func WithTurbulence(chi float64) Option {
	return func(f *Field) {
		f.turbulence = math.Max(0, math.Min(1, chi))
	}
}

// WithNoiseScale overrides the derived noise frequency. Mostly for tests.
func WithNoiseScale(scale float64) Option {
	return func(f *Field) {
		if scale > 0 {
			f.scale = scale
		}
	}
}

// New builds a flow field for a canvas of the given size, seeded from the
// user identity.
func New(seed uint64, width, height int, opts ...Option) *Field {
	f := &Field{
		noise:      opensimplex.New(int64(seed)),
		width:      float64(width),
		height:     float64(height),
		turbulence: 0.5,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.scale == 0 {
		f.scale = baseNoiseScale + f.turbulence*turbulenceNoiseScale
	}
	return f
}

// Sample returns the direction vector at (x, y). The angle comes from
// fractal simplex noise; turbulence above the threshold adds a second,
// higher-frequency perturbation. Magnitude falls off toward the rim so
// particles drift back to the center of the composition.
func (f *Field) Sample(x, y float64) Vector {
	angle := f.fractal(x, y) * 2 * math.Pi

	if f.turbulence > turbulenceThreshold {
		t := f.noise.Eval2(x*2*f.scale*3, y*2*f.scale*3)
		angle += t * f.turbulence * math.Pi
	}

	cx, cy := f.width/2, f.height/2
	dist := math.Hypot(x-cx, y-cy)
	maxDist := math.Hypot(cx, cy)
	radial := 1.0
	if maxDist > 0 {
		radial = 1.0 - rimAttenuation*math.Min(dist/maxDist, 1)
	}

	return Vector{
		X: math.Cos(angle) * radial,
		Y: math.Sin(angle) * radial,
	}
}

// fractal sums octave-doubled noise with decaying amplitude (fBm),
// normalized back to [-1, 1].
func (f *Field) fractal(x, y float64) float64 {
	var total, maxValue float64
	amplitude := 1.0
	frequency := 1.0

	for i := 0; i < octaves; i++ {
		total += amplitude * f.noise.Eval2(x*frequency*f.scale, y*frequency*f.scale)
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}
