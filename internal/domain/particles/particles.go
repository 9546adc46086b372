// Package particles advances a deterministic particle population through a
// flow field and records the traced paths.
package particles

import (
	"math"
	"math/rand"

	"github.com/gitaura/gitaura/internal/domain/field"
)

// Simulation constants; pinned by tests.
const (
	// MinCount and MaxCount bound the particle population regardless of
	// density, keeping simulation cost fixed.
	MinCount = 50
	MaxCount = 300

	// DefaultSteps is the fixed number of simulation steps.
	DefaultSteps = 150

	// maxSpeed caps particle velocity in pixels per step.
	maxSpeed = 3.0

	// spiralRadiusFactor sizes the seeding spiral relative to the canvas.
	spiralRadiusFactor = 0.35

	// seedJitter is the max deterministic offset applied to spiral seeds.
	seedJitter = 5.0

	// bounceDamping scales the reflected velocity component when a
	// particle hits the canvas edge.
	bounceDamping = 0.5

	// minPathPoints drops degenerate paths that never really moved.
	minPathPoints = 3

	// goldenAngle spreads spiral seeds evenly: pi * (3 - sqrt(5)).
	goldenAngle = math.Pi * (3 - 2.2360679774997896)
)

// Point is one traced position.
type Point struct {
	X float64
	Y float64
}

// Path is the complete trace of one particle, in creation order, with the
// stroke opacity assigned at seeding time.
type Path struct {
	Points  []Point
	Opacity float64
}

type particle struct {
	pos     Point
	vel     field.Vector
	opacity float64
	trace   []Point
}

// System holds an initialized particle population ready to run.
type System struct {
	field     *field.Field
	width     float64
	height    float64
	count     int
	steps     int
	blend     float64
	particles []particle
}

// Option applies a configuration option to the System.
type Option func(*System)

// WithCount sets the particle count, clamped to [MinCount, MaxCount].
func WithCount(n int) Option {
	return func(s *System) {
		s.count = clampInt(n, MinCount, MaxCount)
	}
}

// WithSteps sets the fixed simulation step count.
func WithSteps(n int) Option {
	return func(s *System) {
		if n > 0 {
			s.steps = n
		}
	}
}

// WithBlend sets the velocity smoothing factor in (0, 1]: each step the
// velocity moves this fraction of the way toward the field direction.
func WithBlend(b float64) Option {
	return func(s *System) {
		if b > 0 && b <= 1 {
			s.blend = b
		}
	}
}

// CountForDensity maps normalized density to a bounded particle count.
func CountForDensity(rho float64) int {
	n := MinCount + int(math.Round(rho*float64(MaxCount-MinCount)))
	return clampInt(n, MinCount, MaxCount)
}

// BlendForTurbulence maps turbulence to the velocity blend factor: calmer
// fields steer particles gently, chaotic ones snap them around.
func BlendForTurbulence(chi float64) float64 {
	return 0.3 + 0.4*math.Max(0, math.Min(1, chi))
}

// New seeds a particle system on a Fibonacci spiral around the canvas
// center. Jitter comes from a rand source seeded with the user identity,
// so layouts are reproducible and differ between users.
func New(f *field.Field, seed uint64, width, height int, opts ...Option) *System {
	s := &System{
		field:  f,
		width:  float64(width),
		height: float64(height),
		count:  MinCount,
		steps:  DefaultSteps,
		blend:  0.5,
	}
	for _, opt := range opts {
		opt(s)
	}

	rng := rand.New(rand.NewSource(int64(seed))) //nolint:gosec // deterministic layout, not security
	cx, cy := s.width/2, s.height/2
	maxRadius := spiralRadiusFactor * math.Min(s.width, s.height)

	s.particles = make([]particle, s.count)
	for i := range s.particles {
		theta := float64(i) * goldenAngle
		r := math.Sqrt(float64(i)/float64(s.count)) * maxRadius

		x := cx + r*math.Cos(theta) + (rng.Float64()*2-1)*seedJitter
		y := cy + r*math.Sin(theta) + (rng.Float64()*2-1)*seedJitter

		s.particles[i] = particle{
			pos:     Point{X: clampF(x, 0, s.width), Y: clampF(y, 0, s.height)},
			opacity: 0.3 + 0.7*(1-r/maxRadius),
			trace:   make([]Point, 0, s.steps),
		}
	}
	return s
}

// Run advances every particle for the fixed step count and returns the
// surviving paths in particle-creation order. Particles are independent;
// the result is bit-for-bit reproducible for a given seed and options.
func (s *System) Run() []Path {
	for step := 0; step < s.steps; step++ {
		for i := range s.particles {
			s.advance(&s.particles[i])
		}
	}

	paths := make([]Path, 0, len(s.particles))
	for _, p := range s.particles {
		if len(p.trace) < minPathPoints {
			continue
		}
		paths = append(paths, Path{Points: p.trace, Opacity: p.opacity})
	}
	return paths
}

// advance blends the velocity toward the local field direction, moves the
// particle one step, and bounces it off the canvas edges with damping.
func (s *System) advance(p *particle) {
	dir := s.field.Sample(p.pos.X, p.pos.Y)

	// Exponential smoothing toward the field's target velocity.
	tx, ty := dir.X*maxSpeed, dir.Y*maxSpeed
	vx := p.vel.X + (tx-p.vel.X)*s.blend
	vy := p.vel.Y + (ty-p.vel.Y)*s.blend

	if speed := math.Hypot(vx, vy); speed > maxSpeed {
		vx = vx / speed * maxSpeed
		vy = vy / speed * maxSpeed
	}

	p.trace = append(p.trace, p.pos)

	nx := p.pos.X + vx
	ny := p.pos.Y + vy

	if nx < 0 {
		nx, vx = 0, -vx*bounceDamping
	} else if nx > s.width {
		nx, vx = s.width, -vx*bounceDamping
	}
	if ny < 0 {
		ny, vy = 0, -vy*bounceDamping
	} else if ny > s.height {
		ny, vy = s.height, -vy*bounceDamping
	}

	p.vel = field.Vector{X: vx, Y: vy}
	p.pos = Point{X: nx, Y: ny}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
