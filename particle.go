package glyphswarm

import "math/rand/v2"

// DefaultParticleCount is the pool size used when a non-positive count is
// requested.
const DefaultParticleCount = 1500

// Particle is a single swarm member easing from its position toward its
// target.
type Particle struct {
	X, Y             float64
	TargetX, TargetY float64
}

// Field owns a fixed-size pool of particles. The count never changes after
// creation; target assignment wraps over whatever point cloud is supplied.
type Field struct {
	particles []Particle
	rng       *rand.Rand
	shuffled  []Point // scratch copy so callers' slices are not reordered
}

// NewField creates count particles scattered uniformly over a width x height
// area, all targeting its center. A nil rng uses a randomly seeded PCG.
func NewField(count int, width, height float64, rng *rand.Rand) *Field {
	if count <= 0 {
		count = DefaultParticleCount
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		particles: make([]Particle, count),
		rng:       rng,
	}
	cx, cy := width/2, height/2
	for i := range f.particles {
		p := &f.particles[i]
		p.X = rng.Float64() * width
		p.Y = rng.Float64() * height
		p.TargetX = cx
		p.TargetY = cy
	}
	return f
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the live particle slice. Callers must not retain it
// across frames or modify it.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Retarget shuffles points and assigns particle i the target
// points[i % len(points)]. An empty cloud keeps the current targets.
func (f *Field) Retarget(points []Point) {
	if len(points) == 0 {
		return
	}
	f.shuffled = append(f.shuffled[:0], points...)
	f.rng.Shuffle(len(f.shuffled), func(i, j int) {
		f.shuffled[i], f.shuffled[j] = f.shuffled[j], f.shuffled[i]
	})
	n := len(f.shuffled)
	for i := range f.particles {
		pt := f.shuffled[i%n]
		f.particles[i].TargetX = float64(pt.X)
		f.particles[i].TargetY = float64(pt.Y)
	}
}

// Center points every particle at the middle of a width x height area.
func (f *Field) Center(width, height float64) {
	cx, cy := width/2, height/2
	for i := range f.particles {
		f.particles[i].TargetX = cx
		f.particles[i].TargetY = cy
	}
}

// Step moves every particle the fraction ease of its remaining distance to
// its target.
func (f *Field) Step(ease float64) {
	for i := range f.particles {
		p := &f.particles[i]
		p.X = lerp(p.X, p.TargetX, ease)
		p.Y = lerp(p.Y, p.TargetY, ease)
	}
}
