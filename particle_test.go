package glyphswarm

import (
	"math"
	"math/rand/v2"
	"testing"
)

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestNewFieldDefaultCount(t *testing.T) {
	f := NewField(0, 800, 600, seededRand(1))
	if f.Len() != DefaultParticleCount {
		t.Errorf("Len = %d, want %d", f.Len(), DefaultParticleCount)
	}
}

func TestNewFieldScatterAndCenterTargets(t *testing.T) {
	f := NewField(500, 800, 600, seededRand(1))
	if f.Len() != 500 {
		t.Fatalf("Len = %d, want 500", f.Len())
	}
	for i, p := range f.Particles() {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("particle %d at (%v, %v) outside the viewport", i, p.X, p.Y)
		}
		if p.TargetX != 400 || p.TargetY != 300 {
			t.Fatalf("particle %d target = (%v, %v), want center", i, p.TargetX, p.TargetY)
		}
	}
}

func TestNewFieldNilRand(t *testing.T) {
	f := NewField(10, 100, 100, nil)
	if f.Len() != 10 {
		t.Errorf("Len = %d, want 10", f.Len())
	}
}

func TestRetargetEmptyKeepsTargets(t *testing.T) {
	f := NewField(50, 800, 600, seededRand(2))
	f.Retarget([]Point{{10, 20}, {30, 40}})
	before := append([]Particle(nil), f.Particles()...)

	f.Retarget(nil)
	f.Retarget([]Point{})

	for i, p := range f.Particles() {
		if p.TargetX != before[i].TargetX || p.TargetY != before[i].TargetY {
			t.Fatalf("particle %d target changed on empty retarget", i)
		}
	}
}

func TestRetargetSinglePoint(t *testing.T) {
	f := NewField(100, 800, 600, seededRand(3))
	f.Retarget([]Point{{12, 34}})
	for i, p := range f.Particles() {
		if p.TargetX != 12 || p.TargetY != 34 {
			t.Fatalf("particle %d target = (%v, %v), want (12, 34)", i, p.TargetX, p.TargetY)
		}
	}
}

func TestRetargetWrapsSmallCloud(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {8, 0}, {12, 0}, {16, 0}, {20, 0}, {24, 0}}
	f := NewField(100, 800, 600, seededRand(4))
	f.Retarget(points)

	counts := make(map[Point]int)
	for i, p := range f.Particles() {
		pt := Point{int(p.TargetX), int(p.TargetY)}
		if !pointSet(points)[pt] {
			t.Fatalf("particle %d target %v not from the cloud", i, pt)
		}
		counts[pt]++
	}
	// i mod M spreads 100 particles over 7 points as 14 or 15 each.
	if len(counts) != len(points) {
		t.Fatalf("used %d distinct points, want %d", len(counts), len(points))
	}
	for pt, n := range counts {
		if n != 14 && n != 15 {
			t.Errorf("point %v used %d times, want 14 or 15", pt, n)
		}
	}
}

func TestRetargetLargeCloudUsesDistinctPoints(t *testing.T) {
	var points []Point
	for i := 0; i < 1000; i++ {
		points = append(points, Point{i, i * 2})
	}
	f := NewField(100, 800, 600, seededRand(5))
	f.Retarget(points)

	seen := make(map[Point]bool)
	for _, p := range f.Particles() {
		pt := Point{int(p.TargetX), int(p.TargetY)}
		if seen[pt] {
			t.Fatalf("point %v assigned twice with a cloud larger than the field", pt)
		}
		seen[pt] = true
	}
}

func TestRetargetDoesNotReorderInput(t *testing.T) {
	points := []Point{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}
	orig := append([]Point(nil), points...)
	f := NewField(20, 100, 100, seededRand(6))
	f.Retarget(points)
	for i := range points {
		if points[i] != orig[i] {
			t.Fatalf("input reordered at %d: %v, want %v", i, points[i], orig[i])
		}
	}
}

func TestRetargetSeededIsReproducible(t *testing.T) {
	var points []Point
	for i := 0; i < 64; i++ {
		points = append(points, Point{i, 64 - i})
	}
	a := NewField(200, 800, 600, seededRand(7))
	b := NewField(200, 800, 600, seededRand(7))
	a.Retarget(points)
	b.Retarget(points)
	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d differs between identically seeded fields", i)
		}
	}
}

func TestCenter(t *testing.T) {
	f := NewField(10, 800, 600, seededRand(8))
	f.Retarget([]Point{{1, 2}})
	f.Center(1000, 500)
	for i, p := range f.Particles() {
		if p.TargetX != 500 || p.TargetY != 250 {
			t.Fatalf("particle %d target = (%v, %v), want (500, 250)", i, p.TargetX, p.TargetY)
		}
	}
}

func TestStepApproachesMonotonically(t *testing.T) {
	f := NewField(200, 800, 600, seededRand(9))
	f.Retarget([]Point{{100, 100}, {700, 500}, {400, 50}})

	dist := func(p Particle) float64 {
		return math.Hypot(p.TargetX-p.X, p.TargetY-p.Y)
	}
	prev := make([]float64, f.Len())
	for i, p := range f.Particles() {
		prev[i] = dist(p)
	}

	for frame := 0; frame < 300; frame++ {
		before := append([]Particle(nil), f.Particles()...)
		f.Step(DefaultEase)
		for i, p := range f.Particles() {
			d := dist(p)
			if prev[i] > 0 && d >= prev[i] {
				t.Fatalf("frame %d particle %d: distance %v did not drop below %v", frame, i, d, prev[i])
			}
			// Never crosses the target on either axis.
			if (before[i].TargetX-before[i].X)*(p.TargetX-p.X) < 0 ||
				(before[i].TargetY-before[i].Y)*(p.TargetY-p.Y) < 0 {
				t.Fatalf("frame %d particle %d overshot its target", frame, i)
			}
			prev[i] = d
		}
	}
}

func TestStepFraction(t *testing.T) {
	f := NewField(1, 0, 0, seededRand(10))
	f.Retarget([]Point{{100, 200}})
	f.Step(0.25)
	p := f.Particles()[0]
	assertNear(t, "X", p.X, 25)
	assertNear(t, "Y", p.Y, 50)
}

func TestStepEaseOneArrives(t *testing.T) {
	f := NewField(5, 800, 600, seededRand(11))
	f.Retarget([]Point{{7, 9}})
	f.Step(1)
	for _, p := range f.Particles() {
		assertNear(t, "X", p.X, 7)
		assertNear(t, "Y", p.Y, 9)
	}
}
