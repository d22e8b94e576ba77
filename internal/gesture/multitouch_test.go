package gesture

import (
	"math"
	"testing"
)

func TestCaptureBaseline(t *testing.T) {
	touches := map[int]Point{
		9: {X: 0, Y: 0},
		2: {X: 30, Y: 40},
	}

	b, ok := captureBaseline(touches)
	if !ok {
		t.Fatal("captureBaseline() ok = false")
	}
	if b.a != 2 || b.b != 9 {
		t.Errorf("ids = (%d, %d), want (2, 9)", b.a, b.b)
	}
	if b.distance != 50 {
		t.Errorf("distance = %v, want 50", b.distance)
	}
	if want := math.Atan2(-40, -30); math.Abs(b.angle-want) > 1e-12 {
		t.Errorf("angle = %v, want %v", b.angle, want)
	}
}

func TestCaptureBaselineNeedsTwo(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		touches := make(map[int]Point)
		for i := 0; i < n; i++ {
			touches[i] = Point{X: float64(i)}
		}
		if _, ok := captureBaseline(touches); ok {
			t.Errorf("captureBaseline() with %d contacts ok = true", n)
		}
	}
}

func TestBaselineEvaluate(t *testing.T) {
	cfg := DefaultConfig()
	b := baseline{a: 0, b: 1, distance: 100, angle: 0}

	tests := []struct {
		name  string
		other Point
		want  []Kind
	}{
		{"unchanged", Point{X: 100}, nil},
		{"pinch out", Point{X: 140}, []Kind{KindPinch}},
		{"pinch in", Point{X: 50}, []Kind{KindPinch}},
		{"rotate", Point{X: 100 * math.Cos(0.3), Y: 100 * math.Sin(0.3)}, []Kind{KindRotate}},
		{"small rotate", Point{X: 100 * math.Cos(0.05), Y: 100 * math.Sin(0.05)}, nil},
		{"both", Point{X: 0, Y: 300}, []Kind{KindPinch, KindRotate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			touches := map[int]Point{0: {}, 1: tt.other}
			got := b.evaluate(touches, cfg)
			if len(got) != len(tt.want) {
				t.Fatalf("evaluate() = %v, want kinds %v", got, tt.want)
			}
			for i, g := range got {
				if g.Kind != tt.want[i] {
					t.Errorf("evaluate()[%d] = %s, want %s", i, g.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestBaselineEvaluateMissingContact(t *testing.T) {
	b := baseline{a: 0, b: 1, distance: 100}
	touches := map[int]Point{0: {}, 5: {X: 500}}
	if got := b.evaluate(touches, DefaultConfig()); got != nil {
		t.Errorf("evaluate() with a lifted contact = %v, want nil", got)
	}
}

func TestBaselineRebind(t *testing.T) {
	b := baseline{a: 0, b: 1, distance: 100, angle: 0.5}

	got, ok := b.rebind(map[int]Point{1: {X: 100}, 2: {X: 400}})
	if !ok {
		t.Fatal("rebind() ok = false")
	}
	if got.a != 1 || got.b != 2 {
		t.Errorf("ids = (%d, %d), want (1, 2)", got.a, got.b)
	}
	if got.distance != 100 || got.angle != 0.5 {
		t.Errorf("rebind() changed baseline to (%v, %v), want (100, 0.5)", got.distance, got.angle)
	}

	if _, ok := b.rebind(map[int]Point{1: {}, 2: {}, 3: {}}); ok {
		t.Error("rebind() with 3 contacts ok = true")
	}
}
