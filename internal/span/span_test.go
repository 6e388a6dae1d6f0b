package span

import "testing"

func TestSpanPredicates(t *testing.T) {
	tests := []struct {
		name         string
		a, b         Span
		wantOverlaps bool
		wantWithin   bool
	}{
		{name: "disjoint", a: New(0, 3), b: New(3, 6), wantOverlaps: false, wantWithin: false},
		{name: "touching interiors", a: New(0, 4), b: New(3, 6), wantOverlaps: true, wantWithin: false},
		{name: "nested", a: New(2, 4), b: New(0, 6), wantOverlaps: true, wantWithin: true},
		{name: "identical", a: New(1, 5), b: New(1, 5), wantOverlaps: true, wantWithin: true},
		{name: "empty never overlaps", a: New(2, 2), b: New(0, 6), wantOverlaps: false, wantWithin: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.wantOverlaps {
				t.Errorf("%v.Overlaps(%v) = %v", tt.a, tt.b, got)
			}
			if got := tt.a.Within(tt.b); got != tt.wantWithin {
				t.Errorf("%v.Within(%v) = %v", tt.a, tt.b, got)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	s := New(2, 5)
	for p, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if got := s.Contains(p); got != want {
			t.Errorf("Contains(%d) = %v, want %v", p, got, want)
		}
	}
}

func TestSpanText(t *testing.T) {
	if got := New(4, 9).Text("the quick fox"); got != "quick" {
		t.Errorf("Text = %q", got)
	}
}
