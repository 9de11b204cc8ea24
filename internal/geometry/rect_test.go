package geometry

import "testing"

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "overlapping",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 10, 10),
			want: NewRect(5, 5, 5, 5),
		},
		{
			name: "contained",
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(10, 20, 30, 40),
			want: NewRect(10, 20, 30, 40),
		},
		{
			name: "disjoint",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(20, 20, 10, 10),
			want: Rect{},
		},
		{
			name: "edge touching is empty",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(10, 0, 10, 10),
			want: Rect{},
		},
		{
			name: "negative origin",
			a:    NewRect(-5, -5, 20, 20),
			b:    NewRect(0, 0, 1920, 1080),
			want: NewRect(0, 0, 15, 15),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
			// Commutative
			if got := tt.b.Intersect(tt.a); got != tt.want {
				t.Errorf("Intersect() reversed = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIntersectIdempotent(t *testing.T) {
	r := NewRect(3, 7, 11, 13)
	if got := r.Intersect(r); got != r {
		t.Errorf("Intersect(r, r) = %+v, want %+v", got, r)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"valid", NewRect(0, 0, 1, 1), false},
		{"zero width", NewRect(0, 0, 0, 10), true},
		{"zero height", NewRect(0, 0, 10, 0), true},
		{"negative extent", NewRect(0, 0, -5, 10), true},
		{"zero value", Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if !a.Overlaps(NewRect(9, 9, 10, 10)) {
		t.Error("expected corner overlap")
	}
	if a.Overlaps(NewRect(10, 10, 5, 5)) {
		t.Error("touching rects must not overlap")
	}
}

func TestTranslate(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	got := r.Translate(-10, 5)
	want := NewRect(-9, 7, 3, 4)
	if got != want {
		t.Errorf("Translate() = %+v, want %+v", got, want)
	}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		want  Rect
	}{
		{
			name:  "single",
			rects: []Rect{NewRect(5, 5, 10, 10)},
			want:  NewRect(5, 5, 10, 10),
		},
		{
			name: "side by side displays",
			rects: []Rect{
				NewRect(0, 0, 1920, 1080),
				NewRect(1920, 0, 1280, 1024),
			},
			want: NewRect(0, 0, 3200, 1080),
		},
		{
			name: "vertically offset",
			rects: []Rect{
				NewRect(0, 0, 1920, 1080),
				NewRect(1920, -200, 1280, 1024),
			},
			want: NewRect(0, -200, 3200, 1280),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingBox(tt.rects); got != tt.want {
				t.Errorf("BoundingBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTruncTowardZero(t *testing.T) {
	r := NewRect(-5.9, 5.9, 10.7, 20.2)
	if r.TruncX() != -5 {
		t.Errorf("TruncX() = %d, want -5", r.TruncX())
	}
	if r.TruncY() != 5 {
		t.Errorf("TruncY() = %d, want 5", r.TruncY())
	}
	if r.TruncWidth() != 10 {
		t.Errorf("TruncWidth() = %d, want 10", r.TruncWidth())
	}
	if r.TruncHeight() != 20 {
		t.Errorf("TruncHeight() = %d, want 20", r.TruncHeight())
	}
}

func TestContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !r.Contains(0, 0) {
		t.Error("origin should be inside")
	}
	if r.Contains(10, 10) {
		t.Error("max corner is exclusive")
	}
}
