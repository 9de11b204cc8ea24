package display

import (
	"errors"
	"testing"

	"github.com/screenstitch/screenstitch/internal/geometry"
)

func twoDisplays() []Display {
	return []Display{
		{ID: "0", Position: Point{0, 0}, Size: Size{1920, 1080}},
		{ID: "1", Position: Point{1920, 0}, Size: Size{1280, 1024}},
	}
}

func TestResolveEntireScreen(t *testing.T) {
	r := Resolver{PrimaryID: "0"}

	tests := []struct {
		name        string
		displays    []Display
		requestedID string
		wantID      string
	}{
		{"no id prefers primary", twoDisplays(), "", "0"},
		{"matching id", twoDisplays(), "1", "1"},
		{"unknown id falls back to first", twoDisplays(), "nope", "0"},
		{
			"missing primary falls back to first",
			[]Display{{ID: "7"}, {ID: "8"}},
			"",
			"7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveEntireScreen(tt.displays, tt.requestedID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("resolved display %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveEntireScreenNoDisplays(t *testing.T) {
	var r Resolver
	_, err := r.ResolveEntireScreen(nil, "")
	if !errors.Is(err, ErrNoDisplays) {
		t.Fatalf("error = %v, want ErrNoDisplays", err)
	}
}

func TestResolverDefaultPrimary(t *testing.T) {
	// Zero-value resolver uses DefaultPrimaryID
	var r Resolver
	displays := []Display{{ID: "9"}, {ID: "0"}}
	got, err := r.ResolveEntireScreen(displays, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "0" {
		t.Errorf("resolved display %q, want %q", got.ID, "0")
	}
}

func TestDisplayBounds(t *testing.T) {
	d := Display{
		Position:    Point{1920, 0},
		Size:        Size{1280, 1024},
		VisibleSize: &Size{1280, 1000},
	}
	// Bounds ignores the visible fields.
	if got := d.Bounds(); got != geometry.NewRect(1920, 0, 1280, 1024) {
		t.Errorf("Bounds() = %+v", got)
	}
}

func TestVisibleRect(t *testing.T) {
	tests := []struct {
		name string
		d    Display
		want geometry.Rect
	}{
		{
			name: "no visible fields falls back to full bounds",
			d:    Display{Position: Point{100, 50}, Size: Size{1920, 1080}},
			want: geometry.NewRect(100, 50, 1920, 1080),
		},
		{
			name: "visible position is absolute",
			d: Display{
				Position:        Point{0, 0},
				Size:            Size{1920, 1080},
				VisiblePosition: &Point{0, 25},
				VisibleSize:     &Size{1920, 1055},
			},
			want: geometry.NewRect(0, 25, 1920, 1055),
		},
		{
			name: "visible size only",
			d: Display{
				Position:    Point{1920, 0},
				Size:        Size{1280, 1024},
				VisibleSize: &Size{1280, 1000},
			},
			want: geometry.NewRect(1920, 0, 1280, 1000),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.VisibleRect(); got != tt.want {
				t.Errorf("VisibleRect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
