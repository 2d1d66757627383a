package utils

import (
	"image"
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
)

func TestMapTouches(t *testing.T) {
	const w, h = 800, 450

	tests := []struct {
		name    string
		held    []image.Point
		pressed []image.Point
		want    components.InputState
	}{
		{
			name: "no touches",
			want: components.InputState{},
		},
		{
			name:    "tap right half attacks",
			held:    []image.Point{{600, 200}},
			pressed: []image.Point{{600, 200}},
			want:    components.InputState{Attack: true},
		},
		{
			name:    "tap bottom band jumps",
			held:    []image.Point{{600, 400}},
			pressed: []image.Point{{600, 400}},
			want:    components.InputState{Jump: true},
		},
		{
			name:    "bottom band wins over left side",
			held:    []image.Point{{50, 420}},
			pressed: []image.Point{{50, 420}},
			want:    components.InputState{Jump: true},
		},
		{
			name: "hold left quarter moves left",
			held: []image.Point{{100, 200}},
			want: components.InputState{Left: true},
		},
		{
			name: "hold second quarter moves right",
			held: []image.Point{{300, 200}},
			want: components.InputState{Right: true},
		},
		{
			name:    "move and attack together",
			held:    []image.Point{{300, 200}, {700, 100}},
			pressed: []image.Point{{700, 100}},
			want:    components.InputState{Right: true, Attack: true},
		},
		{
			name:    "two fingers pause",
			held:    []image.Point{{100, 100}, {700, 100}},
			pressed: []image.Point{{100, 100}, {700, 100}},
			want:    components.InputState{Pause: true},
		},
		{
			name: "holding two fingers without a new press does not pause",
			held: []image.Point{{100, 100}, {700, 100}},
			want: components.InputState{Left: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapTouches(tt.held, tt.pressed, w, h); got != tt.want {
				t.Errorf("MapTouches() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
