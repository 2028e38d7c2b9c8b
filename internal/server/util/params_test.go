package util

import "testing"

func TestBoundedIntParam(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  int
		min  int
		max  int
		want int
	}{
		{name: "empty uses default", raw: "", def: 30, min: 1, max: 365, want: 30},
		{name: "valid value", raw: "7", def: 30, min: 1, max: 365, want: 7},
		{name: "malformed uses default", raw: "week", def: 30, min: 1, max: 365, want: 30},
		{name: "below minimum clamps up", raw: "0", def: 30, min: 1, max: 365, want: 1},
		{name: "negative clamps up", raw: "-5", def: 30, min: 1, max: 365, want: 1},
		{name: "above maximum clamps down", raw: "1000", def: 30, min: 1, max: 365, want: 365},
		{name: "boundary is kept", raw: "365", def: 30, min: 1, max: 365, want: 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundedIntParam(tt.raw, tt.def, tt.min, tt.max)
			if got != tt.want {
				t.Errorf("BoundedIntParam(%q, %d, %d, %d) = %d, want %d",
					tt.raw, tt.def, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
