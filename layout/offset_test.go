package layout

import "testing"

func TestOffsetVisible(t *testing.T) {
	for _, tc := range []struct {
		name   string
		y      int
		height int
		want   bool
	}{
		{name: "inside", y: 10, height: 50, want: true},
		{name: "straddling top", y: -40, height: 50, want: true},
		{name: "straddling bottom", y: 90, height: 50, want: true},
		{name: "above", y: -50, height: 50, want: false},
		{name: "below", y: 100, height: 50, want: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Offset{Y: tc.y}).Visible(tc.height, 100); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
