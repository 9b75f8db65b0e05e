package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if r.CenterX() != 15 {
		t.Errorf("CenterX() = %d, expected 15", r.CenterX())
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []Rect
	}{
		{"none", 0, nil},
		{"negative", -1, nil},
		{"one", 1, []Rect{{X: 2, Y: 3, W: 5, H: 3}}},
		{"three", 3, []Rect{
			{X: 2, Y: 3, W: 5, H: 3},
			{X: 7, Y: 3, W: 5, H: 3},
			{X: 12, Y: 3, W: 5, H: 3},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Row(2, 3, 5, 3, tc.n)
			if len(got) != len(tc.want) {
				t.Fatalf("Row() returned %d cells, expected %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("cell %d = %+v, expected %+v", i, got[i], tc.want[i])
				}
			}
			// adjacent boxes share no columns
			for i := 1; i < len(got); i++ {
				if got[i].X != got[i-1].Right() {
					t.Errorf("cell %d starts at %d, previous ends at %d", i, got[i].X, got[i-1].Right())
				}
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionSubmit.String() != "Submit" {
		t.Errorf("ActionSubmit.String() = %q", ActionSubmit.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown, got %q", Action(999).String())
	}
}
