package core

import "testing"

func TestCornerInside(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "small enemy corner inside player",
			a:        NewBox(103, 103, 4),
			b:        NewBox(100, 100, 10),
			expected: true,
		},
		{
			name:     "player corners miss small enemy",
			a:        NewBox(100, 100, 10),
			b:        NewBox(103, 103, 4),
			expected: false,
		},
		{
			name:     "far apart",
			a:        NewBox(100, 100, 10),
			b:        NewBox(200, 200, 4),
			expected: false,
		},
		{
			name:     "corners touching edge only",
			a:        NewBox(0, 0, 10),
			b:        NewBox(10, 0, 10),
			expected: false,
		},
		{
			name:     "small box inside large box",
			a:        NewBox(50, 50, 4),
			b:        NewBox(50, 50, 40),
			expected: true,
		},
		{
			name:     "large box swallowing small box is not detected",
			a:        NewBox(50, 50, 40),
			b:        NewBox(50, 50, 4),
			expected: false,
		},
		{
			name:     "identical boxes share corners on edges",
			a:        NewBox(20, 20, 10),
			b:        NewBox(20, 20, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.CornerInside(tc.b)
			if result != tc.expected {
				t.Errorf("CornerInside() = %v, expected %v", result, tc.expected)
			}
		})
	}
}

func TestContainsStrict(t *testing.T) {
	b := NewBox(10, 10, 10)

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"center", Vec2{10, 10}, true},
		{"near top-left", Vec2{5.01, 5.01}, true},
		{"on left edge", Vec2{5, 10}, false},
		{"on bottom edge", Vec2{10, 15}, false},
		{"outside", Vec2{20, 20}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.ContainsStrict(tc.p); got != tc.expected {
				t.Errorf("ContainsStrict(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestDist(t *testing.T) {
	if d := (Vec2{0, 0}).Dist(Vec2{3, 4}); d != 5 {
		t.Errorf("Dist() = %f, expected 5", d)
	}
}

func TestPixelSpan(t *testing.T) {
	start, end := PixelSpan(250, 10)
	if start != 245 || end != 255 {
		t.Errorf("PixelSpan(250, 10) = [%d, %d), expected [245, 255)", start, end)
	}

	start, end = PixelSpan(2, 10)
	if start != -3 || end != 7 {
		t.Errorf("PixelSpan(2, 10) = [%d, %d), expected [-3, 7)", start, end)
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

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, 0.0, 1.0, 0.5},
		{-0.5, 0.0, 1.0, 0.0},
		{1.5, 0.0, 1.0, 1.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		val      float64
		expected int
	}{
		{10, 10},
		{10.4, 10},
		{10.5, 11},
		{0, 0},
		{-3, 0},
	}

	for _, tc := range tests {
		if got := RoundHalfUp(tc.val); got != tc.expected {
			t.Errorf("RoundHalfUp(%f) = %d, expected %d", tc.val, got, tc.expected)
		}
	}
}
