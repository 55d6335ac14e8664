package sonify

import "testing"

func TestDurationCodeFromValue(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want int
	}{
		{"below range clamps", -1, 0},
		{"black", 0, 0},
		{"low first bucket", 0.06, 0},
		{"top of first bucket", 0.124, 0},
		{"first boundary", 0.125, 1},
		{"second boundary", 0.25, 2},
		{"midpoint", 0.5, 4},
		{"top of seventh bucket", 0.874, 6},
		{"last boundary", 0.875, 7},
		{"near white", 0.999, 7},
		{"white lands in top code", 1, 7},
		{"above range clamps", 1.5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationCodeFromValue(tt.v)
			if got != tt.want {
				t.Errorf("DurationCodeFromValue(%v) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}

func TestDurationCodeBucketsAreEqualWidth(t *testing.T) {
	for code := 0; code < NumDurationCodes; code++ {
		mid := (float64(code) + 0.5) / NumDurationCodes
		if got := DurationCodeFromValue(mid); got != code {
			t.Errorf("DurationCodeFromValue(%v) = %d, want %d", mid, got, code)
		}
	}
}

func TestBeatsForCode(t *testing.T) {
	tests := []struct {
		code int
		want float64
	}{
		{0, 0.5},
		{1, 1.0},
		{4, 2.5},
		{7, 4.0},
		{-3, 0.5},
		{99, 4.0},
	}

	for _, tt := range tests {
		if got := BeatsForCode(tt.code); got != tt.want {
			t.Errorf("BeatsForCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestBeatStepsAreEqual(t *testing.T) {
	for code := 0; code < DurationCodeMax; code++ {
		step := BeatsForCode(code+1) - BeatsForCode(code)
		if step != 0.5 {
			t.Errorf("beat step from code %d to %d = %v, want 0.5", code, code+1, step)
		}
	}
}

func TestRestCodeHasNonzeroLength(t *testing.T) {
	if beats := BeatsForCode(DurationCodeRest); beats <= 0 {
		t.Errorf("BeatsForCode(rest) = %v, want a positive length", beats)
	}
}
