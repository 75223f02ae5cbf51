package estimate

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		t, y, m, n     float64
		valid          bool
		expectedReason string
	}{
		{"Valid", 100, 50, 20, 10, true, ""},
		{"ValidExactSum", 10, 5, 3, 2, true, ""},
		{"ValidNoResponses", 1, 0, 0, 0, true, ""},
		{"ZeroTotal", 0, 0, 0, 0, false, MsgTotalNotPositive},
		{"NegativeTotal", -5, 0, 0, 0, false, MsgTotalNotPositive},
		{"NegativeYes", 10, -1, 0, 0, false, MsgNegativeValues},
		{"NegativeMaybe", 10, 0, -1, 0, false, MsgNegativeValues},
		{"NegativeNo", 10, 0, 0, -0.5, false, MsgNegativeValues},
		{"SumExceedsTotal", 10, 5, 5, 1, false, MsgSumExceedsTotal},
		// First failing rule wins.
		{"ZeroTotalBeatsNegative", 0, -1, 0, 0, false, MsgTotalNotPositive},
		{"NegativeBeatsExceeding", 10, -1, 20, 0, false, MsgNegativeValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.t, tt.y, tt.m, tt.n)
			if got.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (%q)", got.Valid, tt.valid, got.Message)
			}
			if got.Message != tt.expectedReason {
				t.Errorf("Message = %q, want %q", got.Message, tt.expectedReason)
			}
		})
	}
}

func TestValidate_ExceedingSumMentionsTotal(t *testing.T) {
	for total := 1.0; total <= 20; total++ {
		got := Validate(total, total, 1, 0)
		if got.Valid {
			t.Fatalf("total %v: expected invalid", total)
		}
		if got.Message != MsgSumExceedsTotal {
			t.Errorf("total %v: unexpected message %q", total, got.Message)
		}
	}
}
