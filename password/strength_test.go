package password

import (
	"math"
	"testing"
)

func TestEvaluateStrengthShortPasswords(t *testing.T) {
	for _, pw := range []string{"", "a", "Ab1!", "Abcdef1"} {
		result := EvaluateStrength(pw)
		if result.Requirements.MinLength {
			t.Fatalf("expected minLength=false for %q", pw)
		}
		if !containsFeedback(result.Feedback, "At least 8 characters") {
			t.Fatalf("expected length feedback for %q, got %v", pw, result.Feedback)
		}
	}
}

func TestEvaluateStrengthScoreBounds(t *testing.T) {
	passwords := []string{
		"",
		"password",
		"123456",
		"Password123!",
		"xXyYzZ!@#123456789longEnough",
		"qwerty111abc123password",
	}

	for _, pw := range passwords {
		result := EvaluateStrength(pw)
		if result.Score < 0 || result.Score > 4 {
			t.Fatalf("score out of bounds for %q: %v", pw, result.Score)
		}
		want := result.Score / 4 * 100
		if math.Abs(result.Percentage-want) > 1e-9 {
			t.Fatalf("percentage mismatch for %q: got %v want %v", pw, result.Percentage, want)
		}
	}
}

func TestClassifyScoreThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Strength
		color string
	}{
		{1.99, StrengthWeak, "red"},
		{2.0, StrengthFair, "yellow"},
		{2.99, StrengthFair, "yellow"},
		{3.0, StrengthGood, "blue"},
		{3.49, StrengthGood, "blue"},
		{3.5, StrengthStrong, "green"},
		{4.0, StrengthStrong, "green"},
	}

	for _, tc := range cases {
		strength, color := classifyScore(tc.score)
		if strength != tc.want || color != tc.color {
			t.Fatalf("score %v: got %s/%s, want %s/%s", tc.score, strength, color, tc.want, tc.color)
		}
	}
}

func TestEvaluateStrengthAllRequirements(t *testing.T) {
	result := EvaluateStrength("Password123!")

	req := result.Requirements
	if !req.MinLength || !req.HasUppercase || !req.HasLowercase || !req.HasNumber || !req.HasSpecial {
		t.Fatalf("expected all requirement flags true, got %+v", req)
	}
}

func TestEvaluateStrengthCommonPatternPenalty(t *testing.T) {
	// Both contain "123"; the second avoids every blacklisted substring.
	penalized := EvaluateStrength("Zz!123zzZZ")
	clean := EvaluateStrength("Zz!479zzZZ")

	if penalized.Score >= clean.Score {
		t.Fatalf("expected pattern penalty: %v >= %v", penalized.Score, clean.Score)
	}
	if !containsFeedback(penalized.Feedback, "Avoid common patterns") {
		t.Fatalf("expected pattern feedback, got %v", penalized.Feedback)
	}
	if containsFeedback(clean.Feedback, "Avoid common patterns") {
		t.Fatalf("unexpected pattern feedback, got %v", clean.Feedback)
	}
}

func TestEvaluateStrengthPenaltyAppliesOnce(t *testing.T) {
	// Multiple blacklisted substrings still cost a single point.
	multi := EvaluateStrength("Zz!123abcZZ")
	single := EvaluateStrength("Zz!123zxcZZ")

	if multi.Score != single.Score {
		t.Fatalf("expected single penalty: %v != %v", multi.Score, single.Score)
	}
}

func TestEvaluateStrengthLengthBonuses(t *testing.T) {
	base := EvaluateStrength("Zxcvbnm!")         // 8 chars
	mid := EvaluateStrength("Zxcvbnm!qwzx")      // 12 chars, no blacklist
	long := EvaluateStrength("Zxcvbnm!qwzxplmk") // 16 chars

	if mid.Score != base.Score+0.5 {
		t.Fatalf("expected +0.5 at 12 chars: base=%v mid=%v", base.Score, mid.Score)
	}
	if long.Score != base.Score+1 {
		t.Fatalf("expected +1 at 16 chars: base=%v long=%v", base.Score, long.Score)
	}
}

func containsFeedback(feedback []string, want string) bool {
	for _, f := range feedback {
		if f == want {
			return true
		}
	}
	return false
}
