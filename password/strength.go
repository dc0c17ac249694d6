package password

import "strings"

// Strength is the coarse label derived from a strength score.
type Strength string

const (
	// StrengthWeak is an exported constant or variable used by the sign-up security engine.
	StrengthWeak Strength = "weak"
	// StrengthFair is an exported constant or variable used by the sign-up security engine.
	StrengthFair Strength = "fair"
	// StrengthGood is an exported constant or variable used by the sign-up security engine.
	StrengthGood Strength = "good"
	// StrengthStrong is an exported constant or variable used by the sign-up security engine.
	StrengthStrong Strength = "strong"
)

// specialRunes is the fixed punctuation class counted as "special".
const specialRunes = `!@#$%^&*(),.?":{}|<>`

// commonPatterns are substrings that trigger the weak-pattern penalty.
// Matching is done against the lowercased password.
var commonPatterns = []string{"123", "abc", "password", "qwerty", "111"}

// Requirements holds the five boolean checks surfaced alongside the score.
type Requirements struct {
	MinLength    bool `json:"minLength"`
	HasUppercase bool `json:"hasUppercase"`
	HasLowercase bool `json:"hasLowercase"`
	HasNumber    bool `json:"hasNumber"`
	HasSpecial   bool `json:"hasSpecial"`
}

// StrengthResult is returned by [EvaluateStrength]. Score is clamped to
// [0,4]; Strength and Color are a total function of the clamped score;
// Percentage is Score/4*100. Feedback entries appear in check order.
type StrengthResult struct {
	Score        float64      `json:"score"`
	Strength     Strength     `json:"strength"`
	Color        string       `json:"color"`
	Percentage   float64      `json:"percentage"`
	Feedback     []string     `json:"feedback"`
	Requirements Requirements `json:"requirements"`
}

// EvaluateStrength scores a candidate password. Pure, synchronous, and total
// over all strings including the empty string; it never returns an error.
//
// Scoring: +1 for length >= 8, +0.5 at 12 and again at 16, +0.5 each for
// uppercase, lowercase, and digit presence, +1 for a special character, and
// -1 when the lowercased password contains a known weak substring. The final
// score is clamped to [0,4].
func EvaluateStrength(pw string) StrengthResult {
	req := Requirements{
		MinLength:    len(pw) >= 8,
		HasUppercase: containsRange(pw, 'A', 'Z'),
		HasLowercase: containsRange(pw, 'a', 'z'),
		HasNumber:    containsRange(pw, '0', '9'),
		HasSpecial:   strings.ContainsAny(pw, specialRunes),
	}

	var score float64
	var feedback []string

	if len(pw) >= 8 {
		score++
	} else {
		feedback = append(feedback, "At least 8 characters")
	}
	if len(pw) >= 12 {
		score += 0.5
	}
	if len(pw) >= 16 {
		score += 0.5
	}

	if req.HasUppercase {
		score += 0.5
	} else {
		feedback = append(feedback, "Add uppercase letters")
	}
	if req.HasLowercase {
		score += 0.5
	} else {
		feedback = append(feedback, "Add lowercase letters")
	}
	if req.HasNumber {
		score += 0.5
	} else {
		feedback = append(feedback, "Add numbers")
	}
	if req.HasSpecial {
		score++
	} else {
		feedback = append(feedback, "Add special characters")
	}

	lower := strings.ToLower(pw)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			score--
			feedback = append(feedback, "Avoid common patterns")
			break
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 4 {
		score = 4
	}

	strength, color := classifyScore(score)

	return StrengthResult{
		Score:        score,
		Strength:     strength,
		Color:        color,
		Percentage:   score / 4 * 100,
		Feedback:     feedback,
		Requirements: req,
	}
}

// classifyScore maps a clamped score onto non-overlapping threshold bands.
func classifyScore(score float64) (Strength, string) {
	switch {
	case score < 2:
		return StrengthWeak, "red"
	case score < 3:
		return StrengthFair, "yellow"
	case score < 3.5:
		return StrengthGood, "blue"
	default:
		return StrengthStrong, "green"
	}
}

// ContainsSpecial reports whether s contains at least one character from
// the special class recognized by the evaluator.
func ContainsSpecial(s string) bool {
	return strings.ContainsAny(s, specialRunes)
}

func containsRange(s string, lo, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= lo && s[i] <= hi {
			return true
		}
	}
	return false
}
