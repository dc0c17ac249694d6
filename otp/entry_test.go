package otp

import "testing"

func TestEnterSequentialDigitsAutoSubmits(t *testing.T) {
	entry := NewEntry()

	digits := []rune{'1', '2', '3', '4', '5', '6'}
	for i, d := range digits[:5] {
		if submit := entry.Enter(i, d); submit {
			t.Fatalf("unexpected submit after slot %d", i)
		}
		if entry.Focus() != i+1 {
			t.Fatalf("expected focus %d, got %d", i+1, entry.Focus())
		}
	}

	if submit := entry.Enter(5, '6'); !submit {
		t.Fatal("expected auto-submit after last slot")
	}
	if entry.Code() != "123456" {
		t.Fatalf("unexpected code %q", entry.Code())
	}
	if !entry.Complete() {
		t.Fatal("expected complete entry")
	}
}

func TestEnterRejectsNonDigitsSilently(t *testing.T) {
	entry := NewEntry()

	for _, r := range []rune{'a', ' ', '-', 'Ω'} {
		if submit := entry.Enter(0, r); submit {
			t.Fatalf("unexpected submit for %q", r)
		}
	}
	if entry.Code() != "" {
		t.Fatalf("expected empty code, got %q", entry.Code())
	}
	if entry.Focus() != 0 {
		t.Fatalf("expected focus to stay at 0, got %d", entry.Focus())
	}
}

func TestBackspaceSemantics(t *testing.T) {
	entry := NewEntry()
	entry.Enter(0, '1')
	entry.Enter(1, '2')

	// Filled slot: clears in place.
	entry.Backspace(1)
	if entry.Code() != "1" {
		t.Fatalf("expected slot 1 cleared, code %q", entry.Code())
	}

	// Empty slot: moves focus left without deleting.
	entry.Backspace(1)
	if entry.Focus() != 0 {
		t.Fatalf("expected focus 0, got %d", entry.Focus())
	}
	if entry.Code() != "1" {
		t.Fatalf("expected code unchanged, got %q", entry.Code())
	}

	// Slot 0 empty: no-op.
	empty := NewEntry()
	empty.Backspace(0)
	if empty.Focus() != 0 {
		t.Fatalf("expected focus 0, got %d", empty.Focus())
	}
}

func TestPasteAllDigits(t *testing.T) {
	entry := NewEntry()

	if submit := entry.Paste("123456"); !submit {
		t.Fatal("expected full paste to trigger submit")
	}
	if entry.Code() != "123456" {
		t.Fatalf("unexpected code %q", entry.Code())
	}
}

func TestPastePartialPadsEmpty(t *testing.T) {
	entry := NewEntry()

	if submit := entry.Paste("123"); submit {
		t.Fatal("partial paste must not submit")
	}
	if entry.Code() != "123" {
		t.Fatalf("unexpected code %q", entry.Code())
	}
	if entry.Complete() {
		t.Fatal("expected incomplete entry")
	}
	if entry.Focus() != 3 {
		t.Fatalf("expected focus 3, got %d", entry.Focus())
	}
}

func TestPasteRejectsMixedInput(t *testing.T) {
	entry := NewEntry()
	entry.Enter(0, '9')

	for _, s := range []string{"12AB56", "1234567", "12 456", ""} {
		if submit := entry.Paste(s); submit {
			t.Fatalf("unexpected submit for %q", s)
		}
	}
	if entry.Code() != "9" {
		t.Fatalf("expected slots unchanged, code %q", entry.Code())
	}
}

func TestSubmitLifecycle(t *testing.T) {
	entry := NewEntry()

	if entry.BeginSubmit() {
		t.Fatal("incomplete entry must not submit")
	}

	entry.Paste("000000")
	if !entry.BeginSubmit() {
		t.Fatal("expected submit for complete entry")
	}
	if entry.State() != StateSubmitting {
		t.Fatalf("expected submitting, got %v", entry.State())
	}
	if entry.Enter(0, '1') {
		t.Fatal("entry must ignore keystrokes while submitting")
	}

	entry.MarkRejected()
	if entry.State() != StateRejected {
		t.Fatalf("expected rejected, got %v", entry.State())
	}
	if entry.Code() != "" {
		t.Fatalf("expected cleared slots, code %q", entry.Code())
	}
	if entry.Focus() != 0 {
		t.Fatalf("expected refocus on slot 0, got %d", entry.Focus())
	}

	// Rejection is recoverable: the next keystroke starts a new attempt.
	entry.Enter(0, '1')
	if entry.State() != StateEntering {
		t.Fatalf("expected entering after retry keystroke, got %v", entry.State())
	}

	entry.Paste("123456")
	entry.BeginSubmit()
	entry.MarkVerified()
	if entry.State() != StateVerified {
		t.Fatalf("expected verified, got %v", entry.State())
	}

	entry.Reset()
	if entry.State() != StateEntering || entry.Code() != "" || entry.Focus() != 0 {
		t.Fatal("expected reset to initial state")
	}
}
