package otp

// SlotCount is the fixed width of a verification code.
const SlotCount = 6

// State describes where an [Entry] is in its verification lifecycle.
type State uint8

const (
	// StateEntering is an exported constant or variable used by the sign-up security engine.
	StateEntering State = iota
	// StateSubmitting is an exported constant or variable used by the sign-up security engine.
	StateSubmitting
	// StateVerified is an exported constant or variable used by the sign-up security engine.
	StateVerified
	// StateRejected is an exported constant or variable used by the sign-up security engine.
	StateRejected
)

// String describes the string operation and its observable behavior.
func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateSubmitting:
		return "submitting"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Entry is the six-slot code buffer. Each slot holds one decimal digit or
// nothing. Entry is not safe for concurrent use; it models a single input
// surface driven by one event loop.
type Entry struct {
	slots [SlotCount]byte // 0 means empty
	focus int
	state State
}

// NewEntry returns an empty entry focused on slot 0.
func NewEntry() *Entry {
	return &Entry{}
}

// Enter stores a single decimal digit in slot i and advances focus to the
// next slot. Non-digit input and out-of-range slots are rejected silently.
// The returned submit flag is true when this keystroke filled the last slot
// and the code is complete, which is the auto-submit trigger.
func (e *Entry) Enter(i int, r rune) (submit bool) {
	if i < 0 || i >= SlotCount || r < '0' || r > '9' {
		return false
	}
	if e.state == StateSubmitting || e.state == StateVerified {
		return false
	}
	e.state = StateEntering

	e.slots[i] = byte(r)
	if i < SlotCount-1 {
		e.focus = i + 1
	}
	return i == SlotCount-1 && e.Complete()
}

// Backspace clears slot i when it holds a digit; on an already-empty slot it
// only moves focus to the previous slot.
func (e *Entry) Backspace(i int) {
	if i < 0 || i >= SlotCount {
		return
	}
	if e.state == StateSubmitting || e.state == StateVerified {
		return
	}
	e.state = StateEntering

	if e.slots[i] != 0 {
		e.slots[i] = 0
		return
	}
	if i > 0 {
		e.focus = i - 1
	}
}

// Paste distributes an all-digit string of at most [SlotCount] characters
// across the slots left to right, padding the remainder empty. Anything else
// is rejected and the slots are left untouched. The returned submit flag is
// true when the paste filled every slot.
func (e *Entry) Paste(s string) (submit bool) {
	if s == "" || len(s) > SlotCount {
		return false
	}
	if e.state == StateSubmitting || e.state == StateVerified {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	e.state = StateEntering

	for i := 0; i < SlotCount; i++ {
		if i < len(s) {
			e.slots[i] = s[i]
		} else {
			e.slots[i] = 0
		}
	}
	if len(s) < SlotCount {
		e.focus = len(s)
	} else {
		e.focus = SlotCount - 1
	}
	return len(s) == SlotCount
}

// Code returns the concatenation of all filled slots.
func (e *Entry) Code() string {
	buf := make([]byte, 0, SlotCount)
	for _, d := range e.slots {
		if d != 0 {
			buf = append(buf, d)
		}
	}
	return string(buf)
}

// Complete reports whether all six slots hold a digit.
func (e *Entry) Complete() bool {
	for _, d := range e.slots {
		if d == 0 {
			return false
		}
	}
	return true
}

// Focus returns the slot index that should receive the next keystroke.
func (e *Entry) Focus() int {
	return e.focus
}

// State returns the current lifecycle state.
func (e *Entry) State() State {
	return e.state
}

// BeginSubmit transitions a complete entry to Submitting. It reports false,
// leaving the entry untouched, when the code is not yet six digits.
func (e *Entry) BeginSubmit() bool {
	if !e.Complete() || e.state == StateSubmitting {
		return false
	}
	e.state = StateSubmitting
	return true
}

// MarkVerified records a successful verification. Terminal until Reset.
func (e *Entry) MarkVerified() {
	e.state = StateVerified
}

// MarkRejected records a failed attempt: all slots are cleared and focus
// returns to slot 0 so the next keystroke starts a fresh code.
func (e *Entry) MarkRejected() {
	e.slots = [SlotCount]byte{}
	e.focus = 0
	e.state = StateRejected
}

// Reset returns the entry to its initial empty state. Called on modal open
// and close.
func (e *Entry) Reset() {
	e.slots = [SlotCount]byte{}
	e.focus = 0
	e.state = StateEntering
}
