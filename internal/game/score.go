package game

// Score is the round's point tally. It only grows between resets.
type Score struct {
	value    int
	onUpdate func(int)
}

// NewScore returns a zero score that reports every change to onUpdate.
func NewScore(onUpdate func(int)) *Score {
	return &Score{onUpdate: onUpdate}
}

// Value returns the current tally.
func (s *Score) Value() int { return s.value }

// Add credits points. Non-positive amounts are ignored.
func (s *Score) Add(points int) {
	if points <= 0 {
		return
	}
	s.value += points
	s.notify()
}

// Reset sets the tally back to zero.
func (s *Score) Reset() {
	s.value = 0
	s.notify()
}

func (s *Score) notify() {
	if s.onUpdate != nil {
		s.onUpdate(s.value)
	}
}
