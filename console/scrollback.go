package console

// Scrollback represents a bounded FIFO of console lines. Once the queue
// is full, the oldest line is dropped for every new one.
type Scrollback struct {
	lines   []string
	maxSize int
}

// NewScrollback creates a new empty scrollback queue.
func NewScrollback(maxSize int) *Scrollback {
	q := &Scrollback{}
	q.maxSize = maxSize
	return q
}

// Push adds a line to the rear of the queue, evicting the oldest line
// when the queue is at capacity.
func (q *Scrollback) Push(line string) {
	if len(q.lines) == q.maxSize {
		q.lines = q.lines[1:]
	}
	q.lines = append(q.lines, line)
}

// Lines returns the retained lines, oldest first.
func (q *Scrollback) Lines() []string {
	out := make([]string, len(q.lines))
	copy(out, q.lines)
	return out
}

// Len returns the number of retained lines.
func (q *Scrollback) Len() int {
	return len(q.lines)
}
