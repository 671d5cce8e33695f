package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollbackBounded(t *testing.T) {
	q := NewScrollback(3)
	assert.Zero(t, q.Len())

	q.Push("one")
	q.Push("two")
	q.Push("three")
	assert.Equal(t, []string{"one", "two", "three"}, q.Lines())

	// pushing past capacity drops the oldest line
	q.Push("four")
	assert.Equal(t, []string{"two", "three", "four"}, q.Lines())
	assert.Equal(t, 3, q.Len())
}

func TestSimpleConsole(t *testing.T) {
	var b strings.Builder
	c := NewSimpleWriter(&b)

	err := c.WriteConsole("hello\nworld\n")
	assert.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", b.String())

	// empty lines are swallowed
	err = c.WriteConsole("\n\n")
	assert.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", b.String())
}
