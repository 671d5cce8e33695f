package system

import (
	"encoding/binary"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dot64/console"
	"dot64/memory"
)

func newTestSystem() *System {
	c := console.NewSimpleWriter(io.Discard)
	return InitializeSystem(c, log.New(io.Discard, "", 0))
}

func TestInitializeSystem(t *testing.T) {
	sys := newTestSystem()
	require.NotNil(t, sys.CPU)
	require.NotNil(t, sys.Memory)
	assert.Equal(t, uint64(0xA4000040), sys.CPU.PC)
}

func TestLoadImageEntryPoint(t *testing.T) {
	sys := newTestSystem()

	// big-endian image with an entry word in the header
	raw := make([]byte, 0x40)
	raw[0] = 0x80
	binary.BigEndian.PutUint32(raw[0x34:], 0x10001000)

	size, err := sys.LoadImage(raw)
	require.NoError(t, err)
	assert.Equal(t, 0x40, size)
	assert.Equal(t, uint64(0x10001000), sys.EntryPoint())
	assert.Equal(t, uint64(0x10001004), sys.CPU.NextPC)
	assert.Equal(t, memory.BigEndian, sys.Memory.Order)
}

func TestLoadImageDefaultEntry(t *testing.T) {
	sys := newTestSystem()

	// too small to carry a header word
	raw := []byte{0x80, 0x00, 0x00, 0x00, 0x12, 0x34, 0x56, 0x78}
	size, err := sys.LoadImage(raw)
	require.NoError(t, err)
	assert.Equal(t, 8, size)
	assert.Equal(t, uint64(DefaultEntry), sys.EntryPoint())
}

func TestLoadImageBadFormat(t *testing.T) {
	sys := newTestSystem()
	pc := sys.EntryPoint()

	_, err := sys.LoadImage([]byte{0x7F, 0x00, 0x00, 0x00})
	require.Error(t, err)
	assert.ErrorIs(t, err, memory.ErrBadMagic)

	// a failed load leaves the CPU untouched
	assert.Equal(t, pc, sys.EntryPoint())
}

func TestSelfTest(t *testing.T) {
	sys := newTestSystem()
	assert.NoError(t, sys.SelfTest())
}

func TestStepCountsCycles(t *testing.T) {
	sys := newTestSystem()
	sys.Step()
	sys.Step()
	assert.Equal(t, uint64(2), sys.CPU.Cycles)
}

func TestBootProgram(t *testing.T) {
	sys := newTestSystem()
	sys.Boot()
	defer sys.Stop()

	// the program sums 1..10 into physical address 0x100 and spins
	require.Eventually(t, func() bool {
		sys.mu.Lock()
		defer sys.mu.Unlock()
		return sys.Memory.ReadWord(bootResult) == 55
	}, 3*time.Second, 20*time.Millisecond)
}

func TestRunStop(t *testing.T) {
	sys := newTestSystem()

	sys.Run()
	assert.True(t, sys.Running())

	// a second Run while active is a no-op
	sys.Run()

	sys.Stop()
	require.Eventually(t, func() bool {
		return !sys.Running()
	}, time.Second, 10*time.Millisecond)

	cycles := sys.CPU.Cycles
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, cycles, sys.CPU.Cycles, "stopped system must not step")
}
