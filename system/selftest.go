package system

import (
	"fmt"
)

// selfTestBase is where the diagnostic program is assembled. Maps to
// physical RDRAM at 0x2000, clear of the boot program area.
const selfTestBase = 0x80002000

// selfTestProgram exercises one instruction from every major family.
var selfTestProgram = []uint32{
	0x20010064, // ADDI  r1, r0, 100
	0x3402FF00, // ORI   r2, r0, 0xFF00
	0x00221820, // ADD   r3, r1, r2
	0x00412022, // SUB   r4, r2, r1
	0x00412824, // AND   r5, r2, r1
	0x3C061234, // LUI   r6, 0x1234
	0x00220018, // MULTU r1, r2
	0x00003812, // MFLO  r7
}

// selfTestChecks pairs a register with the value the program must have
// left in it.
var selfTestChecks = []struct {
	reg  int
	want uint64
	name string
}{
	{1, 100, "ADDI"},
	{2, 0xFF00, "ORI"},
	{3, 100 + 0xFF00, "ADD"},
	{4, 0xFF00 - 100, "SUB"},
	{5, 0xFF00 & 100, "AND"},
	{6, 0x12340000, "LUI"},
	{7, 100 * 0xFF00, "MULTU/MFLO"},
}

// SelfTest assembles the diagnostic program into RDRAM, runs it, and
// verifies the register results. CPU state is clobbered; callers should
// Reset or load an image afterwards.
func (sys *System) SelfTest() error {
	sys.mu.Lock()

	for i, word := range selfTestProgram {
		sys.Memory.WriteWord(selfTestBase+uint64(i)*4, uint64(word))
	}
	sys.CPU.PC = selfTestBase
	sys.CPU.NextPC = selfTestBase + 4
	for i := range sys.CPU.Registers {
		sys.CPU.Registers[i] = 0
	}

	for range selfTestProgram {
		sys.CPU.Step()
	}

	var failed error
	for _, c := range selfTestChecks {
		if got := sys.CPU.Registers[c.reg]; got != c.want {
			failed = fmt.Errorf("self test: %s: r%d = %X, expected %X", c.name, c.reg, got, c.want)
			break
		}
	}
	sys.mu.Unlock()

	if failed != nil {
		sys.log.Printf("%v", failed)
		_ = sys.console.WriteConsole(fmt.Sprintf("SELF TEST FAILED: %v\n", failed))
		return failed
	}

	sys.log.Printf("self test passed")
	_ = sys.console.WriteConsole("Self test passed.\n")
	return nil
}
