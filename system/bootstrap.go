package system

import "fmt"

// The built-in boot program: sums the integers 1..10, stores the result
// (55) at physical address 0x100 and spins. Useful for eyeballing the
// run loop without a cartridge image.
const (
	bootBase   = 0x80001000
	bootResult = 0x100
)

var bootProgram = []uint32{
	0x2401000A, // ADDIU r1, r0, 10
	0x24020000, // ADDIU r2, r0, 0
	0x00411021, // loop: ADDU r2, r2, r1
	0x2021FFFF, // ADDI  r1, r1, -1
	0x1420FFFD, // BNE   r1, r0, loop
	0xAC020100, // SW    r2, 0x100(r0)
	0x08000406, // spin: J spin
}

// Boot writes the built-in program into RDRAM, points the CPU at it and
// starts the run loop.
func (sys *System) Boot() {
	sys.mu.Lock()
	for i, word := range bootProgram {
		sys.Memory.WriteWord(bootBase+uint64(i)*4, uint64(word))
	}
	sys.CPU.PC = bootBase
	sys.CPU.NextPC = bootBase + 4
	sys.mu.Unlock()

	sys.log.Printf("boot program installed at %08X", uint32(bootBase))
	_ = sys.console.WriteConsole(fmt.Sprintf("Boot program loaded at 0x%08X.\n", uint32(bootBase)))
	sys.Run()
}
