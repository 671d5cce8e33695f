package cpu

import (
	"fmt"
	"strings"

	"dot64/memory"
)

// ResetVector is the boot ROM entry point of the real hardware, in the
// uncached kernel segment.
const ResetVector = 0xA4000040

// primary opcodes:
const (
	opSpecial = 0x00
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opADDI    = 0x08
	opADDIU   = 0x09
	opANDI    = 0x0C
	opORI     = 0x0D
	opLUI     = 0x0F
	opLW      = 0x23
	opSW      = 0x2B
)

// function codes for the special dispatch (primary opcode 0):
const (
	fnSLL   = 0x00
	fnSRL   = 0x02
	fnJR    = 0x08
	fnJALR  = 0x09
	fnMFLO  = 0x12
	fnMULTU = 0x18
	fnADD   = 0x20
	fnADDU  = 0x21
	fnSUB   = 0x22
	fnSUBU  = 0x23
	fnAND   = 0x24
	fnOR    = 0x25
)

// CPU is the R4300i interpreter core: 32 general registers of 64 bit
// width, two program counter slots, the multiply result registers and a
// cycle counter. Register 0 reads as zero at all times.
type CPU struct {
	Registers [32]uint64
	PC        uint64
	NextPC    uint64
	HI, LO    uint64
	Cycles    uint64

	// Running tells the external driver whether to keep invoking Step.
	// The core itself never schedules anything.
	Running bool

	mem *memory.Memory

	// opcode dispatch tables. The opcode function signature:
	// param: the decoded instruction word
	primaryOpcodes map[uint32]func(Instruction)
	specialOpcodes map[uint32]func(Instruction)
}

// New initializes and returns the CPU variable.
func New(mem *memory.Memory) *CPU {
	c := &CPU{mem: mem}

	c.primaryOpcodes = make(map[uint32]func(Instruction))
	c.specialOpcodes = make(map[uint32]func(Instruction))

	// jumps and branches:
	c.primaryOpcodes[opJ] = c.jOp
	c.primaryOpcodes[opJAL] = c.jalOp
	c.primaryOpcodes[opBEQ] = c.beqOp
	c.primaryOpcodes[opBNE] = c.bneOp

	// immediate forms:
	c.primaryOpcodes[opADDI] = c.addiOp
	c.primaryOpcodes[opADDIU] = c.addiOp
	c.primaryOpcodes[opANDI] = c.andiOp
	c.primaryOpcodes[opORI] = c.oriOp
	c.primaryOpcodes[opLUI] = c.luiOp

	// memory traffic:
	c.primaryOpcodes[opLW] = c.lwOp
	c.primaryOpcodes[opSW] = c.swOp

	// special dispatch, selected by the function code:
	c.specialOpcodes[fnSLL] = c.sllOp
	c.specialOpcodes[fnSRL] = c.srlOp
	c.specialOpcodes[fnJR] = c.jrOp
	c.specialOpcodes[fnJALR] = c.jalrOp
	c.specialOpcodes[fnMFLO] = c.mfloOp
	c.specialOpcodes[fnMULTU] = c.multuOp
	c.specialOpcodes[fnADD] = c.addOp
	c.specialOpcodes[fnADDU] = c.addOp
	c.specialOpcodes[fnSUB] = c.subOp
	c.specialOpcodes[fnSUBU] = c.subOp
	c.specialOpcodes[fnAND] = c.andOp
	c.specialOpcodes[fnOR] = c.orOp

	c.Reset()
	return c
}

// Reset returns the core to the architectural boot state: registers,
// HI/LO and the cycle counter cleared, program counter at the reset
// vector. Memory contents are left untouched.
func (c *CPU) Reset() {
	for i := range c.Registers {
		c.Registers[i] = 0
	}
	c.PC = ResetVector
	c.NextPC = c.PC + 4
	c.HI = 0
	c.LO = 0
	c.Cycles = 0
	c.Running = false
}

// Fetch reads the instruction word at the current program counter.
func (c *CPU) Fetch() Instruction {
	return Instruction(c.mem.ReadWord(c.PC))
}

// Step executes exactly one instruction: fetch, decode, execute, then
// advance the program counter. A jump or branch recorded in NextPC takes
// effect on the following fetch; the delay slot instruction is skipped.
func (c *CPU) Step() {
	ins := c.Fetch()
	c.Execute(ins)
	c.PC = c.NextPC
	c.NextPC = c.PC + 4
}

// Execute runs a single already-fetched instruction word without
// advancing the program counter. Register 0 is pinned back to zero and
// the cycle counter incremented regardless of what the instruction did.
// Words outside the implemented subset execute as no-ops.
func (c *CPU) Execute(ins Instruction) {
	if op := c.decode(ins); op != nil {
		op(ins)
	}
	c.Registers[0] = 0
	c.Cycles++
}

// decode resolves the instruction word to its opcode function, going
// through the special table when the primary opcode field is zero.
// Returns nil for anything outside the implemented subset.
func (c *CPU) decode(ins Instruction) func(Instruction) {
	if ins.Op() == opSpecial {
		return c.specialOpcodes[ins.Fn()]
	}
	return c.primaryOpcodes[ins.Op()]
}

// DumpRegisters displays register values for the register pane.
func (c *CPU) DumpRegisters() string {
	var res strings.Builder
	for i, reg := range c.Registers {
		fmt.Fprintf(&res, "r%-2d %08X  ", i, uint32(reg))
		if (i+1)%8 == 0 {
			res.WriteByte('\n')
		}
	}
	fmt.Fprintf(&res, "pc %08X  hi %08X  lo %08X  cycles %d",
		uint32(c.PC), uint32(c.HI), uint32(c.LO), c.Cycles)
	return res.String()
}
