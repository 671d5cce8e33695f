package cpu

// Instruction is a single 32 bit MIPS instruction word.
type Instruction uint32

// Op returns the primary opcode, bits 31:26.
func (i Instruction) Op() uint32 { return uint32(i) >> 26 }

// Rs returns the source register index, bits 25:21.
func (i Instruction) Rs() uint32 { return (uint32(i) >> 21) & 0x1F }

// Rt returns the target register index, bits 20:16.
func (i Instruction) Rt() uint32 { return (uint32(i) >> 16) & 0x1F }

// Rd returns the destination register index, bits 15:11.
func (i Instruction) Rd() uint32 { return (uint32(i) >> 11) & 0x1F }

// Sh returns the shift amount, bits 10:6.
func (i Instruction) Sh() uint32 { return (uint32(i) >> 6) & 0x1F }

// Fn returns the function code, bits 5:0, used by the special dispatch.
func (i Instruction) Fn() uint32 { return uint32(i) & 0x3F }

// Imm returns the 16 bit immediate, zero-extended.
func (i Instruction) Imm() uint64 { return uint64(uint32(i) & 0xFFFF) }

// SignedImm returns the 16 bit immediate sign-extended to 64 bits.
func (i Instruction) SignedImm() uint64 {
	imm := uint64(uint32(i) & 0xFFFF)
	if imm&0x8000 != 0 {
		imm |= 0xFFFFFFFFFFFF0000
	}
	return imm
}

// Target returns the 26 bit jump target field.
func (i Instruction) Target() uint64 { return uint64(uint32(i) & 0x3FFFFFF) }
