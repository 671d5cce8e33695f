package cpu

// Opcode implementations. Register arithmetic is 64 bit with natural
// wraparound; operands reach memory as 32 bit words. ADDI/ADDIU and
// SUB/SUBU share handlers: the trapping variants do not trap here.

// rt = rs + signExtend(imm)
func (c *CPU) addiOp(ins Instruction) {
	c.Registers[ins.Rt()] = c.Registers[ins.Rs()] + ins.SignedImm()
}

// rt = rs & zeroExtend(imm)
func (c *CPU) andiOp(ins Instruction) {
	c.Registers[ins.Rt()] = c.Registers[ins.Rs()] & ins.Imm()
}

// rt = rs | zeroExtend(imm)
func (c *CPU) oriOp(ins Instruction) {
	c.Registers[ins.Rt()] = c.Registers[ins.Rs()] | ins.Imm()
}

// rt = imm << 16
func (c *CPU) luiOp(ins Instruction) {
	c.Registers[ins.Rt()] = ins.Imm() << 16
}

// nextPc = (pc & 0xF0000000) | (target << 2)
func (c *CPU) jOp(ins Instruction) {
	c.NextPC = (c.PC & 0xF0000000) | (ins.Target() << 2)
}

// r31 = pc + 8, then jump
func (c *CPU) jalOp(ins Instruction) {
	c.Registers[31] = c.PC + 8
	c.jOp(ins)
}

func (c *CPU) beqOp(ins Instruction) {
	if c.Registers[ins.Rs()] == c.Registers[ins.Rt()] {
		c.NextPC = c.PC + 4 + (ins.SignedImm() << 2)
	}
}

func (c *CPU) bneOp(ins Instruction) {
	if c.Registers[ins.Rs()] != c.Registers[ins.Rt()] {
		c.NextPC = c.PC + 4 + (ins.SignedImm() << 2)
	}
}

// rt = mem[rs + signExtend(imm)]
func (c *CPU) lwOp(ins Instruction) {
	c.Registers[ins.Rt()] = uint64(c.mem.ReadWord(c.Registers[ins.Rs()] + ins.SignedImm()))
}

// mem[rs + signExtend(imm)] = rt
func (c *CPU) swOp(ins Instruction) {
	c.mem.WriteWord(c.Registers[ins.Rs()]+ins.SignedImm(), c.Registers[ins.Rt()])
}

// rd = rt << sh
func (c *CPU) sllOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.Registers[ins.Rt()] << ins.Sh()
}

// rd = rt >> sh, logical
func (c *CPU) srlOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.Registers[ins.Rt()] >> ins.Sh()
}

// nextPc = rs
func (c *CPU) jrOp(ins Instruction) {
	c.NextPC = c.Registers[ins.Rs()]
}

// rd = pc + 8, nextPc = rs
func (c *CPU) jalrOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.PC + 8
	c.NextPC = c.Registers[ins.Rs()]
}

// rd = lo
func (c *CPU) mfloOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.LO
}

// lo = low word of rs * rt, hi = high word
func (c *CPU) multuOp(ins Instruction) {
	p := c.Registers[ins.Rs()] * c.Registers[ins.Rt()]
	c.LO = p & 0xFFFFFFFF
	c.HI = (p >> 32) & 0xFFFFFFFF
}

// rd = rs + rt
func (c *CPU) addOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.Registers[ins.Rs()] + c.Registers[ins.Rt()]
}

// rd = rs - rt
func (c *CPU) subOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.Registers[ins.Rs()] - c.Registers[ins.Rt()]
}

// rd = rs & rt
func (c *CPU) andOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.Registers[ins.Rs()] & c.Registers[ins.Rt()]
}

// rd = rs | rt
func (c *CPU) orOp(ins Instruction) {
	c.Registers[ins.Rd()] = c.Registers[ins.Rs()] | c.Registers[ins.Rt()]
}
