package cpu

import "fmt"

const (
	flagRTRSImm = iota // ADDIU rt, rs, imm
	flagRTImm          // LUI rt, imm
	flagBranch         // BEQ rs, rt, offset
	flagJump           // J target
	flagMem            // LW rt, offset(rs)
	flagShift          // SLL rd, rt, sh
	flagRS             // JR rs
	flagRDRS           // JALR rd, rs
	flagRD             // MFLO rd
	flagRSRT           // MULTU rs, rt
	flagRDRSRT         // ADD rd, rs, rt
)

var disasmtable = []struct {
	mask, match uint32
	msg         string
	flag        int
}{
	{0xFC000000, 0x08000000, "J", flagJump},
	{0xFC000000, 0x0C000000, "JAL", flagJump},
	{0xFC000000, 0x10000000, "BEQ", flagBranch},
	{0xFC000000, 0x14000000, "BNE", flagBranch},
	{0xFC000000, 0x20000000, "ADDI", flagRTRSImm},
	{0xFC000000, 0x24000000, "ADDIU", flagRTRSImm},
	{0xFC000000, 0x30000000, "ANDI", flagRTRSImm},
	{0xFC000000, 0x34000000, "ORI", flagRTRSImm},
	{0xFC000000, 0x3C000000, "LUI", flagRTImm},
	{0xFC000000, 0x8C000000, "LW", flagMem},
	{0xFC000000, 0xAC000000, "SW", flagMem},
	{0xFC00003F, 0x00000000, "SLL", flagShift},
	{0xFC00003F, 0x00000002, "SRL", flagShift},
	{0xFC00003F, 0x00000008, "JR", flagRS},
	{0xFC00003F, 0x00000009, "JALR", flagRDRS},
	{0xFC00003F, 0x00000012, "MFLO", flagRD},
	{0xFC00003F, 0x00000018, "MULTU", flagRSRT},
	{0xFC00003F, 0x00000020, "ADD", flagRDRSRT},
	{0xFC00003F, 0x00000021, "ADDU", flagRDRSRT},
	{0xFC00003F, 0x00000022, "SUB", flagRDRSRT},
	{0xFC00003F, 0x00000023, "SUBU", flagRDRSRT},
	{0xFC00003F, 0x00000024, "AND", flagRDRSRT},
	{0xFC00003F, 0x00000025, "OR", flagRDRSRT},
}

// Disasm produces assembler text out of a 32 bit instruction word.
// Anything outside the implemented subset comes back as a raw .word
// directive, mirroring its no-op execution.
func Disasm(ins Instruction) string {
	w := uint32(ins)
	if w == 0 {
		return "NOP"
	}
	for _, l := range disasmtable {
		if w&l.mask != l.match {
			continue
		}
		switch l.flag {
		case flagRTRSImm:
			return fmt.Sprintf("%s r%d, r%d, 0x%X", l.msg, ins.Rt(), ins.Rs(), ins.Imm())
		case flagRTImm:
			return fmt.Sprintf("%s r%d, 0x%X", l.msg, ins.Rt(), ins.Imm())
		case flagBranch:
			off := int64(int16(w&0xFFFF)) << 2
			return fmt.Sprintf("%s r%d, r%d, %+d", l.msg, ins.Rs(), ins.Rt(), off)
		case flagJump:
			return fmt.Sprintf("%s 0x%07X", l.msg, ins.Target()<<2)
		case flagMem:
			return fmt.Sprintf("%s r%d, %d(r%d)", l.msg, ins.Rt(), int16(w&0xFFFF), ins.Rs())
		case flagShift:
			return fmt.Sprintf("%s r%d, r%d, %d", l.msg, ins.Rd(), ins.Rt(), ins.Sh())
		case flagRS:
			return fmt.Sprintf("%s r%d", l.msg, ins.Rs())
		case flagRDRS:
			return fmt.Sprintf("%s r%d, r%d", l.msg, ins.Rd(), ins.Rs())
		case flagRD:
			return fmt.Sprintf("%s r%d", l.msg, ins.Rd())
		case flagRSRT:
			return fmt.Sprintf("%s r%d, r%d", l.msg, ins.Rs(), ins.Rt())
		case flagRDRSRT:
			return fmt.Sprintf("%s r%d, r%d, r%d", l.msg, ins.Rd(), ins.Rs(), ins.Rt())
		}
	}
	return fmt.Sprintf(".word 0x%08X", w)
}
