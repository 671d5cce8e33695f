package memory

import "encoding/binary"

// memory sizes and the virtual address map:
const (
	// RDRAMSize is the capacity of the console's working memory.
	RDRAMSize = 8 * 1024 * 1024

	// CartSize is the capacity of the cartridge image buffer.
	CartSize = 64 * 1024 * 1024

	// CartWindowStart .. CartWindowEnd is the virtual window through which
	// the loaded image is visible, read-only.
	CartWindowStart = 0x10000000
	CartWindowEnd   = 0x14000000

	// KSEG0 and KSEG1, the unmapped kernel segments. Addresses in this
	// range map to physical memory by dropping the top three bits.
	ksegStart = 0x80000000
	ksegEnd   = 0xBFFFFFFF
	ksegMask  = 0x1FFFFFFF
)

// ByteOrder identifies the on-disk byte order of the loaded image.
// Informational only: the in-memory image is normalized to big-endian
// words regardless.
type ByteOrder int

const (
	Unknown ByteOrder = iota
	BigEndian
	ByteSwapped
	LittleEndian
)

func (b ByteOrder) String() string {
	switch b {
	case BigEndian:
		return "Z64 (big-endian)"
	case ByteSwapped:
		return "V64 (byte-swapped)"
	case LittleEndian:
		return "N64 (little-endian)"
	}
	return "unknown"
}

// Memory is the console address space: working RDRAM below the CPU and
// the cartridge image buffer mapped in through the cartridge window.
// All word access is 32 bit, aligned, big-endian.
type Memory struct {
	RDRAM []byte
	Cart  []byte
	Order ByteOrder
}

// New allocates both buffers. They live for the process lifetime;
// LoadImage replaces the cartridge contents wholesale, CPU stores
// mutate RDRAM.
func New() *Memory {
	return &Memory{
		RDRAM: make([]byte, RDRAMSize),
		Cart:  make([]byte, CartSize),
		Order: Unknown,
	}
}

// TranslateVirtual maps a 32 bit virtual address to a physical offset.
// The unmapped kernel segments translate by masking, everything else
// passes through unchanged. Pure function, no side effects.
func TranslateVirtual(addr uint32) uint32 {
	if addr >= ksegStart && addr <= ksegEnd {
		return addr & ksegMask
	}
	return addr
}

// ReadWord returns the big-endian word at the given virtual address.
// The cartridge window takes priority over the regular translation path.
// Out-of-range reads return 0: the core never faults on a bad address.
func (m *Memory) ReadWord(addr uint64) uint32 {
	v := uint32(addr)
	if v >= CartWindowStart && v < CartWindowEnd {
		p := int(v - CartWindowStart)
		if p+4 <= len(m.Cart) {
			return binary.BigEndian.Uint32(m.Cart[p:])
		}
	}
	p := int(TranslateVirtual(v))
	if p+4 <= len(m.RDRAM) {
		return binary.BigEndian.Uint32(m.RDRAM[p:])
	}
	return 0
}

// WriteWord stores the low 32 bits of val at the given virtual address.
// Writes into the cartridge window are discarded, the image is read-only
// after load. Out-of-range writes are discarded as well.
func (m *Memory) WriteWord(addr uint64, val uint64) {
	v := uint32(addr)
	if v >= CartWindowStart && v < CartWindowEnd {
		return
	}
	p := int(TranslateVirtual(v))
	if p+4 <= len(m.RDRAM) {
		binary.BigEndian.PutUint32(m.RDRAM[p:], uint32(val))
	}
}

// LoadImage normalizes a raw cartridge image to big-endian words and
// copies it into the start of the image buffer. The first byte selects
// the on-disk byte order:
//
//	0x80  big-endian, copied verbatim
//	0x37  byte-swapped, every aligned 4 byte group reversed
//	0x40  little-endian words, re-stored big-endian
//
// A trailing partial group is left as-is. On failure nothing is mutated;
// normalization happens in a scratch copy before committal. Returns the
// number of bytes loaded.
func (m *Memory) LoadImage(raw []byte) (int, error) {
	if len(raw) < 4 {
		return 0, &FormatError{Reason: ErrImageTooShort, Size: len(raw)}
	}
	if len(raw) > len(m.Cart) {
		return 0, &FormatError{Reason: ErrImageTooLarge, Size: len(raw)}
	}

	data := make([]byte, len(raw))
	copy(data, raw)

	var order ByteOrder
	switch raw[0] {
	case 0x80:
		order = BigEndian
	case 0x37:
		order = ByteSwapped
		for i := 0; i+4 <= len(data); i += 4 {
			data[i], data[i+1], data[i+2], data[i+3] = data[i+3], data[i+2], data[i+1], data[i]
		}
	case 0x40:
		order = LittleEndian
		for i := 0; i+4 <= len(data); i += 4 {
			w := binary.LittleEndian.Uint32(data[i:])
			binary.BigEndian.PutUint32(data[i:], w)
		}
	default:
		return 0, &FormatError{Reason: ErrBadMagic, Magic: raw[0]}
	}

	copy(m.Cart, data)
	m.Order = order
	return len(raw), nil
}
