package system

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"dot64/console"
	"dot64/cpu"
	"dot64/memory"
)

// cartridge entry point handshake:
const (
	// EntryPointerAddr is the header word the entry address is read from
	// after a successful load.
	EntryPointerAddr = 0x10000034

	// DefaultEntry is used for images too small to carry a header.
	DefaultEntry = 0x10000400

	// headerMin is the image size above which the header entry word is
	// trusted.
	headerMin = 0x38
)

// StepDelay is the pacing of the continuous run loop.
const StepDelay = 10 * time.Millisecond

// System wires the CPU and the address space together and serializes
// every driver operation behind one mutex, so the run loop and the
// keyboard commands never interleave inside a step.
type System struct {
	CPU    *cpu.CPU
	Memory *memory.Memory

	mu sync.Mutex

	console console.Console
	log     *log.Logger
}

// InitializeSystem initializes the emulated console hardware.
func InitializeSystem(c console.Console, logger *log.Logger) *System {
	sys := new(System)
	sys.console = c
	sys.log = logger

	sys.Memory = memory.New()
	sys.CPU = cpu.New(sys.Memory)

	_ = sys.console.WriteConsole("dot64 cartridge runtime\nRDRAM 8MB, cartridge window 64MB\n")
	return sys
}

// Reset reinitializes the CPU. Memory contents are preserved.
func (sys *System) Reset() {
	sys.mu.Lock()
	sys.CPU.Reset()
	sys.mu.Unlock()

	sys.log.Printf("cpu reset")
	_ = sys.console.WriteConsole("CPU reset complete.\n")
}

// Step executes a single instruction and reports the executed word and
// the new state on the console.
func (sys *System) Step() {
	sys.mu.Lock()
	ins := sys.CPU.Fetch()
	sys.CPU.Step()
	pc := sys.CPU.PC
	cycles := sys.CPU.Cycles
	sys.mu.Unlock()

	_ = sys.console.WriteConsole(fmt.Sprintf("%-28s pc=%08X cycles=%d\n",
		cpu.Disasm(ins), uint32(pc), cycles))
}

// Run starts the cadence driver: a goroutine stepping the CPU every
// StepDelay until the run flag is cleared. A second Run while one is
// active is a no-op.
func (sys *System) Run() {
	sys.mu.Lock()
	if sys.CPU.Running {
		sys.mu.Unlock()
		return
	}
	sys.CPU.Running = true
	sys.mu.Unlock()

	_ = sys.console.WriteConsole("Running.\n")
	go func() {
		for {
			sys.mu.Lock()
			if !sys.CPU.Running {
				sys.mu.Unlock()
				_ = sys.console.WriteConsole("Run halted.\n")
				return
			}
			sys.CPU.Step()
			sys.mu.Unlock()
			time.Sleep(StepDelay)
		}
	}()
}

// Stop clears the run flag. It takes effect once the in-flight step
// returns.
func (sys *System) Stop() {
	sys.mu.Lock()
	sys.CPU.Running = false
	sys.mu.Unlock()
}

// Running reports whether the cadence driver should keep stepping.
func (sys *System) Running() bool {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.CPU.Running
}

// LoadImage normalizes raw image bytes into the cartridge window and
// seeds the program counter from the entry word in the image header:
// the word at EntryPointerAddr for images large enough to carry a
// header, DefaultEntry otherwise. Returns the loaded size.
func (sys *System) LoadImage(raw []byte) (int, error) {
	sys.mu.Lock()
	defer sys.mu.Unlock()

	size, err := sys.Memory.LoadImage(raw)
	if err != nil {
		return 0, err
	}

	entry := uint64(DefaultEntry)
	if size > headerMin {
		entry = uint64(sys.Memory.ReadWord(EntryPointerAddr))
	}
	sys.CPU.PC = entry
	sys.CPU.NextPC = entry + 4

	sys.log.Printf("image loaded: %d bytes [%v], entry %08X", size, sys.Memory.Order, uint32(entry))
	return size, nil
}

// LoadImageFile reads a cartridge image from disk on behalf of the
// shell and loads it. The format error, if any, is reported on the
// console and returned unchanged.
func (sys *System) LoadImageFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		_ = sys.console.WriteConsole(fmt.Sprintf("Load error: %v\n", err))
		return 0, err
	}

	size, err := sys.LoadImage(raw)
	if err != nil {
		_ = sys.console.WriteConsole(fmt.Sprintf("Invalid image format: %v\n", err))
		return 0, err
	}

	_ = sys.console.WriteConsole(fmt.Sprintf("Image loaded: %s (%d bytes) [%v]\n",
		path, size, sys.Memory.Order))
	_ = sys.console.WriteConsole(fmt.Sprintf("Entry point 0x%08X\n", uint32(sys.EntryPoint())))
	return size, nil
}

// EntryPoint returns the program counter the last load seeded.
func (sys *System) EntryPoint() uint64 {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.CPU.PC
}

// RegisterDump returns the register pane contents.
func (sys *System) RegisterDump() string {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.CPU.DumpRegisters()
}

// StatusLine returns the one line summary for the status pane.
func (sys *System) StatusLine() string {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return fmt.Sprintf("pc=%08X  cycles=%d  running=%v  image=%v",
		uint32(sys.CPU.PC), sys.CPU.Cycles, sys.CPU.Running, sys.Memory.Order)
}
