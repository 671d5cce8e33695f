package memory

import (
	"errors"
	"fmt"
)

var (
	ErrImageTooShort = errors.New("image shorter than one word")
	ErrImageTooLarge = errors.New("image exceeds cartridge capacity")
	ErrBadMagic      = errors.New("unrecognized magic byte")
)

// FormatError reports why LoadImage rejected an image. It is the only
// error the address space ever produces.
type FormatError struct {
	Reason error
	Magic  byte
	Size   int
}

func (e *FormatError) Error() string {
	if errors.Is(e.Reason, ErrBadMagic) {
		return fmt.Sprintf("invalid image format: magic byte 0x%02X", e.Magic)
	}
	return fmt.Sprintf("invalid image format: %v (%d bytes)", e.Reason, e.Size)
}

func (e *FormatError) Unwrap() error {
	return e.Reason
}
