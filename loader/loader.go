// Package loader reads a MIPS-I program image from disk into the
// instruction word stream vm.NewMemory expects.
package loader

import (
	"fmt"
	"io"
	"os"
)

// LoadFile reads a raw big-endian instruction image from path. A
// trailing partial word is padded with zero bytes rather than
// rejected, matching how a linker may leave a short final section.
func LoadFile(path string) ([]uint32, error) {
	f, err := os.Open(path) // #nosec G304 -- user-specified program image
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a raw big-endian instruction image from r.
func Load(r io.Reader) ([]uint32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	n := (len(raw) + 3) / 4
	words := make([]uint32, n)
	for i := 0; i < n; i++ {
		var buf [4]byte
		copy(buf[:], raw[i*4:])
		words[i] = uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	}
	return words, nil
}
