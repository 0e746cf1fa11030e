// Package lzma decodes the LZMA streams embedded in UEFI compression
// sections. It is a narrow seam around github.com/ulikunitz/xz/lzma so the
// section iterator never touches the xz API directly.
package lzma

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Decode decompresses an LZMA stream as found in an EFI_SECTION_COMPRESSION
// payload.
func Decode(encoded []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
