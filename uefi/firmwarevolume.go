package uefi

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fwimage/fvextract/guid"
)

// fvFixedHeaderSize is the size, in bytes, of the portion of the EFI
// firmware volume header that has a fixed layout: zero vector, filesystem
// GUID, length, signature, attributes, header length, checksum, extended
// header offset, reserved byte and revision byte. The block map begins
// immediately after it, at offset 0x38.
const fvFixedHeaderSize = 0x38

// fvMinSize is the smallest buffer that could possibly hold a valid header
// plus a terminating block map entry.
const fvMinSize = fvFixedHeaderSize + 4

var fvSignature = binary.LittleEndian.Uint32([]byte("_FVH"))

// fvFixedHeader mirrors EFI_FIRMWARE_VOLUME_HEADER's fixed-size prefix,
// read with a single binary.Read so every mixed-width field lands at its
// exact on-disk offset.
type fvFixedHeader struct {
	ZeroVector      [16]byte
	FileSystemGUID  guid.GUID
	Length          uint64
	Signature       uint32
	Attributes      uint32
	HeaderLength    uint16
	Checksum        uint16
	ExtHeaderOffset uint16
	Reserved        uint8
	Revision        uint8
}

// Block describes one firmware volume block-map entry: Count contiguous
// blocks of Size bytes each.
type Block struct {
	Count uint32
	Size  uint32
}

// FirmwareVolume is a parsed UEFI firmware volume: its header, block map,
// and the FFS files found in its file area.
type FirmwareVolume struct {
	// FileSystemGUID identifies the FV's filesystem format. Recorded, not
	// validated: this parser always attempts to read the file area once the
	// header and block map check out.
	FileSystemGUID guid.GUID

	// Length is the total byte length of the volume, starting at its
	// header.
	Length uint64

	// HeaderLength is the byte offset of the file area from the start of
	// the volume.
	HeaderLength uint16

	// BlockMap is the ordered, non-terminator block map entries.
	BlockMap []Block

	// Files are the FFS files found in the volume's file area, in on-disk
	// order.
	Files []*File

	// buf is the volume's own slice of the original input, [0:Length).
	buf []byte
}

// Buf returns the volume's raw bytes, [0:Length) of the input it was parsed
// from.
func (fv *FirmwareVolume) Buf() []byte { return fv.buf }

// ParseFirmwareVolume parses a byte slice that must begin with an EFI
// firmware volume header, recursively parsing its FFS files and their
// sections.
func ParseFirmwareVolume(data []byte) (*FirmwareVolume, error) {
	if len(data) < fvMinSize {
		return nil, &TruncatedFvError{Declared: fvMinSize, Available: uint64(len(data))}
	}

	var hdr fvFixedHeader
	if err := binary.Read(bytes.NewReader(data[:fvFixedHeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Signature != fvSignature {
		return nil, &BadSignatureError{Offset: 0x28}
	}
	if hdr.Length < uint64(hdr.HeaderLength) || hdr.Length > uint64(len(data)) {
		return nil, &TruncatedFvError{Declared: hdr.Length, Available: uint64(len(data))}
	}

	blocks, err := parseBlockMap(data, uint64(hdr.HeaderLength))
	if err != nil {
		return nil, err
	}

	fv := &FirmwareVolume{
		FileSystemGUID: hdr.FileSystemGUID,
		Length:         hdr.Length,
		HeaderLength:   hdr.HeaderLength,
		BlockMap:       blocks,
		buf:            data[:hdr.Length],
	}

	files, err := parseFiles(data[hdr.HeaderLength:hdr.Length], uint64(hdr.HeaderLength))
	if err != nil {
		return nil, err
	}
	fv.Files = files
	return fv, nil
}

// parseBlockMap reads (NumBlocks uint16, BlockLength uint16) entries
// starting at fvFixedHeaderSize, per the design note resolving the "block
// map offset" source ambiguity: the real fixed header runs through 0x38,
// not the 0x30/0x4C offsets either source variant used. Reading stops at
// the (0,0) terminator, or at headerLength, whichever comes first.
func parseBlockMap(data []byte, headerLength uint64) ([]Block, error) {
	var blocks []Block
	for offset := uint64(fvFixedHeaderSize); offset+4 <= headerLength && offset+4 <= uint64(len(data)); offset += 4 {
		num := binary.LittleEndian.Uint16(data[offset : offset+2])
		size := binary.LittleEndian.Uint16(data[offset+2 : offset+4])
		if num == 0 && size == 0 {
			if len(blocks) == 0 {
				return nil, &EmptyBlockMapError{}
			}
			return blocks, nil
		}
		blocks = append(blocks, Block{Count: uint32(num), Size: uint32(size)})
	}
	if len(blocks) == 0 {
		return nil, &EmptyBlockMapError{}
	}
	return blocks, nil
}

// String renders a short human-readable description of the volume.
func (fv *FirmwareVolume) String() string {
	return fmt.Sprintf("FV(guid=%s, length=%#x, header=%#x, files=%d)",
		fv.FileSystemGUID, fv.Length, fv.HeaderLength, len(fv.Files))
}
