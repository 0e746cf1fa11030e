package uefi

import (
	"fmt"

	"github.com/fwimage/fvextract/pkg/lzma"
)

// sectionHeaderSize is the size of a section's common header: a type byte
// followed by a 3-byte size.
const sectionHeaderSize = 4

// compressionHeaderSize is the size of the algorithm-specific header inside
// an EFI_SECTION_COMPRESSION payload: an algorithm ID byte followed by a
// 3-byte declared uncompressed size.
const compressionHeaderSize = 4

// SectionType is a section's type tag (EFI_SECTION_*).
type SectionType uint8

// Recognized section type tags. Anything else is exposed with a generated
// "SecXX" name; unknown tags are not parse errors.
const (
	SectionTypeCompression SectionType = 0x01
	SectionTypePE32        SectionType = 0x10
	SectionTypePIC         SectionType = 0x11
	SectionTypeVersion     SectionType = 0x20
	SectionTypeGUIDDefined SectionType = 0x24
)

var sectionTypeNames = map[SectionType]string{
	SectionTypeCompression: "Compression",
	SectionTypePE32:        "PE32",
	SectionTypePIC:         "PIC",
	SectionTypeVersion:     "Version",
	SectionTypeGUIDDefined: "GUID-defined",
}

// algorithmLZMA is the only EFI_SECTION_COMPRESSION algorithm ID this
// package decompresses.
const algorithmLZMA = 1

// decompressor decompresses an LZMA stream. It is a package variable, not a
// hardcoded call to pkg/lzma, so tests can substitute a stub and exercise
// the section iterator's bookkeeping without needing real LZMA fixtures.
var decompressor = lzma.Decode

// Section is a parsed FFS section.
type Section struct {
	// Type is the section's type tag.
	Type SectionType

	// Size is the byte length of the section record, header included.
	Size uint32

	// Attributes is the byte at offset 4, or 0 if the section is too short
	// to carry one.
	Attributes uint8

	// Payload is the section's exposed data: the raw post-header bytes for
	// every type except compression, or the decompressed stream for a
	// compression section.
	Payload []byte

	// Warning is set, non-fatally, when a compression section's
	// decompressed length did not match its declared uncompressed size. The
	// decompressed bytes are still in Payload.
	Warning error
}

// TypeName renders the section's type as a filename-safe string: a known
// name for recognized tags, or "SecXX" (two uppercase hex digits) for
// anything else.
func (s *Section) TypeName() string {
	if name, ok := sectionTypeNames[s.Type]; ok {
		return name
	}
	return fmt.Sprintf("Sec%02X", uint8(s.Type))
}

// parseSections walks an FFS file body, producing one Section per record.
// baseOffset is the body's offset from the start of the volume, used only
// to make returned errors reference volume-relative offsets.
//
// On a malformed record, unsupported compression algorithm, or
// decompression failure, parseSections returns the sections parsed so far
// together with the error: per the extractor's failure policy, a
// decompression error aborts this file's remaining sections but must not
// discard the ones already parsed.
func parseSections(body []byte, baseOffset uint64) ([]*Section, error) {
	var sections []*Section
	offset := uint64(0)
	end := uint64(len(body))

	for offset+sectionHeaderSize <= end {
		rec := body[offset:]
		typ := SectionType(rec[0])
		size := readUint24(rec[1:4])
		if size < sectionHeaderSize || uint64(size) > end-offset {
			return sections, &MalformedSectionError{Offset: baseOffset + offset, Size: size}
		}

		var attrs uint8
		if size >= 5 {
			attrs = rec[4]
		}

		s := &Section{Type: typ, Size: size, Attributes: attrs}

		if typ == SectionTypeCompression {
			payload, warning, err := decompressSection(rec[sectionHeaderSize:size], baseOffset+offset)
			if err != nil {
				return sections, err
			}
			s.Payload = payload
			s.Warning = warning
		} else {
			s.Payload = rec[sectionHeaderSize:size]
		}

		sections = append(sections, s)
		offset += alignUp(uint64(size), SectionAlignment)
	}
	return sections, nil
}

// decompressSection parses a compression section's body: a 4-byte
// algorithm/size header followed by the compressed stream.
func decompressSection(body []byte, offset uint64) (payload []byte, warning error, err error) {
	if len(body) < compressionHeaderSize {
		return nil, nil, &MalformedSectionError{Offset: offset, Size: uint32(len(body))}
	}
	algorithm := body[0]
	if algorithm != algorithmLZMA {
		return nil, nil, &UnsupportedCompressionError{Algorithm: algorithm}
	}
	declared := readUint24(body[1:4])

	decoded, decErr := decompressor(body[compressionHeaderSize:])
	if decErr != nil {
		return nil, nil, &DecompressionFailedError{Offset: offset, Err: decErr}
	}
	if len(decoded) != int(declared) {
		warning = &CompressionLengthMismatchError{Declared: int(declared), Got: len(decoded)}
	}
	return decoded, warning, nil
}
