package uefi

import (
	"errors"
	"testing"
)

func buildSection(typ SectionType, payload []byte) []byte {
	size := sectionHeaderSize + len(payload)
	rec := make([]byte, size)
	rec[0] = byte(typ)
	rec[1] = byte(size)
	rec[2] = byte(size >> 8)
	rec[3] = byte(size >> 16)
	copy(rec[sectionHeaderSize:], payload)
	return rec
}

func buildCompressionSection(algorithm uint8, declared uint32, stream []byte) []byte {
	body := make([]byte, compressionHeaderSize+len(stream))
	body[0] = algorithm
	body[1] = byte(declared)
	body[2] = byte(declared >> 8)
	body[3] = byte(declared >> 16)
	copy(body[compressionHeaderSize:], stream)
	return buildSection(SectionTypeCompression, body)
}

func TestParseSectionsRaw(t *testing.T) {
	body := buildSection(SectionTypePE32, []byte{0xAA, 0xBB, 0xCC})

	sections, err := parseSections(body, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].TypeName() != "PE32" {
		t.Errorf("expected TypeName PE32, got %s", sections[0].TypeName())
	}
	if string(sections[0].Payload) != "\xaa\xbb\xcc" {
		t.Errorf("unexpected payload %x", sections[0].Payload)
	}
}

func TestParseSectionsUnknownTypeName(t *testing.T) {
	body := buildSection(SectionType(0x99), []byte{0x01})

	sections, err := parseSections(body, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sections[0].TypeName(); got != "Sec99" {
		t.Errorf("expected Sec99, got %s", got)
	}
}

func TestParseSectionsMalformed(t *testing.T) {
	body := []byte{0x10, 0xFF, 0xFF, 0xFF} // declared size far exceeds the 4 bytes present

	_, err := parseSections(body, 0)
	if _, ok := err.(*MalformedSectionError); !ok {
		t.Fatalf("expected *MalformedSectionError, got %v (%T)", err, err)
	}
}

func TestParseSectionsUnsupportedCompression(t *testing.T) {
	body := buildCompressionSection(2, 0, nil)

	_, err := parseSections(body, 0)
	if _, ok := err.(*UnsupportedCompressionError); !ok {
		t.Fatalf("expected *UnsupportedCompressionError, got %v (%T)", err, err)
	}
}

func TestParseSectionsLZMADecompresses(t *testing.T) {
	old := decompressor
	defer func() { decompressor = old }()
	decompressor = func(encoded []byte) ([]byte, error) { return []byte("hello"), nil }

	body := buildCompressionSection(algorithmLZMA, 5, []byte{0x01, 0x02, 0x03})

	sections, err := parseSections(body, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(sections[0].Payload) != "hello" {
		t.Errorf("expected decompressed payload \"hello\", got %q", sections[0].Payload)
	}
	if sections[0].Warning != nil {
		t.Errorf("expected no warning, got %v", sections[0].Warning)
	}
}

func TestParseSectionsLZMALengthMismatchIsWarningNotError(t *testing.T) {
	old := decompressor
	defer func() { decompressor = old }()
	decompressor = func(encoded []byte) ([]byte, error) { return []byte("hello"), nil }

	body := buildCompressionSection(algorithmLZMA, 999, []byte{0x01, 0x02, 0x03})

	sections, err := parseSections(body, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var mismatch *CompressionLengthMismatchError
	if !errors.As(sections[0].Warning, &mismatch) {
		t.Fatalf("expected *CompressionLengthMismatchError warning, got %v", sections[0].Warning)
	}
}

func TestParseSectionsLZMAFailureKeepsEarlierSections(t *testing.T) {
	old := decompressor
	defer func() { decompressor = old }()
	decompressor = func(encoded []byte) ([]byte, error) { return nil, errors.New("bad stream") }

	good := buildSection(SectionTypePE32, []byte{0x01})
	padded := make([]byte, alignUp(uint64(len(good)), SectionAlignment))
	copy(padded, good)
	bad := buildCompressionSection(algorithmLZMA, 1, []byte{0xFF})
	body := append(padded, bad...)

	sections, err := parseSections(body, 0)
	if len(sections) != 1 {
		t.Fatalf("expected the earlier section to survive, got %d sections", len(sections))
	}
	var decompErr *DecompressionFailedError
	if !errors.As(err, &decompErr) {
		t.Fatalf("expected *DecompressionFailedError, got %v (%T)", err, err)
	}
}

func TestParseSectionsAlignment(t *testing.T) {
	// A 5-byte section (header + 1 byte payload) must pad to the next
	// 4-byte boundary before the next record starts.
	first := buildSection(SectionTypePE32, []byte{0x01})
	padded := make([]byte, alignUp(uint64(len(first)), SectionAlignment))
	copy(padded, first)
	second := buildSection(SectionTypeVersion, []byte{0x02, 0x03})
	body := append(padded, second...)

	sections, err := parseSections(body, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1].TypeName() != "Version" {
		t.Errorf("expected second section Version, got %s", sections[1].TypeName())
	}
}
