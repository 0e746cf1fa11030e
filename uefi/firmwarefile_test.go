package uefi

import (
	"testing"

	"github.com/fwimage/fvextract/guid"
)

func buildFile(g guid.GUID, typ, attrs, state uint8, body []byte) []byte {
	size := fileHeaderSize + len(body)
	rec := make([]byte, size)
	copy(rec[0:16], g[:])
	rec[16] = typ
	rec[17] = attrs
	rec[18] = byte(size)
	rec[19] = byte(size >> 8)
	rec[20] = byte(size >> 16)
	rec[21] = state
	copy(rec[fileHeaderSize:], body)
	return rec
}

func TestParseFilesStopsAtTerminator(t *testing.T) {
	g := guid.MustParse("665E3FF6-46CC-11D4-9A38-0090273FC14D")
	f := buildFile(g, 0x07, 0, 0xF8, nil)
	terminator := make([]byte, fileHeaderSize)
	area := append(append([]byte{}, f...), terminator...)

	files, err := parseFiles(area, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].GUID != g {
		t.Errorf("GUID mismatch: got %s, want %s", files[0].GUID, g)
	}
}

func TestParseFilesMalformedSize(t *testing.T) {
	g := guid.MustParse("665E3FF6-46CC-11D4-9A38-0090273FC14D")
	rec := make([]byte, fileHeaderSize)
	copy(rec[0:16], g[:])
	rec[18], rec[19], rec[20] = 4, 0, 0 // declared size (4) smaller than the 24-byte header

	_, err := parseFiles(rec, 0)
	if _, ok := err.(*MalformedFfsError); !ok {
		t.Fatalf("expected *MalformedFfsError, got %v (%T)", err, err)
	}
}

func TestParseFilesTruncated(t *testing.T) {
	g := guid.MustParse("665E3FF6-46CC-11D4-9A38-0090273FC14D")
	full := buildFile(g, 0x07, 0, 0xF8, make([]byte, 8))
	area := full[:len(full)-4] // cut off the declared body early

	_, err := parseFiles(area, 0)
	if _, ok := err.(*TruncatedFfsError); !ok {
		t.Fatalf("expected *TruncatedFfsError, got %v (%T)", err, err)
	}
}

func TestParseFilesKeepsRawOnSectionFailure(t *testing.T) {
	g := guid.MustParse("665E3FF6-46CC-11D4-9A38-0090273FC14D")
	badSection := []byte{0x10, 0xFF, 0xFF, 0xFF} // malformed section record
	f := buildFile(g, 0x07, 0, 0xF8, badSection)

	files, err := parseFiles(f, 0)
	if err != nil {
		t.Fatalf("parseFiles itself should not fail on a bad section: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].SectionErr == nil {
		t.Fatal("expected SectionErr to be set")
	}
	if len(files[0].Raw) != len(f) {
		t.Errorf("expected Raw to retain the full record regardless of section failure")
	}
}

func TestParseFilesAlignment(t *testing.T) {
	g1 := guid.MustParse("665E3FF6-46CC-11D4-9A38-0090273FC14D")
	g2 := guid.MustParse("26BACCB1-6F42-11D4-BCE7-0080C73C8881")

	first := buildFile(g1, 0x07, 0, 0xF8, []byte{0x01}) // 25 bytes, pads to 32
	padded := make([]byte, alignUp(uint64(len(first)), FFSAlignment))
	copy(padded, first)
	second := buildFile(g2, 0x07, 0, 0xF8, nil)
	area := append(padded, second...)

	files, err := parseFiles(area, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[1].GUID != g2 {
		t.Errorf("second file GUID mismatch: got %s, want %s", files[1].GUID, g2)
	}
}
