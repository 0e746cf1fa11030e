package uefi

import (
	"github.com/fwimage/fvextract/guid"
)

// fileHeaderSize is the size of the fixed FFS file header: a 16-byte GUID,
// type, attributes, a 3-byte size, and a state byte, followed by a 2-byte
// integrity check this package does not interpret.
const fileHeaderSize = 24

// File is a parsed FFS file: its header fields and the sections found in
// its body.
type File struct {
	// GUID is the file's identifier, in bytes_le wire order.
	GUID guid.GUID

	// Type is the FFS file type tag (EFI_FV_FILETYPE_*).
	Type uint8

	// Attributes are the file's attribute flags.
	Attributes uint8

	// Size is the byte length of the file record, header included.
	Size uint32

	// State is the file state flags.
	State uint8

	// Sections are the sections parsed out of the file body. If section
	// parsing failed partway through, Sections holds everything parsed
	// before the failure and SectionErr records why it stopped.
	Sections []*Section

	// SectionErr is non-nil when section parsing stopped early. It never
	// prevents Raw from being extracted.
	SectionErr error

	// Raw is the file's full on-disk record, [0:Size) relative to the file
	// itself.
	Raw []byte
}

// parseFiles walks a firmware volume's file area, producing one File per
// FFS record until the terminator (an all-zero GUID) or the area's end.
// baseOffset is the file area's offset from the start of the volume, used
// only to make returned errors reference volume-relative offsets.
func parseFiles(fileArea []byte, baseOffset uint64) ([]*File, error) {
	var files []*File
	offset := uint64(0)
	end := uint64(len(fileArea))

	for offset+fileHeaderSize <= end {
		rec := fileArea[offset:]
		if isTerminatorGUID(rec[:16]) {
			break
		}

		g, err := guid.FromBytes(rec[:16])
		if err != nil {
			return nil, err
		}
		size := readUint24(rec[18:21])
		if size < fileHeaderSize {
			return nil, &MalformedFfsError{Offset: baseOffset + offset, Size: size}
		}
		if offset+uint64(size) > end {
			return nil, &TruncatedFfsError{
				Offset:    baseOffset + offset,
				Declared:  uint64(size),
				Remaining: end - offset,
			}
		}

		f := &File{
			GUID:       g,
			Type:       rec[16],
			Attributes: rec[17],
			Size:       size,
			State:      rec[21],
			Raw:        rec[:size],
		}
		sections, sectionErr := parseSections(rec[fileHeaderSize:size], baseOffset+offset+fileHeaderSize)
		f.Sections = sections
		f.SectionErr = sectionErr

		files = append(files, f)
		offset += alignUp(uint64(size), FFSAlignment)
	}
	return files, nil
}

func isTerminatorGUID(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
