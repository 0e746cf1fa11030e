package uefi

import "fmt"

// BadSignatureError means the FV signature was not "_FVH" at offset 0x28.
type BadSignatureError struct {
	Offset uint64
}

func (e *BadSignatureError) Error() string {
	return fmt.Sprintf("fv: signature _FVH not found at offset %#x", e.Offset)
}

// TruncatedFvError means the declared fv_length exceeds the input buffer, or
// is smaller than header_length.
type TruncatedFvError struct {
	Declared  uint64
	Available uint64
}

func (e *TruncatedFvError) Error() string {
	return fmt.Sprintf("fv: declared length %#x exceeds available %#x bytes", e.Declared, e.Available)
}

// EmptyBlockMapError means a firmware volume's block map held only the
// terminating (0,0) entry.
type EmptyBlockMapError struct{}

func (e *EmptyBlockMapError) Error() string {
	return "fv: block map has no entries before its terminator"
}

// MalformedFfsError means a declared FFS file size was smaller than the
// 24-byte file header.
type MalformedFfsError struct {
	Offset uint64
	Size   uint32
}

func (e *MalformedFfsError) Error() string {
	return fmt.Sprintf("ffs: file at offset %#x has size %#x, smaller than the 24-byte header", e.Offset, e.Size)
}

// TruncatedFfsError means a declared FFS file extends past the end of the
// firmware volume's file area.
type TruncatedFfsError struct {
	Offset    uint64
	Declared  uint64
	Remaining uint64
}

func (e *TruncatedFfsError) Error() string {
	return fmt.Sprintf("ffs: file at offset %#x declares size %#x but only %#x bytes remain in the file area",
		e.Offset, e.Declared, e.Remaining)
}

// MalformedSectionError means a declared section size was smaller than the
// 4-byte common header, or larger than the remaining file body.
type MalformedSectionError struct {
	Offset uint64
	Size   uint32
}

func (e *MalformedSectionError) Error() string {
	return fmt.Sprintf("section: record at offset %#x has invalid size %#x", e.Offset, e.Size)
}

// UnsupportedCompressionError means a compression section named an
// algorithm ID other than LZMA (1).
type UnsupportedCompressionError struct {
	Algorithm uint8
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("section: unsupported compression algorithm id %#x, only LZMA (1) is supported", e.Algorithm)
}

// CompressionLengthMismatchError is a non-fatal warning: the decompressed
// length did not equal the section's declared uncompressed_size. The
// decompressed bytes are still exposed as the section's payload.
type CompressionLengthMismatchError struct {
	Declared int
	Got      int
}

func (e *CompressionLengthMismatchError) Error() string {
	return fmt.Sprintf("section: LZMA stream declared uncompressed size %d, decompressed to %d", e.Declared, e.Got)
}

// DecompressionFailedError wraps an LZMA decoder failure. It halts the
// section walk for the enclosing file, but not extraction of sibling files.
type DecompressionFailedError struct {
	Offset uint64
	Err    error
}

func (e *DecompressionFailedError) Error() string {
	return fmt.Sprintf("section: LZMA decompression failed at offset %#x: %v", e.Offset, e.Err)
}

func (e *DecompressionFailedError) Unwrap() error { return e.Err }

// IoError wraps a filesystem failure while writing an extracted artifact.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io: writing %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
