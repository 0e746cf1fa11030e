package uefi

// Alignment strides for the two record streams this package walks. These
// are deliberately two named constants rather than a single parameter: FFS
// records are 8-byte aligned, section records are 4-byte aligned, and
// conflating the two is an easy, silent way to misparse a file body.
const (
	// FFSAlignment is the stride FFS file records are padded to inside a
	// firmware volume's file area.
	FFSAlignment = 8

	// SectionAlignment is the stride section records are padded to inside
	// an FFS file body.
	SectionAlignment = 4
)

// alignUp rounds x up to the next multiple of align, which must be a power
// of two.
func alignUp(x, align uint64) uint64 {
	return (x + align - 1) &^ (align - 1)
}

// readUint24 assembles a little-endian 24-bit size field. Neither Go nor C
// has a native 3-byte integer type, so both the FFS file header and the
// section header read it as three bytes and assemble it by hand.
func readUint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
