// Package guid implements the mixed-endian GUID used by the UEFI Platform
// Initialization spec: the on-disk "bytes_le" layout, where the first three
// fields are little-endian and the last two are big-endian.
package guid

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Size is the number of bytes in a GUID.
const Size = 16

// Example is an example of a string GUID, used in error messages.
const Example = "01234567-89AB-CDEF-0123-456789ABCDEF"

const strFormat = "%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x"

// fields gives the byte width of each hyphen-delimited group in the textual
// form: 4-2-2-2-6, with the last two groups further split into single bytes
// so that reverse() can be applied uniformly.
var fields = [...]int{4, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1}

// GUID holds a 16-byte identifier in its on-disk bytes_le byte order.
type GUID [Size]byte

func reverse(b []byte) {
	for i := 0; i < len(b)/2; i++ {
		j := len(b) - i - 1
		b[i], b[j] = b[j], b[i]
	}
}

// FromBytes copies a 16-byte slice, already in bytes_le wire order, into a
// GUID. No byte-order conversion is performed: the wire layout and the
// in-memory layout are the same.
func FromBytes(b []byte) (GUID, error) {
	var u GUID
	if len(b) != Size {
		return u, fmt.Errorf("guid: need %d bytes, got %d", Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Parse parses the canonical 8-4-4-4-12 textual form into a GUID.
func Parse(s string) (*GUID, error) {
	stripped := strings.ReplaceAll(s, "-", "")
	decoded, err := hex.DecodeString(stripped)
	if err != nil {
		return nil, fmt.Errorf("guid: malformed string, want format\n%s\ngot\n%s", Example, s)
	}
	if len(decoded) != Size {
		return nil, fmt.Errorf("guid: wrong length, want format\n%s\ngot\n%s", Example, s)
	}

	var u GUID
	copy(u[:], decoded)
	// The text form lists the first three groups big-endian; convert them to
	// the on-disk little-endian order. The last two groups are already in
	// their on-disk (big-endian) order, so reversing their one-byte "fields"
	// is a no-op.
	i := 0
	for _, n := range fields {
		reverse(u[i : i+n])
		i += n
	}
	return &u, nil
}

// MustParse parses s or panics. Used for package-level constants.
func MustParse(s string) GUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return *u
}

// IsZero reports whether u is the all-zero GUID, which on disk marks the FFS
// terminator file.
func (u GUID) IsZero() bool {
	return u == GUID{}
}

// String renders the canonical 8-4-4-4-12 hex form.
func (u GUID) String() string {
	// u is a value receiver, so reversing fields below only touches this
	// local copy.
	i := 0
	for _, n := range fields {
		reverse(u[i : i+n])
		i += n
	}
	b := make([]interface{}, Size)
	for i := range u {
		b[i] = u[i]
	}
	return fmt.Sprintf(strFormat, b...)
}
