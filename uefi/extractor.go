package uefi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// ArtifactWriter is the capability the extractor hands raw bytes to. It
// accepts (relative_path, payload_bytes) pairs; it does not know or care
// where they end up.
type ArtifactWriter interface {
	Write(relPath string, data []byte) error
}

// DirWriter is an ArtifactWriter that writes each artifact as a file inside
// a flat directory, creating the directory on first use.
type DirWriter struct {
	Dir string

	created bool
}

// Write implements ArtifactWriter.
func (w *DirWriter) Write(relPath string, data []byte) error {
	if !w.created {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return err
		}
		w.created = true
	}
	return os.WriteFile(filepath.Join(w.Dir, relPath), data, 0644)
}

// Extract drives the three decoders' output through w: one "fv.bin"
// artifact for the whole volume, one "file_<ii>_<guid>.ffs" per FFS file,
// and one "file_<ii>_sec_<jj>_<type>.bin" per section.
//
// Per the failure policy, every extraction-time failure — a write failure,
// a decompression failure, a compression-length mismatch — is collected
// into the returned error rather than aborting sibling artifacts. Only a
// parse error, which would have kept Extract from ever being called,
// aborts the whole run.
func Extract(fv *FirmwareVolume, w ArtifactWriter) error {
	var result *multierror.Error

	write := func(relPath string, data []byte) {
		if err := w.Write(relPath, data); err != nil {
			result = multierror.Append(result, &IoError{Path: relPath, Err: err})
		}
	}

	write("fv.bin", fv.Buf())

	for i, f := range fv.Files {
		write(fmt.Sprintf("file_%02d_%s.ffs", i, f.GUID), f.Raw)

		for j, s := range f.Sections {
			write(fmt.Sprintf("file_%02d_sec_%02d_%s.bin", i, j, s.TypeName()), s.Payload)
			if s.Warning != nil {
				result = multierror.Append(result, s.Warning)
			}
		}
		if f.SectionErr != nil {
			result = multierror.Append(result, f.SectionErr)
		}
	}

	return result.ErrorOrNil()
}
