// fvextract parses a UEFI Firmware Volume binary blob and writes its FFS
// files and sections to a directory tree.
//
// Synopsis:
//
//	fvextract [-o OUTDIR] [-v] BLOB
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jessevdk/go-flags"

	"github.com/fwimage/fvextract/pkg/log"
	"github.com/fwimage/fvextract/uefi"
)

type options struct {
	Outdir  string `short:"o" long:"outdir" description:"directory to write extracted artifacts to" default:"fv_out"`
	Verbose bool   `short:"v" long:"verbose" description:"print a per-file/section summary table"`

	Args struct {
		Blob string `positional-arg-name:"BLOB" required:"true"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(argv); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}
	log.SetVerbose(opts.Verbose)

	data, err := os.ReadFile(opts.Args.Blob)
	if err != nil {
		log.Errorf("reading %s: %v", opts.Args.Blob, err)
		return 2
	}

	fv, err := uefi.ParseFirmwareVolume(data)
	if err != nil {
		log.Errorf("parsing %s: %v", opts.Args.Blob, err)
		return 1
	}
	log.Infof("parsed %s: %s, %d files", opts.Args.Blob, humanize.Bytes(uint64(len(fv.Buf()))), len(fv.Files))

	w := &uefi.DirWriter{Dir: opts.Outdir}
	if err := uefi.Extract(fv, w); err != nil {
		log.Errorf("extracting to %s: %v", opts.Outdir, err)
		if opts.Verbose {
			printSummary(fv)
		}
		return 2
	}

	log.Infof("wrote artifacts to %s", opts.Outdir)
	if opts.Verbose {
		printSummary(fv)
	}
	return 0
}

func printSummary(fv *uefi.FirmwareVolume) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "GUID", "Type", "Size", "Sections", "Section error"})
	for i, f := range fv.Files {
		sectionErr := ""
		if f.SectionErr != nil {
			sectionErr = f.SectionErr.Error()
		}
		t.AppendRow(table.Row{
			i, f.GUID, fmt.Sprintf("%#02x", f.Type), humanize.Bytes(uint64(f.Size)), len(f.Sections), sectionErr,
		})
	}
	t.Render()
}
