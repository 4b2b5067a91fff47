// Scandirbench benchmarks repeated scans of one directory.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/gbansaghi/scandir"
)

type benchResult struct {
	Timestamp time.Time `json:"ts"`

	Case  string `json:"case,omitempty"`
	Notes string `json:"notes,omitempty"`

	Dir      string `json:"dir"`
	Accessor string `json:"accessor"`
	Suffix   string `json:"suffix"`
	NoDots   bool   `json:"no_dots"`

	BufSize   int   `json:"buf_size"`
	Repeat    int   `json:"repeat"`
	GCPercent int   `json:"gc"`
	Expect    int64 `json:"expect,omitempty"`

	Scanned       uint64        `json:"scanned"`
	Collected     uint64        `json:"collected"`
	Duration      time.Duration `json:"duration"`
	EntriesPerSec float64       `json:"entries_per_sec"`
	ScansPerSec   float64       `json:"scans_per_sec"`
	MatchRate     float64       `json:"match_rate"`

	GoVersion   string `json:"go"`
	GOOS        string `json:"goos"`
	GOARCH      string `json:"goarch"`
	GOMAXPROCS  int    `json:"gomaxprocs"`
	NumCPU      int    `json:"numcpu"`
	VCSRevision string `json:"vcs_revision,omitempty"`
	VCSTime     string `json:"vcs_time,omitempty"`
	VCSModified bool   `json:"vcs_modified,omitempty"`
}

const (
	accessorNames   = "names"
	accessorSerials = "serials"
	accessorEntries = "entries"
	accessorCount   = "count"
)

type benchFlags struct {
	dir        string
	accessor   string
	suffix     string
	noDots     bool
	bufSize    int
	repeat     int
	gcPercent  int
	expect     int64
	quiet      bool
	caseName   string
	notes      string
	out        string
	cpuProfile string
	memProfile string
}

func parseFlags(args []string, stderr io.Writer) (*benchFlags, error) {
	flags := &benchFlags{}

	fs := pflag.NewFlagSet("scandirbench", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&flags.dir, "dir", "", "directory to scan")
	fs.StringVar(&flags.accessor, "accessor", accessorNames, "accessor: names | serials | entries | count")
	fs.StringVar(&flags.suffix, "suffix", "", "name suffix filter (empty = all entries)")
	fs.BoolVar(&flags.noDots, "no-dots", false, `skip "." and ".."`)
	fs.IntVar(&flags.bufSize, "buf-size", 0, "dirent read buffer size in bytes (0=default)")
	fs.IntVar(&flags.repeat, "repeat", 1, "repeat the scan N times per invocation")
	fs.IntVar(&flags.gcPercent, "gc", -1, "if >=0, call debug.SetGCPercent(gc)")
	fs.Int64Var(&flags.expect, "expect", -1, "if >=0, require the collected count to match (per scan)")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "quiet: print only entries/sec")
	fs.StringVar(&flags.caseName, "case", "", "optional short case name to store in JSON output")
	fs.StringVar(&flags.notes, "notes", "", "optional freeform notes to store in JSON output")
	fs.StringVar(&flags.out, "out", "", "optional JSONL output file to append one result per run")
	fs.StringVar(&flags.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	fs.StringVar(&flags.memProfile, "memprofile", "", "write memory profile to file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return flags, nil
}

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	os.Exit(run(flags, os.Stdout, os.Stderr))
}

func run(flags *benchFlags, stdout, stderr io.Writer) int {
	if flags.dir == "" {
		fmt.Fprintln(stderr, "--dir is required")

		return 2
	}

	if flags.repeat <= 0 {
		fmt.Fprintln(stderr, "--repeat must be >= 1")

		return 2
	}

	accessor, err := parseAccessor(flags.accessor)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 2
	}

	if flags.gcPercent >= 0 {
		debug.SetGCPercent(flags.gcPercent)
	}

	if flags.cpuProfile != "" {
		stop, err := startCPUProfile(flags.cpuProfile)
		if err != nil {
			fmt.Fprintln(stderr, err)

			return 1
		}

		defer stop()
	}

	var opts []scandir.Option
	if flags.bufSize > 0 {
		opts = append(opts, scandir.WithReadBufSize(flags.bufSize))
	}

	var ef scandir.EntryFilter
	if flags.noDots {
		ef = scandir.SkipDots
	}

	if flags.suffix != "" {
		suffix := flags.suffix
		ef = scandir.AllOf(ef, func(e *scandir.Entry) bool {
			return strings.HasSuffix(string(e.NameBorrowed()), suffix)
		})
	}

	scanFn := makeScanFn(accessor, ef, opts)

	var scanned, collected uint64

	start := time.Now()

	for range flags.repeat {
		total, kept, err := scanFn(flags.dir)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)

			return 1
		}

		scanned += uint64(total)
		collected += uint64(kept)

		if flags.expect >= 0 && int64(kept) != flags.expect {
			fmt.Fprintf(stderr, "expected collected=%d, got %d\n", flags.expect, kept)

			return 1
		}
	}

	duration := time.Since(start)

	if flags.memProfile != "" {
		if err := writeHeapProfile(flags.memProfile); err != nil {
			fmt.Fprintln(stderr, err)

			return 1
		}
	}

	entriesPerSec := float64(scanned) / duration.Seconds()
	scansPerSec := float64(flags.repeat) / duration.Seconds()

	matchRate := 0.0
	if scanned > 0 {
		matchRate = float64(collected) / float64(scanned)
	}

	res := benchResult{
		Timestamp:     time.Now(),
		Case:          flags.caseName,
		Notes:         flags.notes,
		Dir:           flags.dir,
		Accessor:      accessor,
		Suffix:        flags.suffix,
		NoDots:        flags.noDots,
		BufSize:       flags.bufSize,
		Repeat:        flags.repeat,
		GCPercent:     flags.gcPercent,
		Expect:        flags.expect,
		Scanned:       scanned,
		Collected:     collected,
		Duration:      duration,
		EntriesPerSec: entriesPerSec,
		ScansPerSec:   scansPerSec,
		MatchRate:     matchRate,
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		NumCPU:        runtime.NumCPU(),
	}

	stampBuildInfo(&res)

	if flags.out != "" {
		if err := appendJSONL(flags.out, &res); err != nil {
			fmt.Fprintf(stderr, "error writing --out: %v\n", err)

			return 1
		}
	}

	if flags.quiet {
		fmt.Fprintf(stdout, "%.0f\n", entriesPerSec)

		return 0
	}

	fmt.Fprintf(stdout, "scanned=%d collected=%d repeat=%d duration=%v entries/sec=%.0f scans/sec=%.1f\n",
		scanned, collected, flags.repeat, duration, entriesPerSec, scansPerSec)

	return 0
}

func parseAccessor(accessorFlag string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(accessorFlag))
	switch name {
	case accessorNames, accessorSerials, accessorEntries, accessorCount:
		return name, nil
	default:
		return "", errors.Errorf("invalid --accessor %q (expected: names | serials | entries | count)", accessorFlag)
	}
}

// scanFunc scans dir once and returns the number of entries the primitive
// reported and the number collected.
type scanFunc func(dir string) (total, kept int, err error)

func makeScanFn(accessor string, ef scandir.EntryFilter, opts []scandir.Option) scanFunc {
	// withTotal counts every entry the primitive reported; ef still decides.
	withTotal := func(total *int) scandir.EntryFilter {
		return func(e *scandir.Entry) bool {
			*total++

			return ef == nil || ef(e)
		}
	}

	switch accessor {
	case accessorSerials:
		return func(dir string) (int, int, error) {
			var total int

			serials, err := scandir.Serials(dir, nil, withTotal(&total), opts...)

			return total, len(serials), err
		}

	case accessorEntries:
		return func(dir string) (int, int, error) {
			var total int

			entries, err := scandir.Entries(dir, nil, withTotal(&total), opts...)

			return total, len(entries), err
		}

	case accessorCount:
		return func(dir string) (int, int, error) {
			var total, kept int

			sink := scandir.SinkFunc[struct{}](func(struct{}) { kept++ })
			err := scandir.CollectInto(dir, sink, func(*scandir.Entry) struct{} { return struct{}{} }, nil, withTotal(&total), opts...)

			return total, kept, err
		}

	default:
		return func(dir string) (int, int, error) {
			var total int

			names, err := scandir.Names(dir, nil, withTotal(&total), opts...)

			return total, len(names), err
		}
	}
}

func startCPUProfile(path string) (func(), error) {
	cpuFile, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "error creating cpuprofile")
	}

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		_ = cpuFile.Close()

		return nil, errors.Wrap(err, "error starting cpuprofile")
	}

	return func() {
		pprof.StopCPUProfile()

		_ = cpuFile.Close()
	}, nil
}

func writeHeapProfile(path string) error {
	memFile, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "error creating memprofile")
	}

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		_ = memFile.Close()

		return errors.Wrap(err, "error writing memprofile")
	}

	return errors.Wrap(memFile.Close(), "error closing memprofile")
}

func stampBuildInfo(res *benchResult) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	res.GoVersion = bi.GoVersion

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			res.VCSRevision = setting.Value
		case "vcs.time":
			res.VCSTime = setting.Value
		case "vcs.modified":
			res.VCSModified = setting.Value == "true"
		}
	}
}

func appendJSONL(path string, res *benchResult) error {
	outFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return errors.Wrap(err, "open output")
	}

	defer func() { _ = outFile.Close() }()

	writer := bufio.NewWriter(outFile)
	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(res); err != nil {
		return errors.Wrap(err, "encode json")
	}

	return errors.Wrap(writer.Flush(), "flush output")
}
