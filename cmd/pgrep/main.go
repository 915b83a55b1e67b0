// Command pgrep is a parallel line-oriented pattern search tool: it reads
// one or more files, directories (traversed recursively with -r/-R), or
// standard input, locates every line matching a pattern, and prints those
// lines with optional inversion, context, file names, line numbers, byte
// offsets and color.
//
// Grounded on the teacher's cmd/dgrep/main.go for overall shape (parse
// flags, set up logging, build the engine, run, exit with its status) and
// on charmbracelet/glow's cobra root command for the flag surface itself
// (SPEC_FULL.md §10.3).
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/config"
	"github.com/snonux/pgrep/internal/logger"
	"github.com/snonux/pgrep/internal/output"
	"github.com/snonux/pgrep/internal/queue"
	"github.com/snonux/pgrep/internal/regex"
	"github.com/snonux/pgrep/internal/scanerr"
	"github.com/snonux/pgrep/internal/status"
	"github.com/snonux/pgrep/internal/walk"
	"github.com/snonux/pgrep/internal/workerpool"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	argv = config.PrependGrepOptions(argv, os.LookupEnv)
	argv, digitContext := prescanDigitFlags(argv)

	var a config.Args
	var showVersion bool

	root := &cobra.Command{
		Use:           "pgrep PATTERN [FILE...]",
		Short:         "Search for PATTERN in each FILE or standard input",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Operands = args
			if digitContext > 0 && a.Context == 0 {
				a.Context = digitContext
			}
			return nil
		},
	}
	bindFlags(root, &a, &showVersion)
	root.SetArgs(argv)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pgrep:", err)
		return status.ExitError
	}
	if showVersion {
		fmt.Println("pgrep", version)
		return status.ExitMatch
	}

	if a.After == 0 && a.Context > 0 {
		a.After = a.Context
	}
	if a.Before == 0 && a.Context > 0 {
		a.Before = a.Context
	}
	if a.PatternFile != "" {
		patterns, err := readPatternFile(a.PatternFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pgrep:", scanerr.Wrap(err, a.PatternFile))
			return status.ExitError
		}
		a.Patterns = append(patterns, a.Patterns...)
	}

	colorize := color.ShouldColorize(colorModeOr(a.Color), os.Stdout)
	resolved, err := config.Setup(&a, config.ResolveColors(), colorize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pgrep:", err)
		return status.ExitError
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger.Start(ctx, logger.Mode{Quiet: a.NoMessages, Colored: colorize})

	return dispatch(resolved, &a)
}

func colorModeOr(mode string) string {
	if mode == "" {
		return "auto"
	}
	return mode
}

func dispatch(r *config.Resolved, a *config.Args) int {
	be := regex.Backend{}
	h, err := be.Compile(r.Pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pgrep:", scanerr.Wrap(err, "invalid pattern"))
		return status.ExitError
	}

	fmtr := output.New(os.Stdout, r.OutputOpt)
	var outMu sync.Mutex
	agg := status.New(r.StatusQuiet)

	q := queue.New(queueCapacity())
	pool := workerpool.New(r.Workers, be, r.Pattern, h, r.ScanOpt, a.Before, a.After, fmtr, &outMu, r.SkipNuls, r.Eol)

	var results []workerpool.FileResult
	var resultsMu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		pool.Run(q, func(res workerpool.FileResult) {
			resultsMu.Lock()
			results = append(results, res)
			resultsMu.Unlock()
		})
	}()

	w := walk.New(r.WalkOpt)
	enqueue := func(path string) error {
		q.Enqueue(queue.Item{Path: path})
		return nil
	}

	if len(r.Operands) == 0 {
		q.Enqueue(queue.Item{IsStdin: true, Path: "-"})
	} else {
		for _, operand := range r.Operands {
			if operand == "-" {
				q.Enqueue(queue.Item{IsStdin: true, Path: "-"})
				continue
			}
			if err := w.Discover(operand, enqueue); err != nil {
				agg.RecordError(scanerr.Wrap(err, operand))
				if !r.NoMessages {
					logger.Error(operand, err)
				}
			}
		}
	}
	q.Finish()
	wg.Wait()

	for _, res := range results {
		if res.Err != nil {
			agg.RecordError(res.Err)
			if !r.NoMessages {
				logger.Error(res.Path, res.Err)
			}
			continue
		}
		if res.Scan.LinesMatched > 0 {
			agg.RecordMatch()
		}
		if res.Scan.BinaryMatched && res.Scan.LinesMatched > 0 {
			fmtr.PrintBinaryMatch(res.Path)
			continue
		}
		if a.Count {
			fmtr.PrintCount(res.Path, res.Scan.LinesMatched)
		}
		if a.FilesWithMatches && res.Scan.LinesMatched > 0 {
			fmtr.PrintFilenameOnly(res.Path)
		}
		if a.FilesWithoutMatch && res.Scan.LinesMatched == 0 {
			fmtr.PrintFilenameOnly(res.Path)
		}
	}
	fmtr.Flush()
	return agg.Code()
}

// readPatternFile reads one pattern per line from path, as -f does in
// grep.c (each line becomes an alternative, trailing blank lines ignored).
func readPatternFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	return lines, nil
}

func queueCapacity() int {
	if n, err := queue.Capacity(); err == nil {
		return n
	}
	return 256
}

// prescanDigitFlags extracts a leading run of bare "-N" digit flags (e.g.
// "-3" meaning -C3) before handing the rest of argv to cobra, which (like
// the teacher's own flag-based parsing) has no notion of bare-digit flags.
// Mirrors grep.c's case_GROUP digit handling (SPEC_FULL.md §10.3).
func prescanDigitFlags(argv []string) ([]string, int) {
	digits := ""
	i := 0
	for i < len(argv) {
		arg := argv[i]
		if len(arg) < 2 || arg[0] != '-' || !isAllDigits(arg[1:]) {
			break
		}
		digits += arg[1:]
		i++
	}
	if digits == "" {
		return argv, 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return argv, 0
	}
	return argv[i:], n
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func bindFlags(cmd *cobra.Command, a *config.Args, showVersion *bool) {
	f := cmd.Flags()
	f.StringArrayVarP(&a.Patterns, "regexp", "e", nil, "pattern to search for, may be given multiple times")
	f.StringVarP(&a.PatternFile, "file", "f", "", "read patterns from FILE, one per line")

	f.IntVarP(&a.After, "after-context", "A", 0, "print NUM lines of trailing context")
	f.IntVarP(&a.Before, "before-context", "B", 0, "print NUM lines of leading context")
	f.IntVarP(&a.Context, "context", "C", 0, "print NUM lines of leading and trailing context")

	f.BoolVarP(&a.IgnoreCase, "ignore-case", "i", false, "ignore case distinctions")
	f.BoolVarP(&a.Invert, "invert-match", "v", false, "select non-matching lines")
	f.BoolVarP(&a.WordRegexp, "word-regexp", "w", false, "match only whole words")
	f.BoolVarP(&a.LineRegexp, "line-regexp", "x", false, "match only whole lines")

	f.BoolVarP(&a.ExtendedRegexp, "extended-regexp", "E", false, "PATTERN is an extended regular expression (accepted, no effect beyond Go's regexp)")
	f.BoolVarP(&a.FixedStrings, "fixed-strings", "F", false, "PATTERN is a set of fixed strings")
	f.BoolVarP(&a.BasicRegexp, "basic-regexp", "G", false, "PATTERN is a basic regular expression (default)")

	f.BoolVarP(&a.Count, "count", "c", false, "print only a count of matching lines per file")
	f.BoolVarP(&a.FilesWithMatches, "files-with-matches", "l", false, "print only names of files containing matches")
	f.BoolVarP(&a.FilesWithoutMatch, "files-without-match", "L", false, "print only names of files with no match")
	f.BoolVarP(&a.LineNumber, "line-number", "n", false, "print line number with output lines")
	f.BoolVarP(&a.ByteOffset, "byte-offset", "b", false, "print the byte offset with output lines")
	f.BoolVarP(&a.OnlyMatching, "only-matching", "o", false, "show only the part of a line matching PATTERN")
	f.BoolVarP(&a.WithFilename, "with-filename", "H", false, "print the file name for each match")
	f.BoolVarP(&a.NoFilename, "no-filename", "h", false, "suppress the file name prefix on output")
	f.BoolVarP(&a.NullData, "null-data", "z", false, "lines are NUL-terminated")
	f.BoolVarP(&a.NullAfterName, "null", "Z", false, "print a NUL byte after the file name")
	f.BoolVarP(&a.InitialTab, "initial-tab", "T", false, "make tabs line up with an initial tab")
	f.BoolVar(&a.LineBuffered, "line-buffered", false, "flush output on every line")
	f.StringVar(&a.GroupSeparator, "group-separator", "", `group separator string (default "--")`)
	f.StringVar(&a.Color, "color", "", "use markers to highlight matches: auto, always, never")
	f.BoolVar(&a.NoColor, "no-color", false, "disable color output unconditionally")

	f.BoolVarP(&a.Quiet, "quiet", "q", false, "suppress all normal output; exit status reports match success")
	f.BoolVarP(&a.NoMessages, "no-messages", "s", false, "suppress error messages about nonexistent or unreadable files")
	f.Int64VarP(&a.MaxCount, "max-count", "m", 0, "stop reading a file after NUM matching lines")

	f.BoolVarP(&a.Text, "text", "a", false, "process a binary file as if it were text")
	f.BoolVarP(&a.BinaryWithoutMatch, "binary-without-match", "I", false, "treat binary files as never matching")

	f.BoolVarP(&a.Recursive, "recursive", "r", false, "recurse into directories, skipping symlinked ones")
	f.BoolVarP(&a.RecursiveFollow, "dereference-recursive", "R", false, "recurse into directories, following symlinked ones")
	var directories, devices string
	f.StringVarP(&directories, "directories", "d", "read", "how to handle directories: read, skip, recurse")
	f.StringVarP(&devices, "devices", "D", "read", "how to handle devices, FIFOs and sockets: read, skip")
	f.StringArrayVar(&a.Include, "include", nil, "search only files matching GLOB")
	f.StringArrayVar(&a.Exclude, "exclude", nil, "skip files matching GLOB")
	f.StringArrayVar(&a.ExcludeDir, "exclude-dir", nil, "skip directories matching GLOB")

	f.IntVarP(&a.Threads, "jobs", "M", 0, "number of worker threads (0 => 1, negative => online CPU count)")
	f.Lookup("jobs").NoOptDefVal = "-1"
	f.BoolVarP(showVersion, "version", "V", false, "print version information and exit")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		a.Directories = config.Directories(strings.ToLower(directories))
		a.Devices = config.Devices(strings.ToLower(devices))
		return nil
	}
}
