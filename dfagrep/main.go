package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"go.dw1.io/mmapfile"

	"github.com/mfroeh/dfagrep/regex"
)

var (
	matchColor  = color.New(color.FgRed, color.Bold)
	pathColor   = color.New(color.FgMagenta)
	lineNoColor = color.New(color.FgGreen)
)

type options struct {
	Pattern    string   `arg:"" name:"pattern" help:"Regex pattern to use in search" type:"string"`
	Paths      []string `arg:"" optional:"" name:"path" help:"Paths to search" type:"path"`
	IgnoreCase bool     `short:"i" help:"Fold ASCII letter case." env:"DFAGREP_IGNORE_CASE"`
	Word       bool     `short:"w" help:"Only match whole words."`
	Line       bool     `short:"x" help:"Only match whole lines."`
	Shortest   bool     `name:"min" help:"Report the shortest match at each start instead of the longest." env:"DFAGREP_MIN"`
	BadChar    bool     `name:"bad-char" help:"Stop attempts early on bytes the pattern never uses." env:"DFAGREP_BAD_CHAR"`
	Count      bool     `short:"c" help:"Print the number of matching lines per file."`
	MaxCount   int      `short:"m" name:"max-count" help:"Stop each file after this many matches, -1 for no limit." default:"-1"`
	Sep        string   `help:"Line separator, Go escapes allowed. Defaults to a newline." env:"DFAGREP_SEP"`
	Color      string   `help:"Highlight matches." enum:"auto,always,never" default:"auto" env:"DFAGREP_COLOR"`
	Debug      bool     `help:"Log the compiled automaton." env:"DFAGREP_DEBUG"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the exit status: 0 when something matched, 1 when nothing
// did and 2 on errors.
func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	parser, err := kong.New(&opts,
		kong.Name("dfagrep"),
		kong.Description("Recursively searches the current directory for lines matching a regex pattern."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "dfagrep: %v\n", err)
		return 2
	}

	switch opts.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	log := newLogger(stderr, opts.Debug)

	re, err := regex.CompileFlags(opts.Pattern, opts.flags())
	if err != nil {
		log.Error().Err(err).Str("pattern", opts.Pattern).Msg("failed to build regex")
		return 2
	}
	dumpAutomaton(log, re)

	sep, err := parseSep(opts.Sep)
	if err != nil {
		log.Error().Err(err).Str("sep", opts.Sep).Msg("bad line separator")
		return 2
	}

	if len(opts.Paths) == 0 {
		opts.Paths = []string{"."}
	}

	g := &grep{
		re:    re,
		out:   stdout,
		log:   log,
		sep:   sep,
		limit: opts.MaxCount,
		count: opts.Count,
	}
	for _, path := range opts.Paths {
		info, err := os.Lstat(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("cannot search path")
			return 2
		}

		if info.IsDir() {
			err = g.recursivelySearchDir(path)
		} else {
			err = g.searchFile(path)
		}

		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("search failed")
			return 2
		}
	}

	if g.matched == 0 {
		return 1
	}
	return 0
}

func (o *options) flags() regex.Flags {
	var f regex.Flags
	if o.IgnoreCase {
		f |= regex.IgnoreCase
	}
	if o.Word {
		f |= regex.WholeWord
	}
	if o.Line {
		f |= regex.MatchBegin | regex.MatchEnd
	}
	if o.Shortest {
		f |= regex.MatchMin
	}
	if o.BadChar {
		f |= regex.BadCharTable
	}
	return f
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if debug {
		lvl = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: color.NoColor}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

func dumpAutomaton(log zerolog.Logger, re *regex.Regex) {
	if log.GetLevel() > zerolog.DebugLevel {
		return
	}
	log.Debug().
		Str("pattern", re.String()).
		Stringer("strategy", re.Strategy()).
		Int("states", re.NumStates()).
		Bytes("prefix", re.Prefix()).
		Msg("compiled")
	for _, s := range re.States() {
		targets := make([]string, 0, len(s.Transitions))
		for _, tr := range s.Transitions {
			targets = append(targets, fmt.Sprintf("%q->%d", tr.Byte, tr.Target))
		}
		log.Debug().
			Int("id", s.ID).
			Bool("accepting", s.Accepting).
			Ints("positions", s.Positions).
			Strs("transitions", targets).
			Msg("state")
	}
}

// parseSep interprets Go escapes such as \r\n in the separator flag.
func parseSep(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	unquoted, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return nil, err
	}
	return []byte(unquoted), nil
}

type grep struct {
	re      *regex.Regex
	out     io.Writer
	log     zerolog.Logger
	sep     []byte
	limit   int
	count   bool
	matched int
}

func (g *grep) recursivelySearchDir(path string) error {
	return filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are reported and skipped
			g.log.Warn().Err(err).Str("path", path).Msg("skipping")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		// os.Stat resolves symlinks
		info, err := os.Stat(path)
		if err != nil {
			// symlinks may be broken, in that case, just ignore them
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		// symlink may resolve to a directory, in which case we just ignore it
		if info.IsDir() {
			return nil
		}

		return g.searchFile(path)
	})
}

// readFile maps path into memory and falls back to reading it when the file
// cannot be mapped, for instance because it is empty.
func readFile(path string) ([]byte, func() error, error) {
	if mf, err := mmapfile.Open(path); err == nil {
		return mf.Bytes(), mf.Close, nil
	}
	content, err := os.ReadFile(path)
	return content, func() error { return nil }, err
}

func (g *grep) searchFile(path string) error {
	content, closeFile, err := readFile(path)
	if err != nil {
		return err
	}
	defer closeFile()

	matches := g.re.SearchLines(content, g.limit, g.sep)
	g.log.Debug().Str("path", path).Int("bytes", len(content)).Int("matches", len(matches)).Msg("searched")
	if len(matches) == 0 {
		return nil
	}
	g.matched += len(matches)

	sep := g.sep
	if len(sep) == 0 {
		sep = []byte{'\n'}
	}

	lines := 0
	if !g.count {
		fmt.Fprintln(g.out, pathColor.Sprint(path)+":")
	}
	lineNo, start := 1, 0
	for i := 0; i < len(matches); {
		end := lineEnd(content, start, sep)
		if matches[i].Begin >= end && end < len(content) {
			start = end + len(sep)
			lineNo++
			continue
		}

		// every match on this line
		j := i
		for j < len(matches) && matches[j].Begin < end {
			j++
		}
		lines++
		if !g.count {
			g.printLine(lineNo, content, start, end, matches[i:j])
		}
		i = j
	}

	if g.count {
		fmt.Fprintf(g.out, "%s:%d\n", pathColor.Sprint(path), lines)
		return nil
	}
	fmt.Fprintln(g.out)
	return nil
}

func lineEnd(content []byte, start int, sep []byte) int {
	if i := bytes.Index(content[start:], sep); i >= 0 {
		return start + i
	}
	return len(content)
}

func (g *grep) printLine(lineNo int, content []byte, start, end int, matches []regex.Match) {
	out := strings.Builder{}
	lastMatchEnd := start
	for _, m := range matches {
		out.Write(content[lastMatchEnd:m.Begin])
		out.WriteString(matchColor.Sprint(m.Text(content)))
		lastMatchEnd = m.End
	}
	out.Write(content[lastMatchEnd:end])
	fmt.Fprintf(g.out, "%s:%s\n", lineNoColor.Sprint(lineNo), out.String())
}
