package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/jonathanvanschenck/json-color-stream/encoding/jpv"
	"github.com/jonathanvanschenck/json-color-stream/encoding/json"
	"github.com/jonathanvanschenck/json-color-stream/internal/format"
	"github.com/jonathanvanschenck/json-color-stream/token"
	"github.com/jonathanvanschenck/json-color-stream/transform"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling in run).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	fd := os.Stdout.Fd()
	cmd := &command{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		colorableStdout: func() io.Writer {
			return colorable.NewColorableStdout()
		},
	}
	os.Exit(cmd.run(os.Args[1:]))
}

// A command holds the environment of one run of jcs.
type command struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// isTerminal reports whether stdout is a terminal.  It selects colours in
	// auto mode and flushing after each line.
	isTerminal bool

	// colorableStdout returns a writer that interprets ANSI codes on
	// platforms that need it.  May be nil.
	colorableStdout func() io.Writer
}

func (c *command) run(args []string) int {
	flags := flag.NewFlagSet("jcs", flag.ContinueOnError)
	flags.SetOutput(c.stderr)
	flags.Usage = func() { printUsage(c.stderr) }

	var (
		colorMode    string
		themeFile    string
		outputFormat string
		jsonIndent   int
		jsonCompact  bool
		jpvQuoteKeys bool
		chunkSize    int
	)
	flags.StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")
	flags.StringVar(&themeFile, "theme", "", "YAML file with the colors to use")
	flags.StringVar(&outputFormat, "out", "echo", "output format: echo, json, jpv, tokens")
	flags.IntVar(&jsonIndent, "json-indent", 2, "JSON indentation level (only used when -json-compact is false)")
	flags.BoolVar(&jsonCompact, "json-compact", false, "output JSON on a single line")
	flags.BoolVar(&jpvQuoteKeys, "jpv-quote-keys", false, "always quote keys in JPV output")
	flags.IntVar(&chunkSize, "chunk-size", 4096, "maximum number of bytes read from the input at once")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Handle color mode
	var useColors bool
	switch colorMode {
	case "always":
		useColors = true
	case "never":
		useColors = false
	case "auto":
		useColors = c.isTerminal
	default:
		return c.fail("invalid -color value: %q (use auto, always, or never)", colorMode)
	}

	var colorizer *format.Colorizer
	if useColors {
		colorizer = &format.DefaultColorizer
		if themeFile != "" {
			theme, err := format.LoadTheme(themeFile)
			if err != nil {
				return c.fail("error: %s", err)
			}
			colorizer, err = theme.Colorizer()
			if err != nil {
				return c.fail("error: %s", err)
			}
		}
	}

	// Parse transforms before reading anything.
	var transformers []token.StreamTransformer
	for _, arg := range flags.Args() {
		transformer, err := parseTransformer(arg)
		if err != nil {
			return c.fail("error: %s", err)
		}
		transformers = append(transformers, transformer)
	}

	// Set up stdout for handling colors
	stdout := c.stdout
	if colorizer != nil && c.colorableStdout != nil {
		stdout = c.colorableStdout()
	}
	out := bufio.NewWriter(stdout)

	indentSize := jsonIndent
	if jsonCompact {
		indentSize = -1
	}
	printer := &format.DefaultPrinter{
		Writer:     out,
		IndentSize: indentSize,
	}

	// If we are writing to a terminal, flush after each line so user gets
	// feedback early.
	var flusher format.Flusher
	if c.isTerminal {
		flusher = out
		printer.Flusher = out
	}

	var encoder token.StreamSink
	switch outputFormat {
	case "echo":
		encoder = &json.EchoEncoder{Printer: printer, Colorizer: colorizer, Flusher: flusher}
	case "json":
		encoder = &json.Encoder{Printer: printer, Colorizer: colorizer}
	case "jpv", "path":
		printer.IndentSize = 0
		encoder = &jpv.Encoder{Printer: printer, Colorizer: colorizer, AlwaysQuoteKeys: jpvQuoteKeys}
	case "tokens":
		printer.IndentSize = 0
		encoder = &tokenEncoder{Printer: printer}
	default:
		return c.fail("invalid output format: %q", outputFormat)
	}

	// Start parsing the input
	decoder := json.NewDecoder(c.stdin)
	decoder.ChunkSize = chunkSize
	var parseErr error
	stream := token.StartStream(decoder, func(err error) { parseErr = err })
	for _, transformer := range transformers {
		stream = token.TransformStream(stream, transformer)
	}

	err := token.ConsumeStream(stream, encoder)
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return 0
		}
		return c.fail("error: %s", err)
	}
	if parseErr != nil {
		return c.fail("error while parsing: %s", parseErr)
	}
	return 0
}

func (c *command) fail(msg string, args ...any) int {
	fmt.Fprintf(c.stderr, msg+"\n", args...)
	return 1
}

func parseTransformer(arg string) (token.StreamTransformer, error) {
	if arg == "trace" {
		return transform.TraceStream{}, nil
	}
	if strings.HasPrefix(arg, "depth=") {
		depth, err := strconv.ParseInt(strings.TrimPrefix(arg, "depth="), 10, 64)
		if err != nil {
			return nil, err
		}
		return &transform.MaxDepthFilter{MaxDepth: int(depth)}, nil
	}
	if strings.HasPrefix(arg, "$") {
		return transform.ParsePathFilter(arg)
	}
	return nil, fmt.Errorf("invalid transform %q", arg)
}

// tokenEncoder prints one token per line, for debugging.
type tokenEncoder struct {
	format.Printer
}

func (e *tokenEncoder) Consume(stream <-chan token.Token) (err error) {
	defer format.CatchPrinterError(&err)
	for tok := range stream {
		e.PrintBytes([]byte(tok.String()))
		e.NewLine()
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `jcs - JSON color stream

USAGE:
  jcs [options] [transforms...] < input.json

DESCRIPTION:
  jcs tokenizes a JSON document as it arrives on stdin and writes it out
  as soon as each token is recognised, so it can follow slow or endless
  producers.  By default the input is echoed unchanged, with colors when
  stdout is a terminal.

OUTPUT:
  -out FORMAT       Output format (default: echo)
                    echo    the input text, highlighted
                    json    pretty-printed JSON
                    jpv     one '$.path = value' line per value
                    tokens  one token per line (kind, path, value, raw)
  -json-compact     Output JSON on a single line
  -json-indent N    Indentation level (default: 2)
  -jpv-quote-keys   Always quote keys in JPV output

COLOR OPTIONS:
  -color MODE       Control color output (default: auto)
                    Modes: auto, always, never
  -theme FILE       YAML file choosing the colors, e.g.
                      key: bright-blue
                      string: green
                      number: "38;5;208"
                      boolean: yellow
                      null: dim-white
                      punctuation: dim-white

INPUT:
  -chunk-size N     Maximum number of bytes read at once (default: 4096)

TRANSFORMS:
  Transforms are applied sequentially to the token stream.

  '$...'            Keep the values at a path (use single quotes!)
                    Examples: '$.items[0]' '$.users[*].name' '$["a b"]'
  depth=N           Drop the contents of containers deeper than N
  trace             Log the stream to stderr (for debugging)

EXAMPLES:
  # Highlight a JSON document
  curl -s https://example.com/data.json | jcs

  # Extract a field from every item, pretty-printed
  jcs -out json '$.users[*].name' < users.json

  # List every value with its path
  jcs -out jpv < data.json | grep email
`)
}
