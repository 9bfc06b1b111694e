// Command gametext is a CLI tool for parsing and dumping map and
// definition source files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/quaketools/gametext"
)

// Exit codes.
const (
	exitOK         = 0 // success
	exitError      = 1 // usage or I/O error
	exitParseError = 2 // the input parsed with errors
)

const usage = `gametext - game text format parser and dump tool

Usage:
  gametext <command> [options] FILE

Commands:
  map     Parse a map source file
  defs    Parse a definition source file
  version Show version

Common options:
  -f, --format FORMAT   Output format: text or yaml (default text)
  -v, --verbose         Enable debug logging
  -vv                   Enable trace logging (implies -v)
  -h, --help            Show help

Examples:
  gametext map e1m1.map
  gametext map -f yaml e1m1.map
  gametext defs weapons.def
  gametext defs -f yaml materials.def
`

type cli struct {
	verbose  int
	format   string
	helpFlag bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	c := cli{format: "text"}
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case arg == "-f" || arg == "-format" || arg == "--format":
			if i+1 < len(args) {
				i++
				c.format = args[i]
			}
		case strings.HasPrefix(arg, "--format="):
			c.format = arg[len("--format="):]
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}

	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	if c.format != "text" && c.format != "yaml" {
		printError("unknown format: %s", c.format)
		return exitError
	}

	switch cmd {
	case "map":
		return c.cmdMap(cmdArgs)
	case "defs":
		return c.cmdDefs(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = gametext.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) parseOptions() []gametext.ParseOption {
	var opts []gametext.ParseOption
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, gametext.WithLogger(logger))
	}
	return opts
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("gametext %s\n", version)
}

func printError(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
