package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/quaketools/gametext"
)

const mapUsage = `gametext map - Parse a map source file

Usage:
  gametext map [options] FILE

Options:
  -f, --format FORMAT   Output format: text or yaml (default text)
  -h, --help            Show help

Examples:
  gametext map e1m1.map
  gametext map -f yaml e1m1.map
`

func (c *cli) cmdMap(args []string) int {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, mapUsage) }

	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, mapUsage)
		return exitOK
	}

	if fs.NArg() != 1 {
		printError("expected exactly one FILE argument")
		fmt.Fprint(os.Stderr, mapUsage)
		return exitError
	}
	path := fs.Arg(0)

	doc, parseErrs, err := gametext.ParseMapFile(path, c.parseOptions()...)
	if err != nil {
		printError("%v", err)
		return exitError
	}
	if len(parseErrs) > 0 {
		for _, pe := range parseErrs {
			fmt.Fprintf(os.Stderr, "%s:%s\n", path, pe)
		}
		return exitParseError
	}

	if c.format == "yaml" {
		out, err := yaml.Marshal(doc)
		if err != nil {
			printError("failed to marshal YAML: %v", err)
			return exitError
		}
		fmt.Print(string(out))
		return exitOK
	}

	printMapSummary(doc)
	return exitOK
}

func printMapSummary(doc *gametext.MapDocument) {
	fmt.Printf("entities: %d\n", len(doc.Entities))
	for i, entity := range doc.Entities {
		fmt.Printf("entity %d: %s\n", i, entity.Classname())

		keys := make([]string, 0, len(entity.KeyValues))
		for key := range entity.KeyValues {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %q %q\n", key, entity.KeyValues[key])
		}

		for j, brush := range entity.Brushes {
			dialect := "legacy"
			if len(brush.Planes) > 0 && brush.Planes[0].Valve220 {
				dialect = "valve220"
			}
			fmt.Printf("  brush %d: %d planes (%s)\n", j, len(brush.Planes), dialect)
		}
	}
}
