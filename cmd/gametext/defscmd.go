package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/quaketools/gametext"
)

const defsUsage = `gametext defs - Parse a definition source file

Usage:
  gametext defs [options] FILE

Options:
  -f, --format FORMAT   Output format: text or yaml (default text)
  -h, --help            Show help

Examples:
  gametext defs weapons.def
  gametext defs -f yaml materials.def
`

// defsDocument declares no keys, so the entire file is captured as
// unknown assignments and blocks.
type defsDocument struct {
	gametext.Extras
}

func (c *cli) cmdDefs(args []string) int {
	fs := flag.NewFlagSet("defs", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, defsUsage) }

	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(os.Stdout, defsUsage)
		return exitOK
	}

	if fs.NArg() != 1 {
		printError("expected exactly one FILE argument")
		fmt.Fprint(os.Stderr, defsUsage)
		return exitError
	}
	path := fs.Arg(0)

	var doc defsDocument
	parseErrs, err := gametext.ParseDefsFile(path, &doc, c.parseOptions()...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	code := exitOK
	if len(parseErrs) > 0 {
		for _, pe := range parseErrs {
			fmt.Fprintf(os.Stderr, "%s:%s\n", path, pe)
		}
		code = exitParseError
	}

	// The result is best-effort; dump whatever parsed.
	if c.format == "yaml" {
		out, err := yaml.Marshal(dumpDefs(&doc))
		if err != nil {
			printError("failed to marshal YAML: %v", err)
			return exitError
		}
		fmt.Print(string(out))
		return code
	}

	printDefsSummary(&doc)
	return code
}

// defsDump is the marshal shape for definition output.
type defsDump struct {
	Assignments map[string]gametext.Value              `yaml:"assignments,omitempty"`
	Blocks      map[string][]map[string]gametext.Value `yaml:"blocks,omitempty"`
}

func dumpDefs(doc *defsDocument) defsDump {
	out := defsDump{Assignments: doc.UnknownAssignments}
	if len(doc.UnknownBlocks) > 0 {
		out.Blocks = make(map[string][]map[string]gametext.Value)
		for tag, blocks := range doc.UnknownBlocks {
			for _, block := range blocks {
				out.Blocks[tag] = append(out.Blocks[tag], block.Assignments)
			}
		}
	}
	return out
}

func printDefsSummary(doc *defsDocument) {
	keys := make([]string, 0, len(doc.UnknownAssignments))
	for key := range doc.UnknownAssignments {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s = %s\n", key, doc.UnknownAssignments[key])
	}

	tags := make([]string, 0, len(doc.UnknownBlocks))
	for tag := range doc.UnknownBlocks {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		for _, block := range doc.UnknownBlocks[tag] {
			fmt.Printf("%s {\n", tag)
			bkeys := make([]string, 0, len(block.Assignments))
			for key := range block.Assignments {
				bkeys = append(bkeys, key)
			}
			sort.Strings(bkeys)
			for _, key := range bkeys {
				fmt.Printf("  %s = %s\n", key, block.Assignments[key])
			}
			fmt.Println("}")
		}
	}
}
