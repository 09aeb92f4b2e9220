/*
Llcli builds an LL(1) parsing table from a grammar file and either prints the
table, reports any conflicts found while building it, or recognizes an input
stream against it.

Usage:

	llcli [flags] GRAMMAR_FILE

The flags are:

	-v, --version
		Give the current version of llcli and then exit.

	-f, --format FORMAT
		The surface format of GRAMMAR_FILE: "text" (the default) or "toml".

	-t, --table
		Print the built LL(1) parsing table and exit. This is the default
		action if no other action flag is given.

	-c, --conflicts
		Report any LL(1) conflicts found while building the table and exit
		with a non-zero status if any are found.

	-i, --input FILE
		Recognize the contents of FILE (or "-" for stdin) against the built
		table, printing accept or reject plus, on rejection, the failure
		classification and parser stack at the point of failure.

	--config FILE
		Load flag defaults from the given TOML config file before applying
		any flags given on the command line.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/lex"
	"github.com/dekarrin/llparse/internal/recognize"
	"github.com/dekarrin/llparse/internal/surface"
	"github.com/dekarrin/llparse/internal/table"
	"github.com/dekarrin/llparse/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitConflicts
	ExitRejected
	ExitError
)

// fileConfig is the shape of an optional --config TOML file providing flag
// defaults.
type fileConfig struct {
	Format    string `toml:"format"`
	Table     bool   `toml:"table"`
	Conflicts bool   `toml:"conflicts"`
	Input     string `toml:"input"`
}

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of llcli and then exit.")
	flagFormat    = pflag.StringP("format", "f", "text", "The surface format of the grammar file.")
	flagTable     = pflag.BoolP("table", "t", false, "Print the built LL(1) parsing table and exit.")
	flagConflicts = pflag.BoolP("conflicts", "c", false, "Report any LL(1) conflicts found while building the table.")
	flagInput     = pflag.StringP("input", "i", "", "Recognize the contents of FILE (or \"-\" for stdin) against the table.")
	flagConfig    = pflag.String("config", "", "Load flag defaults from the given TOML config file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("llcli v%s\n", version.Current)
		os.Exit(ExitSuccess)
	}

	if *flagConfig != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(*flagConfig, &fc); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not read config file: %s\n", err.Error())
			os.Exit(ExitError)
		}
		applyFileConfig(fc)
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "ERROR: exactly one GRAMMAR_FILE argument is required\nDo -h for help.\n")
		os.Exit(ExitError)
	}

	g, err := loadGrammar(args[0], *flagFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(ExitError)
	}

	tbl, conflicts, err := table.Build(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(ExitError)
	}

	if *flagConflicts {
		if len(conflicts) == 0 {
			fmt.Println("no conflicts: grammar is LL(1)")
			os.Exit(ExitSuccess)
		}
		for _, c := range conflicts {
			fmt.Println(c.Error())
		}
		os.Exit(ExitConflicts)
	}

	if *flagInput != "" {
		os.Exit(runRecognize(tbl, g, *flagInput))
	}

	fmt.Println(tbl.String())
	if !table.IsLL1(conflicts) {
		fmt.Fprintf(os.Stderr, "WARN  grammar is not LL(1): %d conflict(s)\n", len(conflicts))
	}
	os.Exit(ExitSuccess)
}

func applyFileConfig(fc fileConfig) {
	if fc.Format != "" && !pflag.Lookup("format").Changed {
		*flagFormat = fc.Format
	}
	if fc.Table && !pflag.Lookup("table").Changed {
		*flagTable = fc.Table
	}
	if fc.Conflicts && !pflag.Lookup("conflicts").Changed {
		*flagConflicts = fc.Conflicts
	}
	if fc.Input != "" && !pflag.Lookup("input").Changed {
		*flagInput = fc.Input
	}
}

func loadGrammar(path, format string) (grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("read grammar file: %w", err)
	}

	switch format {
	case "toml":
		return surface.LoadTOML(data)
	default:
		return surface.Load(string(data), surface.Options{})
	}
}

func runRecognize(tbl table.Table, g grammar.Grammar, inputPath string) int {
	var data []byte
	var err error

	if inputPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitError
	}

	stream, err := lex.StreamOf(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitError
	}

	if err := recognize.Run(tbl, g, stream); err != nil {
		var parseErr *recognize.ParseError
		if errors.As(err, &parseErr) {
			fmt.Printf("REJECT: %s\n", parseErr.Error())
			return ExitRejected
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitError
	}

	fmt.Println("ACCEPT")
	return ExitSuccess
}
