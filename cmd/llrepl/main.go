/*
Llrepl starts an interactive llparse recognizer shell.

It loads a grammar file, builds its LL(1) parsing table once, and then
repeatedly reads a line of input, tokenizes and recognizes it against the
table, and prints whether it was accepted, or on rejection, the failure
classification and parser stack at the point of failure.

Usage:

	llrepl [flags] GRAMMAR_FILE

The flags are:

	-v, --version
		Give the current version of llrepl and then exit.

	-f, --format FORMAT
		The surface format of GRAMMAR_FILE: "text" (the default) or "toml".

	-d, --direct
		Force reading directly from stdin as opposed to using GNU readline
		based routines for reading input, even if launched in a tty.

To exit the shell, type "QUIT" or send EOF (Ctrl-D).
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/lex"
	"github.com/dekarrin/llparse/internal/recognize"
	"github.com/dekarrin/llparse/internal/repl"
	"github.com/dekarrin/llparse/internal/surface"
	"github.com/dekarrin/llparse/internal/table"
	"github.com/dekarrin/llparse/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of llrepl and then exit.")
	flagFormat  = pflag.StringP("format", "f", "text", "The surface format of the grammar file.")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("llrepl v%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "ERROR: exactly one GRAMMAR_FILE argument is required\nDo -h for help.\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	g, err := loadGrammar(string(data), *flagFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	tbl, conflicts, err := table.Build(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
	if !table.IsLL1(conflicts) {
		fmt.Fprintf(os.Stderr, "WARN  grammar is not LL(1): %d conflict(s); recognition uses only the first alternate found for an ambiguous cell\n", len(conflicts))
	}

	useReadline := !*flagDirect && isatty.IsTerminal(os.Stdin.Fd())

	var reader repl.LineReader
	if useReadline {
		reader, err = repl.NewInteractiveReader("llparse> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			os.Exit(1)
		}
	} else {
		reader = repl.NewDirectReader(os.Stdin)
	}
	defer reader.Close()

	runLoop(reader, tbl, g)
}

func loadGrammar(text, format string) (grammar.Grammar, error) {
	switch format {
	case "toml":
		return surface.LoadTOML([]byte(text))
	default:
		return surface.Load(text, surface.Options{})
	}
}

func runLoop(reader repl.LineReader, tbl table.Table, g grammar.Grammar) {
	for {
		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return
		}

		if strings.EqualFold(strings.TrimSpace(line), "QUIT") {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		recognizeLine(tbl, g, line)
	}
}

func recognizeLine(tbl table.Table, g grammar.Grammar, line string) {
	stream, err := lex.StreamOf(line)
	if err != nil {
		fmt.Printf("REJECT: %s\n", err.Error())
		return
	}

	if err := recognize.Run(tbl, g, stream); err != nil {
		var parseErr *recognize.ParseError
		if errors.As(err, &parseErr) {
			fmt.Printf("REJECT: %s\n", parseErr.Error())
			return
		}
		fmt.Printf("ERROR: %s\n", err.Error())
		return
	}

	fmt.Println("ACCEPT")
}
