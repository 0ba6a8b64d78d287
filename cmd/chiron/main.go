/*
Package main is Chiron's file-running front end: read a source file,
run it through the lexer/parser/evaluator pipeline, report the result.

Grounded on the teacher's main/main.go (banner vars, colored output,
a recover() safety net around evaluation) but adapted to Chiron's own
error-returning parser and writer-taking evaluator rather than the
teacher's panic-based NewParser/Parse and SetParser/Eval. The teacher's
`server <port>` TCP mode has no home here — spec.md names only a file-
reading CLI and an interactive front-end (the REPL) as collaborators,
and a network-exposed REPL isn't one of SPEC_FULL.md's supplemented
features, so it's dropped rather than carried forward unused.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/chiron-lang/chiron/eval"
	"github.com/chiron-lang/chiron/parser"
	"github.com/chiron-lang/chiron/repl"
)

var (
	versionFlag = flag.Bool("version", false, "print version information and exit")
	helpFlag    = flag.Bool("help", false, "print usage information and exit")
)

const (
	version = "v0.1.0"
	license = "MIT"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	flag.BoolVar(helpFlag, "h", false, "print usage information and exit")
	flag.BoolVar(versionFlag, "v", false, "print version information and exit")
	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		return
	}
	if *versionFlag {
		showVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		repl.New(version, license).Start(os.Stdin, os.Stdout)
		return
	}
	runFile(args[0])
}

func showHelp() {
	cyanColor.Println("Chiron - an interpreted imperative scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  chiron                    start interactive REPL mode")
	yellowColor.Println("  chiron <path-to-file>      execute a Chiron source file")
	yellowColor.Println("  chiron --help              display this help message")
	yellowColor.Println("  chiron --version           display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  /exit                       exit the REPL")
	yellowColor.Println("  /scope                      show bindings in the current scope")
}

func showVersion() {
	cyanColor.Println("Chiron - an interpreted imperative scripting language")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
}

// runFile reads source and executes it with a recover() safety net, the
// way the teacher's executeFileWithRecovery does — a bug surfacing deep
// in the evaluator degrades to a reported error rather than a stack
// trace reaching the user.
func runFile(fileName string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}
	executeWithRecovery(string(source))
}

func executeWithRecovery(source string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	p, err := parser.NewParser(source)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	prog, err := p.Parse()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	ev := eval.NewEvaluator(os.Stdout)
	result, err := ev.Run(prog)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	if result != nil {
		if s := result.ToString(); s != "" && s != "unit" {
			yellowColor.Fprintf(os.Stdout, "%s\n", fmt.Sprintf("=> %s", s))
		}
	}
}
