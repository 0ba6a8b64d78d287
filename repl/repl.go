/*
Package repl implements Chiron's interactive read-eval-print loop.

Grounded on the teacher's repl/repl.go: chzyer/readline for line editing
and history, fatih/color for banner and result/error coloring, and one
persistent evaluator reused across every line so declarations made on
one line stay visible on the next. Three things differ from the teacher
deliberately: the exit command is spelled `/exit` rather than `.exit`,
and there is a `/scope` command the teacher has no equivalent of
(SPEC_FULL.md's supplemented feature 3), and evaluation goes through
Evaluator.EvalLine rather than a whole-program Run, since a REPL line is
never a complete program with its own import/declaration/main passes.
*/
package repl

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/chiron-lang/chiron/eval"
	"github.com/chiron-lang/chiron/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `
   ______ __    _ ____
  / ____// /_  (_) __ \____  ____
 / /    / __ \/ / /_/ / __ \/ __ \
/ /___ / / / / / _, _/ /_/ / / / /
\____//_/ /_/_/_/ |_|\____/_/ /_/
`

const line = "----------------------------------------------------------------"

// Repl is a configured interactive session: banner/version/license text
// and prompt. Start creates the persistent Evaluator every line executes
// against.
type Repl struct {
	Version string
	License string
	Prompt  string
}

// New builds a Repl with Chiron's standard banner and prompt.
func New(version, license string) *Repl {
	return &Repl{Version: version, License: license, Prompt: "chiron>>> "}
}

// PrintBanner writes the startup banner, version line, and usage hints
// to writer.
func (r *Repl) PrintBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", line)
	greenColor.Fprintf(writer, "%s\n", banner)
	blueColor.Fprintf(writer, "%s\n", line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", line)
	cyanColor.Fprintln(writer, "Type Chiron code and press enter.")
	cyanColor.Fprintln(writer, "Type '/exit' to quit, '/scope' to inspect bindings.")
	blueColor.Fprintf(writer, "%s\n", line)
}

// Start runs the main loop: print the banner, then read, evaluate, and
// print each line until EOF or /exit. reader is accepted for interface
// symmetry with the file-running front end, matching the teacher's own
// Start signature, but readline.New always reads from the process's
// real stdin once started (the teacher's repl.go leaves reader unused
// for the same reason).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBanner(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(writer, "could not start line editor: %v\n", err)
		return
	}
	defer rl.Close()

	ev := eval.NewEvaluator(writer)

	for {
		input, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/exit" {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		if input == "/scope" {
			r.printScope(writer, ev)
			continue
		}

		rl.SaveHistory(input)
		r.evalLine(writer, ev, input)
	}
}

// evalLine parses and evaluates one line of input against ev, recovering
// from any panic reaching this frame so one bad line never kills the
// session, the way the teacher's executeWithRecovery does.
func (r *Repl) evalLine(writer io.Writer, ev *eval.Evaluator, input string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "internal error: %v\n", rec)
		}
	}()

	p, err := parser.NewParser(input)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	prog, err := p.Parse()
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	result, err := ev.EvalLine(prog)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.ToString())
}

// printScope lists every name bound directly in the session's root
// scope, grouped by namespace, for the /scope introspection command.
func (r *Repl) printScope(writer io.Writer, ev *eval.Evaluator) {
	vars, funcs, modules := ev.Root.LocalNames()

	var b bytes.Buffer
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString("variables:\n")
	for _, name := range names {
		if vars[name] {
			b.WriteString("  const " + name + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}

	sort.Strings(funcs)
	b.WriteString("callables:\n")
	for _, name := range funcs {
		b.WriteString("  " + name + "\n")
	}

	sort.Strings(modules)
	b.WriteString("imports:\n")
	for _, name := range modules {
		b.WriteString("  " + name + "\n")
	}

	cyanColor.Fprint(writer, b.String())
}
