package std

// Package std - io.go
// Bundled std.io module: line-oriented stdin reading, grounded on the
// teacher's std/io.go. sprintf/printf/print live in fmt.go (spec.md's
// DOMAIN STACK names std.fmt explicitly), so this file implements only
// the read side of the host's I/O surface and re-exports fmt.go's
// print family under std.io.

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chiron-lang/chiron/value"
)

var stdinReader = bufio.NewReader(os.Stdin)

func init() {
	m := newModule("io")
	m.Functions["readln"] = hostFunc("readln", ioReadln)
	m.Functions["getchar"] = hostFunc("getchar", ioGetchar)
	// print/println/printf are implemented in fmt.go but also exported
	// here under std.io, since spec.md 8's worked examples import print
	// from std.io rather than std.fmt.
	m.Functions["print"] = hostFunc("print", fmtPrint(os.Stdout))
	m.Functions["println"] = hostFunc("println", fmtPrintln(os.Stdout))
	m.Functions["printf"] = hostFunc("printf", fmtPrintf(os.Stdout))
	register(m)
}

func ioReadln(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("readln expects no arguments, got %d", len(args))
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("readln: %w", err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return &value.String{Value: line}, nil
}

func ioGetchar(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("getchar expects no arguments, got %d", len(args))
	}
	r, _, err := stdinReader.ReadRune()
	if err != nil {
		return nil, fmt.Errorf("getchar: %w", err)
	}
	return &value.Character{Value: r}, nil
}
