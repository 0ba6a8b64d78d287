package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiron-lang/chiron/parser"
)

// run parses src and evaluates it, returning whatever print/println
// wrote plus the program's own result value.
func run(t *testing.T, src string) (string, interface{}) {
	t.Helper()
	p, err := parser.NewParser(src)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := NewEvaluator(&out)
	result, err := ev.Run(prog)
	require.NoError(t, err)
	return out.String(), result
}

func TestRun_MainPrintsAndReturns(t *testing.T) {
	out, _ := run(t, `
		callable main() -> int {
			print("hello");
			return 0;
		};
	`)
	assert.Equal(t, "hello", out)
}

func TestRun_GlobalMutatedInLoopInsideMain(t *testing.T) {
	out, _ := run(t, `
		int x = 10;
		callable main() -> int {
			for (int i = 0; i < 3; i = i + 1) {
				x = x + i;
			};
			print(x);
			return 0;
		};
	`)
	assert.Equal(t, "13", out)
}

func TestRun_RecursiveFibonacci(t *testing.T) {
	out, _ := run(t, `
		callable f(int n) -> int {
			if (n < 2) {
				return n;
			};
			return f(n - 1) + f(n - 2);
		};
		callable main() -> int {
			print(f(10));
			return 0;
		};
	`)
	assert.Equal(t, "55", out)
}

func TestRun_TryExceptFinallyCatchesDivisionByZero(t *testing.T) {
	out, _ := run(t, `
		callable main() -> int {
			try {
				int z = 1 / 0;
			} except Exception as e {
				print("caught");
			} finally {
				print("done");
			};
			return 0;
		};
	`)
	assert.Equal(t, "caughtdone", out)
}

func TestRun_FromStdIoImportPrint(t *testing.T) {
	out, _ := run(t, `
		from std.io import print;
		callable main() -> int {
			print("ok");
			return 0;
		};
	`)
	assert.Equal(t, "ok", out)
}

func TestRun_TopLevelCodeWithoutMain(t *testing.T) {
	out, _ := run(t, `
		auto a = 2;
		auto b = 3;
		print(a * b);
	`)
	assert.Equal(t, "6", out)
}

func TestRun_TopLevelDeclarationsRunInSourceOrderWithoutMain(t *testing.T) {
	out, _ := run(t, `
		print("a");
		auto x = "init";
		print(x);
		print("b");
	`)
	assert.Equal(t, "ainitb", out)
}

func TestRun_TopLevelUseBeforeDeclareIsNameErrorWithoutMain(t *testing.T) {
	p, err := parser.NewParser(`
		print(x);
		int x = 2;
	`)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	ev := NewEvaluator(&bytes.Buffer{})
	_, err = ev.Run(prog)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "NameError", rerr.Kind)
}

func TestRun_UnmatchedExceptionPropagates(t *testing.T) {
	p, err := parser.NewParser(`
		callable main() -> int {
			try {
				int z = 1 / 0;
			} except NameError as e {
				print("wrong handler");
			};
			return 0;
		};
	`)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := NewEvaluator(&out)
	_, err = ev.Run(prog)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "DivisionByZero", rerr.Kind)
}

func TestRun_BreakStopsLoop(t *testing.T) {
	out, _ := run(t, `
		callable main() -> int {
			int i = 0;
			while (i < 10) {
				if (i == 3) {
					break;
				};
				print(i);
				i = i + 1;
			};
			return 0;
		};
	`)
	assert.Equal(t, "012", out)
}

func TestRun_ArityMismatchIsRuntimeError(t *testing.T) {
	p, err := parser.NewParser(`
		callable add(int a, int b) -> int {
			return a + b;
		};
		callable main() -> int {
			print(add(1));
			return 0;
		};
	`)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	ev := NewEvaluator(&bytes.Buffer{})
	_, err = ev.Run(prog)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "ArityError", rerr.Kind)
}

func TestRun_ConstReassignmentIsRuntimeError(t *testing.T) {
	p, err := parser.NewParser(`
		const int x = 1;
		callable main() -> int {
			x = 2;
			return 0;
		};
	`)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	ev := NewEvaluator(&bytes.Buffer{})
	_, err = ev.Run(prog)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "ConstError", rerr.Kind)
}
