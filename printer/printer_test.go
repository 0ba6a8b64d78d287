package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/chiron-lang/chiron/parser"
)

// roundTrip parses src, prints the result, and re-parses the printed
// text, returning both programs for structural comparison. This is
// spec.md 8's round-trip property: parse -> print -> re-parse ->
// structurally equal AST, ignoring Position (which the printer cannot
// be expected to reproduce byte-for-byte).
func roundTrip(t *testing.T, src string) (*parser.Program, *parser.Program, string) {
	t.Helper()
	p, err := parser.NewParser(src)
	require.NoError(t, err)
	original, err := p.Parse()
	require.NoError(t, err)

	printed := Program(original)

	p2, err := parser.NewParser(printed)
	require.NoError(t, err, "printed source failed to re-parse:\n%s", printed)
	reparsed, err := p2.Parse()
	require.NoError(t, err)

	return original, reparsed, printed
}

var ignorePositions = cmpopts.IgnoreFields(parser.Position{}, "Line", "Col")

func assertRoundTrips(t *testing.T, src string) {
	t.Helper()
	original, reparsed, printed := roundTrip(t, src)
	if diff := cmp.Diff(original, reparsed, ignorePositions); diff != "" {
		t.Errorf("round-trip mismatch for %q (printed as %q):\n%s", src, printed, diff)
	}
}

func TestRoundTrip_Declarations(t *testing.T) {
	assertRoundTrips(t, `int x = 10;`)
	assertRoundTrips(t, `const float PI := 3.14;`)
	assertRoundTrips(t, `auto name = "chiron";`)
	assertRoundTrips(t, `static global const int counter = 0;`)
}

func TestRoundTrip_Callable(t *testing.T) {
	assertRoundTrips(t, `
		callable add(int a, int b) -> int {
			return a + b;
		};
	`)
	assertRoundTrips(t, `callable forward(int a) -> int;`)
}

func TestRoundTrip_GenericTypes(t *testing.T) {
	assertRoundTrips(t, `array<int> xs = [1];`)
	assertRoundTrips(t, `map<str,int> m = {};`)
	assertRoundTrips(t, `
		callable first(array<int> xs) -> map<str,array<int>> {
			return xs;
		};
	`)
}

func TestRoundTrip_IfElseChain(t *testing.T) {
	assertRoundTrips(t, `
		callable main() -> int {
			if (x < 0) {
				return 0;
			} else if (x == 0) {
				return 1;
			} else {
				return 2;
			};
			return 3;
		};
	`)
}

func TestRoundTrip_WhileAndFor(t *testing.T) {
	assertRoundTrips(t, `
		callable main() -> int {
			int i = 0;
			while (i < 10) {
				i = i + 1;
			};
			for (int j = 0; j < 5; j = j + 1) {
				print(j);
			};
			return 0;
		};
	`)
}

func TestRoundTrip_TryExceptFinally(t *testing.T) {
	assertRoundTrips(t, `
		callable main() -> int {
			try {
				int z = 1 / 0;
			} except DivisionByZero as e {
				print(e);
			} except Exception as e {
				print(e);
			} finally {
				print("done");
			};
			return 0;
		};
	`)
}

func TestRoundTrip_ImportsAndFromImports(t *testing.T) {
	assertRoundTrips(t, `import std.math as m, std.io;`)
	assertRoundTrips(t, `from std.collections import push, pop as remove_last;`)
	assertRoundTrips(t, `from std.fmt import *;`)
}

func TestRoundTrip_Literals(t *testing.T) {
	assertRoundTrips(t, `array a = [1, 2, 3];`)
	assertRoundTrips(t, `tuple t = (1, 2, 3);`)
	assertRoundTrips(t, `map m = {"a": 1, "b": 2};`)
	assertRoundTrips(t, `str s = "line\nbreak \"quoted\"";`)
	assertRoundTrips(t, `char c = 'x';`)
}

func TestRoundTrip_IncDecAndLogic(t *testing.T) {
	assertRoundTrips(t, `
		callable main() -> int {
			int x = 0;
			++:x;
			x:++;
			--:x;
			x:--;
			bool ok = x > 0 and not (x == 0) or x < 0;
			return x;
		};
	`)
}

func TestRoundTrip_GetAttrAndKeywordCall(t *testing.T) {
	assertRoundTrips(t, `
		import std.math;
		callable main() -> float {
			return math.sqrt(x = 4);
		};
	`)
}
