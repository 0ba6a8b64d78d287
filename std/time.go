package std

// Package std - time.go
// Bundled std.time module, grounded on the teacher's std/time.go
// (Unix timestamps, formatting/parsing). Chiron has no Value kind for
// time itself (spec.md's Non-goals keep the numeric tower closed), so
// timestamps travel as plain integers, the way the teacher's
// now()/now_ms() do.

import (
	"fmt"
	"time"

	"github.com/chiron-lang/chiron/value"
)

const timeLayout = "2006-01-02 15:04:05"

func init() {
	m := newModule("time")
	m.Functions["now"] = hostFunc("now", timeNow)
	m.Functions["now_ms"] = hostFunc("now_ms", timeNowMs)
	m.Functions["format_time"] = hostFunc("format_time", timeFormat)
	m.Functions["parse_time"] = hostFunc("parse_time", timeParse)
	register(m)
}

func timeNow(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("now expects no arguments, got %d", len(args))
	}
	return &value.Integer{Value: time.Now().Unix()}, nil
}

func timeNowMs(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("now_ms expects no arguments, got %d", len(args))
	}
	return &value.Integer{Value: time.Now().UnixMilli()}, nil
}

func timeFormat(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("format_time expects 1 argument, got %d", len(args))
	}
	ts, ok := args[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("format_time expects an integer Unix timestamp, got %s", args[0].GetType())
	}
	return &value.String{Value: time.Unix(ts.Value, 0).UTC().Format(timeLayout)}, nil
}

func timeParse(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("parse_time expects 1 argument, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return nil, fmt.Errorf("parse_time: %w", err)
	}
	return &value.Integer{Value: t.Unix()}, nil
}
