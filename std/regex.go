package std

// Package std - regex.go
// Bundled std.regex module: pattern matching/search/replace/split over
// Go's regexp package, grounded on the teacher's std/regex.go. This
// stays a stdlib-backed module rather than gaining a third-party regex
// dependency, per SPEC_FULL.md's DOMAIN STACK note that regexp is one
// of the standard-library surfaces the host module contract (spec.md 6)
// is meant to expose, not replace.

import (
	"fmt"
	"regexp"

	"github.com/chiron-lang/chiron/value"
)

func init() {
	m := newModule("regex")
	m.Functions["match"] = hostFunc("match", regexMatch)
	m.Functions["find"] = hostFunc("find", regexFind)
	m.Functions["find_all"] = hostFunc("find_all", regexFindAll)
	m.Functions["replace"] = hostFunc("replace", regexReplace)
	m.Functions["split"] = hostFunc("split", regexSplit)
	register(m)
}

func compileRegex(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return re, nil
}

func regexMatch(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("match expects 2 arguments, got %d", len(args))
	}
	pattern, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return nil, err
	}
	return &value.Boolean{Value: re.MatchString(s)}, nil
}

func regexFind(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("find expects 2 arguments, got %d", len(args))
	}
	pattern, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return nil, err
	}
	found := re.FindString(s)
	return &value.String{Value: found}, nil
}

func regexFindAll(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("find_all expects 2 arguments, got %d", len(args))
	}
	pattern, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllString(s, -1)
	elements := make([]value.Value, len(matches))
	for i, m := range matches {
		elements[i] = &value.String{Value: m}
	}
	return &value.Array{Elements: elements}, nil
}

func regexReplace(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("replace expects 3 arguments, got %d", len(args))
	}
	pattern, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	repl, err := asString(args[2])
	if err != nil {
		return nil, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return nil, err
	}
	return &value.String{Value: re.ReplaceAllString(s, repl)}, nil
}

func regexSplit(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("split expects 2 arguments, got %d", len(args))
	}
	pattern, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString(args[1])
	if err != nil {
		return nil, err
	}
	re, err := compileRegex(pattern)
	if err != nil {
		return nil, err
	}
	parts := re.Split(s, -1)
	elements := make([]value.Value, len(parts))
	for i, p := range parts {
		elements[i] = &value.String{Value: p}
	}
	return &value.Array{Elements: elements}, nil
}
