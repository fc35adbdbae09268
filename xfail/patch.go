package xfail

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// Annotation is the line inserted directly above a matched test function so
// the expected-failure marker binds to that function.
const Annotation = "@unittest.expectedFailure"

// DefaultMarker is the tracking comment inserted above the annotation.
const DefaultMarker = "# TODO: known failure"

// Patcher inserts expected-failure annotations into Python source text.
type Patcher struct {
	Marker string
}

// NewPatcher creates a Patcher with the given tracking comment.
// An empty marker falls back to DefaultMarker.
func NewPatcher(marker string) *Patcher {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Patcher{Marker: marker}
}

// Apply parses src as Python source and inserts the tracking comment and the
// expected-failure annotation above the function identified by the resolved
// path. It returns the (possibly modified) text and whether a patch was
// applied.
//
// Matching is scope-aware: the last path component must equal the function
// name and the preceding components must be a suffix of the enclosing
// class/function name chain. No match is a no-op; more than one match is an
// AmbiguousMatchError. A platform-specific request against a real match is a
// PlatformError and never patches anything.
//
// Apply does not deduplicate: applying it twice for the same function
// inserts two separate annotation blocks.
func (p *Patcher) Apply(src string, path []string, forPlatform bool) (string, bool, error) {
	if len(path) == 0 {
		return src, false, nil
	}

	tree, err := parser.ParseString(src, py.ExecMode)
	if err != nil {
		return "", false, fmt.Errorf("parsing source: %w", err)
	}
	module, ok := tree.(*ast.Module)
	if !ok {
		return src, false, nil
	}

	var matches []*ast.FunctionDef
	collectMatches(module.Body, nil, path, &matches)

	name := path[len(path)-1]
	switch {
	case len(matches) == 0:
		return src, false, nil
	case len(matches) > 1:
		return "", false, &AmbiguousMatchError{Name: name, Count: len(matches)}
	}
	if forPlatform {
		return "", false, &PlatformError{Name: name}
	}

	fn := matches[0]
	indent := strings.Repeat(" ", fn.ColOffset)
	at := fn.Lineno - 1 // Lineno is 1-based

	lines := strings.Split(src, "\n")
	patched := make([]string, 0, len(lines)+2)
	patched = append(patched, lines[:at]...)
	patched = append(patched, indent+p.Marker, indent+Annotation)
	patched = append(patched, lines[at:]...)
	return strings.Join(patched, "\n"), true, nil
}

// collectMatches walks stmts in pre-order, including nested class and
// function bodies, tracking the enclosing scope name chain. Every function
// definition whose name and scope suffix match the resolved path is
// appended to out.
func collectMatches(stmts []ast.Stmt, scope []string, path []string, out *[]*ast.FunctionDef) {
	want := ast.Identifier(path[len(path)-1])
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			if s.Name == want && scopeEndsWith(scope, path[:len(path)-1]) {
				*out = append(*out, s)
			}
			collectMatches(s.Body, append(scope, string(s.Name)), path, out)
		case *ast.ClassDef:
			collectMatches(s.Body, append(scope, string(s.Name)), path, out)
		case *ast.If:
			collectMatches(s.Body, scope, path, out)
			collectMatches(s.Orelse, scope, path, out)
		case *ast.For:
			collectMatches(s.Body, scope, path, out)
			collectMatches(s.Orelse, scope, path, out)
		case *ast.While:
			collectMatches(s.Body, scope, path, out)
			collectMatches(s.Orelse, scope, path, out)
		case *ast.With:
			collectMatches(s.Body, scope, path, out)
		case *ast.Try:
			collectMatches(s.Body, scope, path, out)
			for _, h := range s.Handlers {
				collectMatches(h.Body, scope, path, out)
			}
			collectMatches(s.Orelse, scope, path, out)
			collectMatches(s.Finalbody, scope, path, out)
		}
	}
}

// scopeEndsWith reports whether scope ends with the components in want.
// An empty want matches any scope.
func scopeEndsWith(scope, want []string) bool {
	if len(want) > len(scope) {
		return false
	}
	tail := scope[len(scope)-len(want):]
	for i := range want {
		if tail[i] != want[i] {
			return false
		}
	}
	return true
}
