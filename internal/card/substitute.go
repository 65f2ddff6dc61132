package card

import (
	"errors"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"
)

// errMissingVariable marks a placeholder absent from the context
var errMissingVariable = errors.New("missing variable")

type missingVariable struct {
	name string
}

func (m *missingVariable) Error() string { return errMissingVariable.Error() + ": " + m.name }
func (m *missingVariable) Unwrap() error { return errMissingVariable }

// Placeholders lists the variable paths a description looks up in the
// root context, in order of first appearance. Paths under #with and #each
// bodies, scoped paths (this., ../) and @data are resolved by Handlebars
// against another context and are not listed. A description that does not
// parse has no placeholders.
func Placeholders(text string) []string {
	program, err := parser.Parse(text)
	if err != nil {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	rootPaths(program, func(parts []string) {
		name := strings.Join(parts, ".")
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	})
	return out
}

// Substitute renders text as a Handlebars template against vars.
// Every root-scope placeholder must resolve; Handlebars would otherwise
// render it as an empty string.
func Substitute(text string, vars map[string]any) (string, error) {
	program, err := parser.Parse(text)
	if err != nil {
		return "", err
	}

	var missing *missingVariable
	rootPaths(program, func(parts []string) {
		if missing == nil && !resolves(vars, parts) {
			missing = &missingVariable{name: strings.Join(parts, ".")}
		}
	})
	if missing != nil {
		return "", missing
	}

	tpl, err := raymond.Parse(text)
	if err != nil {
		return "", err
	}
	return tpl.Exec(vars)
}

// rootPaths calls fn for every plain {{path}} mustache evaluated against
// the root context. Helper calls and block arguments are skipped: a
// missing argument is falsy or empty to the helper, not an error.
func rootPaths(program *ast.Program, fn func(parts []string)) {
	if program == nil {
		return
	}
	for _, node := range program.Body {
		switch n := node.(type) {
		case *ast.MustacheStatement:
			if p := lookupPath(n.Expression); p != nil {
				fn(p.Parts)
			}
		case *ast.BlockStatement:
			switch helperName(n.Expression) {
			case "if", "unless":
				rootPaths(n.Program, fn)
			}
			// #with, #each and sections change the context of their body,
			// but the else branch still runs against the current one.
			rootPaths(n.Inverse, fn)
		}
	}
}

// lookupPath returns the path of a parameterless, unscoped mustache
func lookupPath(expr *ast.Expression) *ast.PathExpression {
	if expr == nil || len(expr.Params) > 0 || (expr.Hash != nil && len(expr.Hash.Pairs) > 0) {
		return nil
	}
	p, ok := expr.Path.(*ast.PathExpression)
	if !ok || p.Data || p.Scoped || p.Depth > 0 || len(p.Parts) == 0 {
		return nil
	}
	return p
}

func helperName(expr *ast.Expression) string {
	if expr == nil {
		return ""
	}
	if p, ok := expr.Path.(*ast.PathExpression); ok {
		return p.Original
	}
	return ""
}

func resolves(vars map[string]any, parts []string) bool {
	var cur any = vars
	for _, seg := range parts {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[seg]
			if !ok {
				return false
			}
			cur = v
		case map[string]string:
			v, ok := m[seg]
			if !ok {
				return false
			}
			cur = v
		default:
			return false
		}
	}
	return true
}

func wrapSubstitution(index int, typ string, err error) error {
	var missing *missingVariable
	if errors.As(err, &missing) {
		return &SubstitutionError{Index: index, Type: typ, Placeholder: missing.name}
	}
	return &SubstitutionError{Index: index, Type: typ, Err: err}
}
