package decl

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"vtable-generator/internal/diagnostic"
	"vtable-generator/internal/match"
)

const (
	directivePrefix = "//vtable:"
	markerName      = "generate"
)

var (
	memberDirectiveNames = []string{"offset", "check", "skip"}
	optionNames          = []string{"convention", "table", "receiver"}
)

// rawDirective is a //vtable: comment line split into name and argument.
type rawDirective struct {
	Name string
	Arg  string
	Text string
	Pos  token.Position
}

// call renders the directive as written in call form for diagnostics.
func (r rawDirective) call() string {
	return r.Name + "(" + r.Arg + ")"
}

// splitComments separates //vtable: directive lines from passthrough
// comment lines, preserving order within each group.
func splitComments(fset *token.FileSet, groups ...*ast.CommentGroup) ([]string, []rawDirective) {
	var (
		lines      []string
		directives []rawDirective
	)

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if !strings.HasPrefix(c.Text, directivePrefix) {
				lines = append(lines, c.Text)
				continue
			}

			directives = append(directives, splitDirective(c.Text, fset.Position(c.Pos())))
		}
	}

	return trimBlankTail(lines), directives
}

// trimBlankTail drops trailing empty "//" lines left behind when the
// directives were the last lines of a comment.
func trimBlankTail(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "//" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// splitDirective splits "//vtable:skip -1" or "//vtable:skip(-1)" into
// name "skip" and argument "-1".
func splitDirective(text string, pos token.Position) rawDirective {
	body := strings.TrimPrefix(text, directivePrefix)

	end := 0
	for end < len(body) && isNameByte(body[end]) {
		end++
	}

	name := body[:end]
	arg := strings.TrimSpace(body[end:])

	if strings.HasPrefix(arg, "(") && strings.HasSuffix(arg, ")") {
		arg = strings.TrimSpace(arg[1 : len(arg)-1])
	}

	return rawDirective{Name: name, Arg: arg, Text: text, Pos: pos}
}

func isNameByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// parseDirective converts a raw member directive into a Directive.
func parseDirective(raw rawDirective) (Directive, *diagnostic.Diagnostic) {
	kind, ok := directiveKinds[raw.Name]
	if !ok {
		return Directive{}, &diagnostic.Diagnostic{
			Code:      diagnostic.CodeUnknownDirective,
			Message:   fmt.Sprintf("unknown member directive %q (want offset, check or skip)%s", raw.Name, match.Hint(raw.Name, memberDirectiveNames)),
			Directive: raw.Text,
			Pos:       raw.Pos,
		}
	}

	if raw.Arg == "" {
		return Directive{}, &diagnostic.Diagnostic{
			Code:      diagnostic.CodeBadLiteral,
			Message:   "missing integer argument",
			Directive: raw.call(),
			Pos:       raw.Pos,
			Expected:  "integer literal",
			Actual:    "nothing",
		}
	}

	value, err := strconv.ParseInt(raw.Arg, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return Directive{}, &diagnostic.Diagnostic{
			Code:      diagnostic.CodeBadLiteral,
			Message:   "argument is out of range",
			Directive: raw.call(),
			Pos:       raw.Pos,
			Expected:  "32-bit integer",
			Actual:    raw.Arg,
		}
	}

	if err != nil {
		return Directive{}, &diagnostic.Diagnostic{
			Code:      diagnostic.CodeBadLiteral,
			Message:   "argument is not an integer literal",
			Directive: raw.call(),
			Pos:       raw.Pos,
			Expected:  "integer literal",
			Actual:    strconv.Quote(raw.Arg),
		}
	}

	return Directive{Kind: kind, Value: int(value), Raw: raw.Text, Pos: raw.Pos}, nil
}

// parseOptions parses the key=value pairs following //vtable:generate.
//
//	//vtable:generate convention=native table=vptr receiver=e
func parseOptions(raw rawDirective) (Options, []diagnostic.Diagnostic) {
	var (
		opts  Options
		diags []diagnostic.Diagnostic
	)

	bad := func(msg string, args ...any) {
		diags = append(diags, diagnostic.Diagnostic{
			Code:      diagnostic.CodeBadOption,
			Message:   fmt.Sprintf(msg, args...),
			Directive: raw.Text,
			Pos:       raw.Pos,
		})
	}

	for _, pair := range strings.Fields(raw.Arg) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			bad("option %q must be key=value", pair)
			continue
		}

		switch key {
		case "convention":
			switch Convention(value) {
			case ConventionGo, ConventionNative:
				opts.Convention = Convention(value)
			default:
				bad("convention must be %q or %q, got %q", ConventionGo, ConventionNative, value)
			}

		case "table":
			if !token.IsIdentifier(value) || value == "_" {
				bad("table name %q is not an identifier", value)
				continue
			}

			opts.Table = value

		case "receiver":
			if !token.IsIdentifier(value) || value == "_" {
				bad("receiver name %q is not an identifier", value)
				continue
			}

			opts.Receiver = value

		default:
			bad("unknown option %q%s", key, match.Hint(key, optionNames))
		}
	}

	return opts, diags
}
