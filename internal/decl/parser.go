package decl

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"

	"go.uber.org/zap"

	"vtable-generator/internal/diagnostic"
	"vtable-generator/internal/match"
)

// ParseFile parses a Go source file and extracts every struct type marked
// with //vtable:generate.
func ParseFile(filename string) ([]*Declaration, error) {
	return ParseSource(filename, nil)
}

// ParseSource is like ParseFile but reads the source from src when it is
// not nil (string, []byte or io.Reader, as accepted by go/parser).
//
// If any declaration in the file is invalid, no declarations are returned
// and the error is a *diagnostic.Error listing every problem found.
func ParseSource(filename string, src any) ([]*Declaration, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	p := &fileParser{fset: fset, file: file, filename: filename}
	decls := p.extractDeclarations()

	if err := p.diags.Err(); err != nil {
		return nil, err
	}

	Logger().Debug("parsed declarations",
		zap.String("file", filename),
		zap.Int("count", len(decls)))

	return decls, nil
}

// fileParser carries per-file state while extracting declarations.
type fileParser struct {
	fset     *token.FileSet
	file     *ast.File
	filename string
	diags    diagnostic.Diagnostics
}

func (p *fileParser) extractDeclarations() []*Declaration {
	var decls []*Declaration

	imports := p.imports()

	for _, d := range p.file.Decls {
		genDecl, ok := d.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)

			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}

			lines, directives := splitComments(p.fset, doc)

			marker, found := findMarker(directives)
			if !found {
				p.strayDirectives(typeSpec.Name.Name, directives)
				continue
			}

			decl := &Declaration{
				Name:     typeSpec.Name.Name,
				Package:  p.file.Name.Name,
				Filename: p.filename,
				Pos:      p.fset.Position(typeSpec.Name.Pos()),
				Doc:      lines,
				Imports:  imports,
			}

			p.extractDeclaration(decl, typeSpec, marker, directives)
			decls = append(decls, decl)
		}
	}

	return decls
}

func findMarker(directives []rawDirective) (rawDirective, bool) {
	for _, d := range directives {
		if d.Name == markerName {
			return d, true
		}
	}

	return rawDirective{}, false
}

// strayDirectives reports //vtable: lines on a type without the marker,
// which would otherwise be ignored silently.
func (p *fileParser) strayDirectives(name string, directives []rawDirective) {
	for _, d := range directives {
		p.diags.AddError(diagnostic.Diagnostic{
			Code:      diagnostic.CodeUnknownDirective,
			Message:   fmt.Sprintf("type has //vtable: directives but no //vtable:%s marker%s", markerName, match.Hint(d.Name, []string{markerName})),
			Decl:      name,
			Directive: d.Text,
			Pos:       d.Pos,
		})
	}
}

func (p *fileParser) extractDeclaration(decl *Declaration, typeSpec *ast.TypeSpec, marker rawDirective, directives []rawDirective) {
	opts, optDiags := parseOptions(marker)
	for _, d := range optDiags {
		d.Decl = decl.Name
		p.diags.AddError(d)
	}

	decl.Options = opts

	for _, d := range directives {
		if d.Name == markerName {
			continue
		}

		p.diags.AddError(diagnostic.Diagnostic{
			Code:      diagnostic.CodeUnknownDirective,
			Message:   "only //vtable:generate may annotate a declaration",
			Decl:      decl.Name,
			Directive: d.Text,
			Pos:       d.Pos,
		})
	}

	if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
		p.unsupported(decl, "generic declarations cannot describe a foreign layout")
		return
	}

	if typeSpec.Assign.IsValid() {
		p.unsupported(decl, "alias declarations cannot be generated")
		return
	}

	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		p.unsupported(decl, "//vtable:generate requires a struct type")
		return
	}

	for _, field := range structType.Fields.List {
		decl.Members = append(decl.Members, p.extractMembers(decl, field)...)
	}

	p.checkReservedNames(decl)
}

func (p *fileParser) unsupported(decl *Declaration, msg string) {
	p.diags.AddError(diagnostic.Diagnostic{
		Code:    diagnostic.CodeUnsupported,
		Message: msg,
		Decl:    decl.Name,
		Pos:     decl.Pos,
	})
}

// extractMembers turns one struct field (which may declare several names)
// into members.
func (p *fileParser) extractMembers(decl *Declaration, field *ast.Field) []*Member {
	doc, rawDirectives := splitComments(p.fset, field.Doc)

	// Trailing comments stay on the field line; directives may sit there too.
	trailing, trailingDirectives := splitComments(p.fset, field.Comment)
	rawDirectives = append(rawDirectives, trailingDirectives...)

	var comment string
	if len(trailing) > 0 {
		comment = trailing[0]
	}

	fnType, isSlot := unparen(field.Type).(*ast.FuncType)

	names := field.Names
	embedded := len(names) == 0

	if embedded {
		names = []*ast.Ident{{Name: embeddedName(field.Type), NamePos: field.Type.Pos()}}
	}

	var tag string
	if field.Tag != nil {
		tag = field.Tag.Value
	}

	members := make([]*Member, 0, len(names))

	for _, name := range names {
		m := &Member{
			Name:     name.Name,
			Kind:     MemberData,
			Type:     p.exprString(field.Type),
			Tag:      tag,
			Doc:      doc,
			Comment:  comment,
			Embedded: embedded,
			Pos:      p.fset.Position(name.Pos()),
		}

		if isSlot && !embedded {
			m.Kind = MemberSlot
			p.extractSignature(m, fnType)
			p.checkShadowing(decl, m, fnType)
			p.extractDirectives(decl, m, rawDirectives)

			if m.Name == "_" {
				p.diags.AddError(diagnostic.Diagnostic{
					Code:    diagnostic.CodeUnsupported,
					Message: "slot members need a name; use //vtable:skip to leave a slot unused",
					Decl:    decl.Name,
					Member:  m.Name,
					Pos:     m.Pos,
				})
			}
		} else {
			for _, raw := range rawDirectives {
				p.diags.AddError(diagnostic.Diagnostic{
					Code:      diagnostic.CodeDataDirective,
					Message:   "directives are only valid on func-typed slot members",
					Decl:      decl.Name,
					Member:    m.Name,
					Directive: raw.Text,
					Pos:       raw.Pos,
				})
			}
		}

		members = append(members, m)
	}

	return members
}

func (p *fileParser) extractDirectives(decl *Declaration, m *Member, raws []rawDirective) {
	for _, raw := range raws {
		d, diag := parseDirective(raw)
		if diag != nil {
			diag.Decl = decl.Name
			diag.Member = m.Name
			p.diags.AddError(*diag)

			continue
		}

		m.Directives = append(m.Directives, d)
	}
}

// extractSignature fills params and results of a slot member. Unnamed and
// blank parameters are named argN after their position.
func (p *fileParser) extractSignature(m *Member, fn *ast.FuncType) {
	explicit := make(map[string]bool)

	if fn.Params != nil {
		for _, f := range fn.Params.List {
			for _, n := range f.Names {
				explicit[n.Name] = true
			}
		}
	}

	index := 0

	if fn.Params != nil {
		for _, f := range fn.Params.List {
			typ := p.exprString(f.Type)
			if _, ok := f.Type.(*ast.Ellipsis); ok {
				m.Variadic = true
			}

			if len(f.Names) == 0 {
				m.Params = append(m.Params, Param{Name: syntheticName(index, explicit), Type: typ})
				index++

				continue
			}

			for _, n := range f.Names {
				name := n.Name
				if name == "_" {
					name = syntheticName(index, explicit)
				}

				m.Params = append(m.Params, Param{Name: name, Type: typ})
				index++
			}
		}
	}

	if fn.Results != nil {
		for _, f := range fn.Results.List {
			typ := p.exprString(f.Type)

			count := max(len(f.Names), 1)
			for range count {
				m.Results = append(m.Results, typ)
			}
		}
	}
}

func syntheticName(index int, taken map[string]bool) string {
	name := "arg" + strconv.Itoa(index)
	for taken[name] {
		name += "_"
	}

	taken[name] = true

	return name
}

// checkReservedNames rejects members and parameters that would collide with
// identifiers introduced by the emitted code.
func (p *fileParser) checkReservedNames(decl *Declaration) {
	reserved := map[string]string{
		decl.Table(): "the table pointer field",
		decl.Entry(): "the slot address helper",
	}

	for _, m := range decl.Members {
		if what, ok := reserved[m.Name]; ok {
			p.diags.AddError(diagnostic.Diagnostic{
				Code:    diagnostic.CodeReservedName,
				Message: fmt.Sprintf("member name collides with %s; rename it or set table= on //vtable:generate", what),
				Decl:    decl.Name,
				Member:  m.Name,
				Pos:     m.Pos,
			})
		}

		if m.Kind != MemberSlot {
			continue
		}

		for _, param := range m.Params {
			if param.Name == decl.Receiver() {
				p.diags.AddError(diagnostic.Diagnostic{
					Code:    diagnostic.CodeReservedName,
					Message: fmt.Sprintf("parameter %q shadows the accessor receiver; set receiver= on //vtable:generate", param.Name),
					Decl:    decl.Name,
					Member:  m.Name,
					Pos:     m.Pos,
				})
			}
		}
	}
}

// checkShadowing rejects parameters named after an identifier the accessor
// body refers to. The body spells out the entry's func type, so a parameter
// called time breaks a time.Duration parameter type.
func (p *fileParser) checkShadowing(decl *Declaration, m *Member, fn *ast.FuncType) {
	used := map[string]string{
		decl.Name: "the record type",
	}

	if decl.Convention() == ConventionNative {
		used["purego"] = "the purego package"
		used["uintptr"] = "the predeclared uintptr type"
	}

	for _, list := range []*ast.FieldList{fn.Params, fn.Results} {
		if list == nil {
			continue
		}

		for _, f := range list.List {
			typeIdents(f.Type, used)
		}
	}

	for _, param := range m.Params {
		what, ok := used[param.Name]
		if !ok {
			continue
		}

		p.diags.AddError(diagnostic.Diagnostic{
			Code:    diagnostic.CodeReservedName,
			Message: fmt.Sprintf("parameter %q shadows %s used by the accessor; rename it", param.Name, what),
			Decl:    decl.Name,
			Member:  m.Name,
			Pos:     m.Pos,
		})
	}
}

// typeIdents records the identifiers a type expression resolves: package
// names of qualified types and bare type names. Selected names and struct
// field names are not scoped and are skipped.
func typeIdents(expr ast.Expr, into map[string]string) {
	ast.Inspect(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			if x, ok := n.X.(*ast.Ident); ok {
				if _, seen := into[x.Name]; !seen {
					into[x.Name] = fmt.Sprintf("the package %s", x.Name)
				}
			}

			return false
		case *ast.Field:
			typeIdents(n.Type, into)
			return false
		case *ast.Ident:
			if _, seen := into[n.Name]; !seen {
				into[n.Name] = fmt.Sprintf("the type %s", n.Name)
			}
		}

		return true
	})
}

func (p *fileParser) imports() []Import {
	imports := make([]Import, 0, len(p.file.Imports))

	for _, spec := range p.file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}

		imports = append(imports, imp)
	}

	return imports
}

// exprString prints a type expression exactly as gofmt would.
func (p *fileParser) exprString(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fset, expr); err != nil {
		return "?"
	}

	return buf.String()
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}

		expr = paren.X
	}
}

// embeddedName returns the implicit field name of an embedded type:
// T, *T, pkg.T and *pkg.T all yield T.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return "?"
	}
}
