package analyze

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"vtable-generator/internal/decl"
	"vtable-generator/internal/diagnostic"
	"vtable-generator/internal/plan"
)

// BuildTag selects declaration files over generated ones.
const BuildTag = "vtablegen"

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedImports

// Analyzer loads declaration packages and computes record layouts.
type Analyzer struct {
	arch  string
	cache map[string]*packages.Package // by directory
}

// NewAnalyzer creates an Analyzer that computes layouts for arch. An empty
// arch means the host GOARCH.
func NewAnalyzer(arch string) *Analyzer {
	if arch == "" {
		arch = runtime.GOARCH
	}

	return &Analyzer{
		arch:  arch,
		cache: make(map[string]*packages.Package),
	}
}

// LoadPackage loads and type-checks the package in dir with the vtablegen
// build tag set.
func (a *Analyzer) LoadPackage(dir string) (*packages.Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	if pkg, ok := a.cache[abs]; ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Mode:       LoadMode,
		Dir:        abs,
		BuildFlags: []string{"-tags=" + BuildTag},
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}

	pkg := pkgs[0]

	// Check for package errors
	var errs []error
	for _, e := range pkg.Errors {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	Logger().Debug("loaded package",
		zap.String("path", pkg.PkgPath),
		zap.String("dir", abs),
		zap.Int("files", len(pkg.GoFiles)))

	a.cache[abs] = pkg

	return pkg, nil
}

// Analyze type-checks a resolved declaration and computes the layout of
// its record. Data members whose values hold Go runtime state are reported
// as warnings in the returned diagnostics. Type errors and mismatches between
// the parsed declaration and the type-checked one are returned as errors.
func (a *Analyzer) Analyze(r *plan.ResolvedDeclaration) (*Layout, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	d := r.Decl

	pkg, err := a.LoadPackage(filepath.Dir(d.Filename))
	if err != nil {
		return nil, diags, err
	}

	st, err := lookupStruct(pkg, d.Name)
	if err != nil {
		return nil, diags, err
	}

	fields := make(map[string]*types.Var, st.NumFields())
	for i := range st.NumFields() {
		fields[st.Field(i).Name()] = st.Field(i)
	}

	for _, s := range r.Slots {
		v, ok := fields[s.Member.Name]
		if !ok {
			return nil, diags, fmt.Errorf("%s.%s: not found in type-checked declaration", d.Name, s.Member.Name)
		}

		sig, ok := v.Type().Underlying().(*types.Signature)
		if !ok || sig.Params().Len() != len(s.Member.Params) || sig.Results().Len() != len(s.Member.Results) {
			return nil, diags, fmt.Errorf("%s.%s: type-checked as %s, parsed as %s",
				d.Name, s.Member.Name, v.Type(), s.Member.Signature())
		}
	}

	// The emitted record: table pointer, then data members. structs.HostLayout
	// is zero-sized and first, so it does not move anything.
	vars := []*types.Var{
		types.NewField(token.NoPos, pkg.Types, d.Table(), types.Typ[types.UnsafePointer], false),
	}

	for _, m := range r.Data {
		v, ok := fields[m.Name]
		if !ok {
			return nil, diags, fmt.Errorf("%s.%s: not found in type-checked declaration", d.Name, m.Name)
		}

		vars = append(vars, v)

		a.checkForeignSafe(&diags, d, m, NewTypePath(d.Name).Field(m.Name), v.Type())
	}

	sizes := a.sizes(pkg)
	record := types.NewStruct(vars, nil)
	offsets := sizes.Offsetsof(vars)
	qualifier := types.RelativeTo(pkg.Types)

	layout := &Layout{
		Decl:    d.Name,
		PkgPath: pkg.PkgPath,
		Arch:    a.arch,
		Size:    sizes.Sizeof(record),
		Align:   sizes.Alignof(record),
	}

	for i, v := range vars {
		layout.Fields = append(layout.Fields, FieldLayout{
			Name:   v.Name(),
			Type:   types.TypeString(v.Type(), qualifier),
			Kind:   kindOf(v.Type()),
			Offset: offsets[i],
			Size:   sizes.Sizeof(v.Type()),
			Align:  sizes.Alignof(v.Type()),
			Table:  i == 0,
		})
	}

	Logger().Debug("computed layout",
		zap.String("decl", d.Name),
		zap.String("arch", a.arch),
		zap.Int64("size", layout.Size),
		zap.Int("warnings", len(diags.Warnings)))

	return layout, diags, nil
}

func (a *Analyzer) sizes(pkg *packages.Package) types.Sizes {
	if a.arch == runtime.GOARCH && pkg.TypesSizes != nil {
		return pkg.TypesSizes
	}

	if s := types.SizesFor("gc", a.arch); s != nil {
		return s
	}

	return types.SizesFor("gc", "amd64")
}

// checkForeignSafe warns about data members whose values the foreign side
// cannot produce: strings, slices, maps, channels, funcs and interfaces all
// carry Go runtime pointers. Struct and array members are checked
// element-wise.
func (a *Analyzer) checkForeignSafe(diags *diagnostic.Diagnostics, d *decl.Declaration, m *decl.Member, path *TypePath, t types.Type) {
	switch u := t.Underlying().(type) {
	case *types.Struct:
		for i := range u.NumFields() {
			f := u.Field(i)
			a.checkForeignSafe(diags, d, m, path.Field(f.Name()), f.Type())
		}

		return
	case *types.Array:
		a.checkForeignSafe(diags, d, m, path.Elem(), u.Elem())
		return
	}

	kind := kindOf(t)
	if kind.ForeignSafe() {
		return
	}

	diags.AddWarning(diagnostic.Diagnostic{
		Code:    diagnostic.CodeLayout,
		Message: fmt.Sprintf("%s is a %s (%s); foreign code cannot construct it", path, kind, t),
		Decl:    d.Name,
		Member:  m.Name,
		Pos:     m.Pos,
	})
}

func lookupStruct(pkg *packages.Package, name string) (*types.Struct, error) {
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in %s (is the file tagged %q?)", name, pkg.PkgPath, BuildTag)
	}

	typeName, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s in %s is not a type", name, pkg.PkgPath)
	}

	st, ok := typeName.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", name, kindOf(typeName.Type()))
	}

	return st, nil
}
