package analyzer

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

type checker struct {
	pass     *analysis.Pass
	col      collected
	local    map[string]*SumType
	imported map[string]*SumType
	// implicits maps the per-clause objects of `switch v := x.(type)` to x.
	implicits map[types.Object]ast.Expr
	// memberTypes caches member types by their string form.
	memberTypes map[string]types.Type
}

func newChecker(pass *analysis.Pass, col collected) *checker {
	c := &checker{
		pass:        pass,
		col:         col,
		local:       map[string]*SumType{},
		imported:    map[string]*SumType{},
		implicits:   map[types.Object]ast.Expr{},
		memberTypes: map[string]types.Type{},
	}
	for _, stmt := range col.typeSwitchStmts {
		x := typeSwitchSubject(stmt)
		if x == nil {
			continue
		}
		for _, clause := range caseClauses(stmt.Body) {
			if obj := pass.TypesInfo.Implicits[clause]; obj != nil {
				c.implicits[obj] = x
			}
		}
	}

	return c
}

func (c *checker) qualifier() types.Qualifier {
	return types.RelativeTo(c.pass.Pkg)
}

// lookup returns the sum type declared for t, here or in a dependency.
func (c *checker) lookup(t types.Type) *SumType {
	if t == nil {
		return nil
	}
	t = types.Unalias(t)
	if s, ok := c.local[t.String()]; ok {
		return s
	}
	if s, ok := c.imported[t.String()]; ok {
		return s
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}
	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg() == c.pass.Pkg {
		return nil
	}
	var fact SumType
	if !c.pass.ImportObjectFact(obj, &fact) {
		c.imported[t.String()] = nil

		return nil
	}
	c.imported[t.String()] = &fact

	return &fact
}

// implementers returns the members of sum whose type implements the
// interface t. Members whose type cannot be resolved from this package
// are included only when assume is set. A nil member never matches.
func (c *checker) implementers(sum *SumType, t types.Type, assume bool) memberSet {
	s := make(memberSet, len(sum.Members))
	iface, ok := t.Underlying().(*types.Interface)
	if !ok || sum.Enum {
		return s
	}
	for i, m := range sum.Members {
		if m.Type == types.Typ[types.UntypedNil].String() {
			continue
		}
		mt := c.memberType(m.Type)
		if mt == nil {
			s[i] = assume

			continue
		}
		s[i] = types.Implements(mt, iface)
	}

	return s
}

func (c *checker) memberType(s string) types.Type {
	if t, ok := c.memberTypes[s]; ok {
		return t
	}
	t := resolveType(c.pass.Pkg, s)
	c.memberTypes[s] = t

	return t
}

// resolveType finds the named type (or pointer to named type) spelled s by
// types.Type.String among pkg and its dependencies.
func resolveType(pkg *types.Package, s string) types.Type {
	if elem, ok := strings.CutPrefix(s, "*"); ok {
		if t := resolveType(pkg, elem); t != nil {
			return types.NewPointer(t)
		}

		return nil
	}
	i := strings.LastIndex(s, ".")
	if i < 0 {
		obj, _ := types.Universe.Lookup(s).(*types.TypeName)
		if obj == nil {
			return nil
		}

		return obj.Type()
	}
	dep := findPackage(pkg, s[:i], map[*types.Package]bool{})
	if dep == nil {
		return nil
	}
	obj, _ := dep.Scope().Lookup(s[i+1:]).(*types.TypeName)
	if obj == nil {
		return nil
	}

	return obj.Type()
}

func findPackage(pkg *types.Package, path string, seen map[*types.Package]bool) *types.Package {
	if seen[pkg] {
		return nil
	}
	seen[pkg] = true
	if pkg.Path() == path {
		return pkg
	}
	for _, imp := range pkg.Imports() {
		if p := findPackage(imp, path, seen); p != nil {
			return p
		}
	}

	return nil
}

func (c *checker) evalDecls() []augtError {
	var errs []augtError
	for _, decl := range c.col.adtDecls {
		sum, obj, err := c.evalDecl(decl)
		if err != nil {
			errs = append(errs, augtError{err: err, pos: decl.pos})

			continue
		}
		if _, dup := c.local[sum.Name]; dup {
			errs = append(errs, augtError{
				err: fmt.Errorf("duplicated %s declaration for %s", Directive, sum.Display),
				pos: decl.pos,
			})

			continue
		}
		c.local[sum.Name] = sum
		c.pass.ExportObjectFact(obj, sum)
	}

	return errs
}

func (c *checker) evalDecl(decl goAugADTDecl) (*SumType, *types.TypeName, error) {
	obj, ok := c.pass.Pkg.Scope().Lookup(decl.sumtype).(*types.TypeName)
	if !ok {
		return nil, nil, fmt.Errorf("%s type %s should be declared at package level", Directive, decl.sumtype)
	}
	sum := &SumType{
		Name:         obj.Type().String(),
		Display:      obj.Name(),
		Discriminant: decl.discriminant,
	}
	switch u := obj.Type().Underlying().(type) {
	case *types.Interface:
		members, err := c.evalUnionMembers(decl, obj, u)
		if err != nil {
			return nil, nil, err
		}
		sum.Members = members
	case *types.Basic:
		if decl.discriminant != "" {
			return nil, nil, fmt.Errorf("%s enum %s should not have a discriminant", Directive, obj.Name())
		}
		members, err := c.evalEnumMembers(decl, obj)
		if err != nil {
			return nil, nil, err
		}
		sum.Enum = true
		sum.Members = members
	default:
		return nil, nil, fmt.Errorf("%s type %s should be an interface or a basic type", Directive, obj.Name())
	}

	return sum, obj, nil
}

func (c *checker) evalUnionMembers(decl goAugADTDecl, obj *types.TypeName, iface *types.Interface) ([]Member, error) {
	members := make([]Member, len(decl.permitted))
	for i, prm := range decl.permitted {
		prmt, err := types.Eval(c.pass.Fset, c.pass.Pkg, decl.pos, prm)
		if err != nil {
			return nil, fmt.Errorf("invalid member %s of %s: %w", prm, obj.Name(), err)
		}
		isNil := prmt.IsNil()
		if !prmt.IsType() && !isNil {
			return nil, fmt.Errorf("member %s of %s is not a type", prm, obj.Name())
		}
		if !isNil && !types.Implements(prmt.Type, iface) {
			return nil, fmt.Errorf("member %s does not implement %s", prm, obj.Name())
		}
		members[i] = Member{Type: prmt.Type.String(), Label: prm}
		if !isNil {
			c.memberTypes[members[i].Type] = prmt.Type
		}
		if decl.discriminant == "" || isNil {
			continue
		}
		tag, label, err := c.discriminantOf(prmt.Type, decl.discriminant)
		if err != nil {
			return nil, fmt.Errorf("member %s of %s: %w", prm, obj.Name(), err)
		}
		members[i].Tag = tag
		members[i].TagLabel = label
	}
	if err := checkDistinct(members, obj.Name(), false); err != nil {
		return nil, err
	}

	return members, nil
}

// discriminantOf returns the constant result of the discriminant method of
// t. The method body must be a single return of a constant expression.
func (c *checker) discriminantOf(t types.Type, method string) (string, string, error) {
	sel, _, _ := types.LookupFieldOrMethod(t, true, c.pass.Pkg, method)
	fn, ok := sel.(*types.Func)
	if !ok {
		return "", "", fmt.Errorf("missing discriminant method %s", method)
	}
	fdecl, ok := c.col.methods[fn]
	if !ok || fdecl.Body == nil {
		return "", "", fmt.Errorf("discriminant method %s should be declared in package %s", method, c.pass.Pkg.Name())
	}
	if len(fdecl.Body.List) != 1 {
		return "", "", fmt.Errorf("discriminant method %s should only return a constant", method)
	}
	ret, ok := fdecl.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return "", "", fmt.Errorf("discriminant method %s should only return a constant", method)
	}
	tv, ok := c.pass.TypesInfo.Types[ret.Results[0]]
	if !ok || tv.Value == nil {
		return "", "", fmt.Errorf("discriminant method %s should only return a constant", method)
	}

	return tv.Value.ExactString(), types.ExprString(ret.Results[0]), nil
}

func (c *checker) evalEnumMembers(decl goAugADTDecl, obj *types.TypeName) ([]Member, error) {
	members := make([]Member, len(decl.permitted))
	for i, prm := range decl.permitted {
		prmt, err := types.Eval(c.pass.Fset, c.pass.Pkg, decl.pos, prm)
		if err != nil {
			return nil, fmt.Errorf("invalid member %s of %s: %w", prm, obj.Name(), err)
		}
		if prmt.Value == nil || !types.Identical(prmt.Type, obj.Type()) {
			return nil, fmt.Errorf("member %s is not a constant of type %s", prm, obj.Name())
		}
		members[i] = Member{
			Type:  obj.Type().String(),
			Label: prm,
			Tag:   prmt.Value.ExactString(),
		}
	}
	if err := checkDistinct(members, obj.Name(), true); err != nil {
		return nil, err
	}

	return members, nil
}

// checkDistinct verifies that every member is identified by exactly one
// type and, when tagged, by exactly one tag.
func checkDistinct(members []Member, name string, enum bool) error {
	seenTypes := map[string]string{}
	seenTags := map[string]string{}
	for _, m := range members {
		if m.Tag != "" {
			if prev, dup := seenTags[m.Tag]; dup {
				return fmt.Errorf("members %s and %s of %s share the value %s", prev, m.Label, name, m.Tag)
			}
			seenTags[m.Tag] = m.Label
		}
		if enum {
			continue
		}
		if prev, dup := seenTypes[m.Type]; dup {
			return fmt.Errorf("members %s and %s of %s are the same type", prev, m.Label, name)
		}
		seenTypes[m.Type] = m.Label
	}

	return nil
}
