package analyzer

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

// isPermitted reports whether the value of expr may be stored in a
// variable of the sum type.
func (c *checker) isPermitted(sumtype *SumType, expr ast.Expr) (bool, string) {
	tinfo := c.pass.TypesInfo
	if sumtype.Enum {
		tv, ok := tinfo.Types[expr]
		if !ok || tv.Value == nil {
			return true, ""
		}

		return sumtype.byTag(tv.Value.ExactString()) >= 0, tv.Value.String()
	}
	if isNilIdent(tinfo, expr) {
		return sumtype.byType(types.Typ[types.UntypedNil].String()) >= 0, "nil"
	}
	t := tinfo.TypeOf(expr)
	if t == nil {
		return true, ""
	}
	if t.String() == sumtype.Name || sumtype.byType(t.String()) >= 0 {
		return true, ""
	}

	return false, types.TypeString(t, c.qualifier())
}

func (c *checker) checkAssign() []augtError {
	tinfo := c.pass.TypesInfo
	var errs []augtError
	for _, a := range c.col.assignStmts {
		if a.Tok != token.ASSIGN || len(a.Lhs) != len(a.Rhs) {
			continue
		}
		for i, lhs := range a.Lhs {
			sumt := c.lookup(tinfo.TypeOf(lhs))
			if sumt == nil {
				continue
			}
			if ok, what := c.isPermitted(sumt, a.Rhs[i]); !ok {
				errs = append(errs, augtError{
					err: fmt.Errorf("invalid assigning: %s is not a member of %s", what, sumt.Display),
					pos: a.TokPos,
				})
			}
		}
	}
	for _, a := range c.col.declAssigns {
		if len(a.Names) != len(a.Values) {
			continue
		}
		for i, n := range a.Names {
			t := tinfo.Defs[n]
			if t == nil {
				continue
			}
			sumt := c.lookup(t.Type())
			if sumt == nil {
				continue
			}
			if ok, what := c.isPermitted(sumt, a.Values[i]); !ok {
				errs = append(errs, augtError{
					err: fmt.Errorf("invalid declaration: %s is not a member of %s", what, sumt.Display),
					pos: a.Pos(),
				})
			}
		}
	}
	for _, call := range c.col.calls {
		errs = append(errs, c.checkCallArgs(call)...)
	}
	for _, lit := range c.col.compositeLits {
		errs = append(errs, c.checkElements(lit)...)
	}
	for _, send := range c.col.sendStmts {
		ch, ok := typeUnder(tinfo.TypeOf(send.Chan)).(*types.Chan)
		if !ok {
			continue
		}
		if err := c.checkValue("send", ch.Elem(), send.Value); err != nil {
			errs = append(errs, *err)
		}
	}
	for _, r := range c.col.returnStmts {
		results := r.sig.Results()
		if results.Len() != len(r.ret.Results) {
			continue
		}
		for i, res := range r.ret.Results {
			sumt := c.lookup(results.At(i).Type())
			if sumt == nil {
				continue
			}
			if ok, what := c.isPermitted(sumt, res); !ok {
				errs = append(errs, augtError{
					err: fmt.Errorf("invalid return: %s is not a member of %s", what, sumt.Display),
					pos: res.Pos(),
				})
			}
		}
	}

	return errs
}

// checkValue reports a value stored into a location of type t that is not
// a member of the sum type of t.
func (c *checker) checkValue(what string, t types.Type, e ast.Expr) *augtError {
	sumt := c.lookup(t)
	if sumt == nil {
		return nil
	}
	if ok, v := c.isPermitted(sumt, e); !ok {
		return &augtError{
			err: fmt.Errorf("invalid %s: %s is not a member of %s", what, v, sumt.Display),
			pos: e.Pos(),
		}
	}

	return nil
}

// checkCallArgs checks the arguments of call against the parameters of
// the called function, the variadic ones included.
func (c *checker) checkCallArgs(call *ast.CallExpr) []augtError {
	tinfo := c.pass.TypesInfo
	if tv, ok := tinfo.Types[call.Fun]; !ok || tv.IsType() {
		return nil
	}
	sig, ok := typeUnder(tinfo.TypeOf(call.Fun)).(*types.Signature)
	if !ok {
		return nil
	}
	if len(call.Args) == 1 {
		if _, tuple := tinfo.TypeOf(call.Args[0]).(*types.Tuple); tuple {
			return nil
		}
	}
	params := sig.Params()
	var errs []augtError
	for i, arg := range call.Args {
		var t types.Type
		switch {
		case sig.Variadic() && i >= params.Len()-1:
			if call.Ellipsis.IsValid() {
				continue
			}
			slice, ok := params.At(params.Len() - 1).Type().(*types.Slice)
			if !ok {
				continue
			}
			t = slice.Elem()
		case i < params.Len():
			t = params.At(i).Type()
		default:
			continue
		}
		if err := c.checkValue("argument", t, arg); err != nil {
			errs = append(errs, *err)
		}
	}

	return errs
}

// checkElements checks the elements of a slice, array or map literal and
// the field values of a struct literal.
func (c *checker) checkElements(lit *ast.CompositeLit) []augtError {
	tinfo := c.pass.TypesInfo
	var errs []augtError
	add := func(t types.Type, e ast.Expr) {
		if err := c.checkValue("element", t, e); err != nil {
			errs = append(errs, *err)
		}
	}
	switch u := typeUnder(tinfo.TypeOf(lit)).(type) {
	case *types.Slice:
		for _, elt := range lit.Elts {
			add(u.Elem(), elementValue(elt))
		}
	case *types.Array:
		for _, elt := range lit.Elts {
			add(u.Elem(), elementValue(elt))
		}
	case *types.Map:
		for _, elt := range lit.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				add(u.Key(), kv.Key)
				add(u.Elem(), kv.Value)
			}
		}
	case *types.Struct:
		for i, elt := range lit.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				if i < u.NumFields() {
					add(u.Field(i).Type(), elt)
				}

				continue
			}
			id, ok := kv.Key.(*ast.Ident)
			if !ok {
				continue
			}
			if f, ok := tinfo.ObjectOf(id).(*types.Var); ok {
				add(f.Type(), kv.Value)
			}
		}
	}

	return errs
}

func elementValue(e ast.Expr) ast.Expr {
	if kv, ok := e.(*ast.KeyValueExpr); ok {
		return kv.Value
	}

	return e
}

// typeUnder is t.Underlying(), nil for an untyped expression.
func typeUnder(t types.Type) types.Type {
	if t == nil {
		return nil
	}

	return t.Underlying()
}

// checkTypeSwitch reports type switches on a sum type that list
// non-members, or that miss a member and have no default clause.
func (c *checker) checkTypeSwitch() []augtError {
	tinfo := c.pass.TypesInfo
	var errs []augtError
	for _, stmt := range c.col.typeSwitchStmts {
		x := typeSwitchSubject(stmt)
		if x == nil {
			continue
		}
		sumt := c.lookup(tinfo.TypeOf(x))
		if sumt == nil || sumt.Enum {
			continue
		}
		covered := make(memberSet, len(sumt.Members))
		clauses := caseClauses(stmt.Body)
		for _, clause := range clauses {
			for _, expr := range clause.List {
				t := tinfo.TypeOf(expr)
				if t == nil {
					continue
				}
				if i := sumt.byType(t.String()); i >= 0 {
					covered[i] = true

					continue
				}
				if types.IsInterface(t) {
					covered = covered.union(c.implementers(sumt, t, false))

					continue
				}
				errs = append(errs, augtError{
					err: fmt.Errorf("invalid type switch: %s is not a member of %s",
						types.TypeString(t, c.qualifier()), sumt.Display),
					pos: expr.Pos(),
				})
			}
		}
		if !reportSwitch || hasDefault(clauses) {
			continue
		}
		if missing := covered.complement(); !missing.empty() {
			errs = append(errs, augtError{
				err: fmt.Errorf("non-exhaustive type switch on %s: missing %s",
					sumt.Display, missing.describe(sumt)),
				pos: stmt.Pos(),
			})
		}
	}

	return errs
}

// checkSwitchStmt reports expression switches on an enum or on a
// discriminant that list non-members, or that miss a member and have no
// default clause.
func (c *checker) checkSwitchStmt() []augtError {
	tinfo := c.pass.TypesInfo
	var errs []augtError
	for _, stmt := range c.col.switchStmts {
		if stmt.Tag == nil {
			continue
		}
		sumt, subject := c.switchSubject(stmt.Tag)
		if sumt == nil {
			continue
		}
		covered := make(memberSet, len(sumt.Members))
		clauses := caseClauses(stmt.Body)
		for _, clause := range clauses {
			for _, expr := range clause.List {
				tv, ok := tinfo.Types[expr]
				if !ok || tv.Value == nil {
					continue
				}
				if i := sumt.byTag(tv.Value.ExactString()); i >= 0 {
					covered[i] = true

					continue
				}
				errs = append(errs, augtError{
					err: fmt.Errorf("invalid switch: %s is not a member of %s",
						types.ExprString(expr), sumt.Display),
					pos: expr.Pos(),
				})
			}
		}
		if !reportSwitch || hasDefault(clauses) {
			continue
		}
		if missing := covered.complement(); !missing.empty() {
			errs = append(errs, augtError{
				err: fmt.Errorf("non-exhaustive switch on %s: missing %s",
					subject, missing.describe(sumt)),
				pos: stmt.Pos(),
			})
		}
	}

	return errs
}

// switchSubject returns the sum type whose members are selected by
// switching on tag: the interface sum type when tag calls its
// discriminant, otherwise the enum type of tag.
func (c *checker) switchSubject(tag ast.Expr) (*SumType, string) {
	tinfo := c.pass.TypesInfo
	tag = ast.Unparen(tag)
	if call, ok := tag.(*ast.CallExpr); ok && len(call.Args) == 0 {
		if sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr); ok {
			sumt := c.lookup(tinfo.TypeOf(sel.X))
			if sumt != nil && !sumt.Enum && sumt.Discriminant == sel.Sel.Name {
				return sumt, types.ExprString(tag)
			}
		}
	}
	sumt := c.lookup(tinfo.TypeOf(tag))
	if sumt == nil || !sumt.Enum {
		return nil, ""
	}

	return sumt, types.ExprString(tag)
}

func (c *checker) checkNeverCalls() []augtError {
	var errs []augtError
	for _, nc := range c.col.neverCalls {
		if err := c.checkNever(nc); err != nil {
			errs = append(errs, *err)
		}
	}

	return errs
}

func (c *checker) check() []augtError {
	var errs []augtError

	if reportAssign {
		asserr := c.checkAssign()
		errs = append(errs, asserr...)
	}

	tserr := c.checkTypeSwitch()
	errs = append(errs, tserr...)

	swerr := c.checkSwitchStmt()
	errs = append(errs, swerr...)

	nverr := c.checkNeverCalls()
	errs = append(errs, nverr...)

	return errs
}
