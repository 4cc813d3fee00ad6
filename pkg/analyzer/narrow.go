package analyzer

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

// narrower computes which members of sum the subject may still hold at a
// program point, given the dispatch constructs enclosing that point.
type narrower struct {
	c    *checker
	info *types.Info
	sum  *SumType
	subj ast.Expr
	obj  types.Object
}

func (c *checker) newNarrower(sum *SumType, subj ast.Expr) *narrower {
	n := &narrower{c: c, info: c.pass.TypesInfo, sum: sum}
	n.subj, n.obj = c.resolveSubject(subj)

	return n
}

// resolveSubject follows type switch clause variables back to the value
// being switched on.
func (c *checker) resolveSubject(e ast.Expr) (ast.Expr, types.Object) {
	e = ast.Unparen(e)
	for range len(c.implicits) + 1 {
		id, ok := e.(*ast.Ident)
		if !ok {
			return e, nil
		}
		obj := c.pass.TypesInfo.ObjectOf(id)
		x, ok := c.implicits[obj]
		if !ok {
			return e, obj
		}
		e = ast.Unparen(x)
	}

	return e, nil
}

func (n *narrower) matches(e ast.Expr) bool {
	e, obj := n.c.resolveSubject(e)
	if n.obj != nil || obj != nil {
		return obj != nil && obj == n.obj
	}

	return types.ExprString(e) == types.ExprString(n.subj)
}

// discriminates reports whether e evaluates the subject's discriminant:
// x.M() for an interface sum type, x itself for an enum.
func (n *narrower) discriminates(e ast.Expr) bool {
	e = ast.Unparen(e)
	if n.sum.Enum {
		return n.matches(e)
	}
	if n.sum.Discriminant == "" {
		return false
	}
	call, ok := e.(*ast.CallExpr)
	if !ok || len(call.Args) != 0 {
		return false
	}
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != n.sum.Discriminant {
		return false
	}

	return n.matches(sel.X)
}

func (n *narrower) set(idx ...int) memberSet {
	s := make(memberSet, len(n.sum.Members))
	for _, i := range idx {
		if i >= 0 {
			s[i] = true
		}
	}

	return s
}

// constSet returns the members identified by the constant expressions es.
// Constants outside the member set select nothing.
func (n *narrower) constSet(es []ast.Expr) (memberSet, bool) {
	s := n.set()
	for _, e := range es {
		tv, ok := n.info.Types[e]
		if !ok || tv.Value == nil {
			return nil, false
		}
		if i := n.sum.byTag(tv.Value.ExactString()); i >= 0 {
			s[i] = true
		}
	}

	return s, true
}

// typeSet returns the members selected by the case types es. An interface
// case selects every member implementing it; with keep unset, only the
// members proven to implement it.
func (n *narrower) typeSet(es []ast.Expr, keep bool) memberSet {
	s := n.set()
	for _, e := range es {
		t := n.info.TypeOf(e)
		if t == nil {
			continue
		}
		if i := n.sum.byType(t.String()); i >= 0 {
			s[i] = true

			continue
		}
		if types.IsInterface(t) {
			s = s.union(n.c.implementers(n.sum, t, keep))
		}
	}

	return s
}

// remainder walks path from the innermost node outwards and returns the
// members not ruled out on the way to the last node of path.
func (n *narrower) remainder(path []ast.Node) memberSet {
	rem := fullSet(len(n.sum.Members))
	for i := len(path) - 2; i >= 0; i-- {
		child := path[i+1]
		switch node := path[i].(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return rem
		case *ast.BlockStmt:
			n.afterStmts(node.List, child, rem)
		case *ast.CaseClause:
			n.afterStmts(node.Body, child, rem)
		case *ast.CommClause:
			n.afterStmts(node.Body, child, rem)
		case *ast.IfStmt:
			switch child {
			case node.Body:
				if s, ok := n.condSet(node.Init, node.Cond, true); ok {
					rem.keep(s)
				}
			case node.Else:
				if s, ok := n.condSet(node.Init, node.Cond, false); ok {
					rem.remove(s)
				}
			}
		case *ast.SwitchStmt:
			if clause := clauseOf(path, i, node.Body); clause != nil {
				if s, ok := n.switchSet(node, clause); ok {
					rem.keep(s)
				}
			}
		case *ast.TypeSwitchStmt:
			if clause := clauseOf(path, i, node.Body); clause != nil {
				if s, ok := n.typeSwitchSet(node, clause); ok {
					rem.keep(s)
				}
			}
		}
	}

	return rem
}

// clauseOf returns the case clause of the switch at path[i] that contains
// the last node of path.
func clauseOf(path []ast.Node, i int, body *ast.BlockStmt) *ast.CaseClause {
	if i+2 >= len(path) || path[i+1] != body {
		return nil
	}
	clause, _ := path[i+2].(*ast.CaseClause)

	return clause
}

// afterStmts removes the members handled by terminating if statements that
// precede child in list.
func (n *narrower) afterStmts(list []ast.Stmt, child ast.Node, rem memberSet) {
	for _, stmt := range list {
		if stmt == child {
			return
		}
		ifs, ok := stmt.(*ast.IfStmt)
		if !ok || ifs.Else != nil || !terminates(n.info, ifs.Body) {
			continue
		}
		if s, ok := n.condSet(ifs.Init, ifs.Cond, false); ok {
			rem.remove(s)
		}
	}
}

// condSet returns the members for which cond holds. With body set, the
// result may over-approximate (it is used to keep members); otherwise it is
// exact (it is used to remove members).
func (n *narrower) condSet(init ast.Stmt, cond ast.Expr, body bool) (memberSet, bool) {
	switch e := ast.Unparen(cond).(type) {
	case *ast.BinaryExpr:
		switch e.Op {
		case token.LOR:
			l, lok := n.condSet(init, e.X, body)
			r, rok := n.condSet(init, e.Y, body)
			if !lok || !rok {
				return nil, false
			}

			return l.union(r), true
		case token.LAND:
			if !body {
				return nil, false
			}
			l, lok := n.condSet(init, e.X, body)
			r, rok := n.condSet(init, e.Y, body)
			switch {
			case lok && rok:
				return l.intersect(r), true
			case lok:
				return l, true
			case rok:
				return r, true
			}

			return nil, false
		case token.EQL:
			return n.equalitySet(e.X, e.Y)
		}
	case *ast.Ident:
		return n.commaOkSet(init, e, body)
	}

	return nil, false
}

func (n *narrower) equalitySet(x, y ast.Expr) (memberSet, bool) {
	for _, p := range [][2]ast.Expr{{x, y}, {y, x}} {
		if isNilIdent(n.info, p[1]) && !n.sum.Enum && n.matches(p[0]) {
			return n.set(n.sum.byType(types.Typ[types.UntypedNil].String())), true
		}
		if n.discriminates(p[0]) {
			if s, ok := n.constSet([]ast.Expr{p[1]}); ok {
				return s, true
			}
		}
	}

	return nil, false
}

// commaOkSet handles `if v, ok := x.(T); ok`.
func (n *narrower) commaOkSet(init ast.Stmt, id *ast.Ident, body bool) (memberSet, bool) {
	assign, ok := init.(*ast.AssignStmt)
	if !ok || len(assign.Lhs) != 2 || len(assign.Rhs) != 1 {
		return nil, false
	}
	okID, ok := assign.Lhs[1].(*ast.Ident)
	if !ok || n.info.ObjectOf(okID) == nil || n.info.ObjectOf(okID) != n.info.ObjectOf(id) {
		return nil, false
	}
	ta, ok := ast.Unparen(assign.Rhs[0]).(*ast.TypeAssertExpr)
	if !ok || ta.Type == nil || n.sum.Enum || !n.matches(ta.X) {
		return nil, false
	}

	return n.typeSet([]ast.Expr{ta.Type}, body), true
}

// switchSet returns the members reaching clause of an expression switch.
func (n *narrower) switchSet(sw *ast.SwitchStmt, clause *ast.CaseClause) (memberSet, bool) {
	var own func(*ast.CaseClause, bool) (memberSet, bool)
	switch {
	case sw.Tag == nil:
		own = func(cc *ast.CaseClause, keep bool) (memberSet, bool) {
			var s memberSet
			for _, e := range cc.List {
				es, ok := n.condSet(nil, e, keep)
				if !ok {
					return nil, false
				}
				if s == nil {
					s = es
				} else {
					s = s.union(es)
				}
			}

			return s, s != nil
		}
	case n.discriminates(sw.Tag):
		own = func(cc *ast.CaseClause, _ bool) (memberSet, bool) {
			return n.constSet(cc.List)
		}
	default:
		return nil, false
	}

	clauses := caseClauses(sw.Body)

	return n.reaching(clauses, indexOf(clauses, clause), own), true
}

// typeSwitchSet returns the members reaching clause of a type switch.
func (n *narrower) typeSwitchSet(sw *ast.TypeSwitchStmt, clause *ast.CaseClause) (memberSet, bool) {
	x := typeSwitchSubject(sw)
	if x == nil || n.sum.Enum || !n.matches(x) {
		return nil, false
	}
	own := func(cc *ast.CaseClause, keep bool) (memberSet, bool) {
		return n.typeSet(cc.List, keep), true
	}
	clauses := caseClauses(sw.Body)

	return n.reaching(clauses, indexOf(clauses, clause), own), true
}

// reaching returns the members that may enter clauses[t], either by
// matching it or by falling through from the clause before it. own is
// called with keep set for the clause entered and unset for the clauses
// a default clause excludes.
func (n *narrower) reaching(clauses []*ast.CaseClause, t int, own func(*ast.CaseClause, bool) (memberSet, bool)) memberSet {
	if t < 0 {
		return fullSet(len(n.sum.Members))
	}
	var s memberSet
	if clauses[t].List == nil {
		listed := n.set()
		for _, cc := range clauses {
			if cc.List == nil {
				continue
			}
			if cs, ok := own(cc, false); ok {
				listed = listed.union(cs)
			}
		}
		s = listed.complement()
	} else {
		cs, ok := own(clauses[t], true)
		if !ok {
			return fullSet(len(n.sum.Members))
		}
		s = cs
	}
	if t > 0 && fallsThrough(clauses[t-1]) {
		s = s.union(n.reaching(clauses, t-1, own))
	}

	return s
}

func (n *narrower) describe() string {
	return types.ExprString(n.subj)
}

func (c *checker) checkNever(nc neverCall) *augtError {
	if len(nc.call.Args) != 1 {
		return nil
	}
	arg := nc.call.Args[0]
	subj, _ := c.resolveSubject(arg)
	t := c.pass.TypesInfo.TypeOf(subj)
	sum := c.lookup(t)
	if sum == nil {
		return &augtError{
			err: fmt.Errorf("never.Check argument %s of type %s is not a %s sum type",
				types.ExprString(arg), types.TypeString(t, c.qualifier()), Directive),
			pos: arg.Pos(),
		}
	}
	n := c.newNarrower(sum, subj)
	rem := n.remainder(nc.path)
	if rem.empty() {
		return nil
	}

	return &augtError{
		err: fmt.Errorf("non-exhaustive dispatch on %s: %s is not assignable to never; unhandled: %s",
			n.describe(), sum.Display, rem.describe(sum)),
		pos: nc.call.Pos(),
	}
}

func typeSwitchSubject(sw *ast.TypeSwitchStmt) ast.Expr {
	var e ast.Expr
	switch a := sw.Assign.(type) {
	case *ast.ExprStmt:
		e = a.X
	case *ast.AssignStmt:
		if len(a.Rhs) != 1 {
			return nil
		}
		e = a.Rhs[0]
	default:
		return nil
	}
	ta, ok := ast.Unparen(e).(*ast.TypeAssertExpr)
	if !ok {
		return nil
	}

	return ast.Unparen(ta.X)
}

func caseClauses(body *ast.BlockStmt) []*ast.CaseClause {
	var clauses []*ast.CaseClause
	for _, stmt := range body.List {
		if cc, ok := stmt.(*ast.CaseClause); ok {
			clauses = append(clauses, cc)
		}
	}

	return clauses
}

func indexOf(clauses []*ast.CaseClause, clause *ast.CaseClause) int {
	for i, cc := range clauses {
		if cc == clause {
			return i
		}
	}

	return -1
}

func hasDefault(clauses []*ast.CaseClause) bool {
	for _, cc := range clauses {
		if cc.List == nil {
			return true
		}
	}

	return false
}

func fallsThrough(cc *ast.CaseClause) bool {
	if len(cc.Body) == 0 {
		return false
	}
	br, ok := cc.Body[len(cc.Body)-1].(*ast.BranchStmt)

	return ok && br.Tok == token.FALLTHROUGH
}

// terminates reports whether control never leaves the end of block.
func terminates(info *types.Info, block *ast.BlockStmt) bool {
	if len(block.List) == 0 {
		return false
	}
	switch s := block.List[len(block.List)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BranchStmt:
		// a goto may land at or before the point being narrowed
		return s.Tok == token.BREAK || s.Tok == token.CONTINUE
	case *ast.BlockStmt:
		return terminates(info, s)
	case *ast.ExprStmt:
		call, ok := s.X.(*ast.CallExpr)
		if !ok {
			return false
		}
		if isNeverCall(info, call) {
			return true
		}
		id, ok := ast.Unparen(call.Fun).(*ast.Ident)
		if !ok {
			return false
		}
		b, ok := info.Uses[id].(*types.Builtin)

		return ok && b.Name() == "panic"
	}

	return false
}

func isNilIdent(info *types.Info, e ast.Expr) bool {
	id, ok := ast.Unparen(e).(*ast.Ident)
	if !ok {
		return false
	}
	_, ok = info.Uses[id].(*types.Nil)

	return ok
}
