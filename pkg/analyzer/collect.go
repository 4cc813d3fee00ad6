package analyzer

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

type source struct {
	cmtmap ast.CommentMap
	info   *types.Info
}

type returnStmt struct {
	ret *ast.ReturnStmt
	sig *types.Signature
}

// neverCall is a call to NeverFunc with its ancestors, outermost first.
type neverCall struct {
	call *ast.CallExpr
	path []ast.Node
}

type collected struct {
	adtDecls        []goAugADTDecl
	declAssigns     []*ast.ValueSpec
	assignStmts     []*ast.AssignStmt
	returnStmts     []returnStmt
	calls           []*ast.CallExpr
	compositeLits   []*ast.CompositeLit
	sendStmts       []*ast.SendStmt
	switchStmts     []*ast.SwitchStmt
	typeSwitchStmts []*ast.TypeSwitchStmt
	neverCalls      []neverCall
	methods         map[*types.Func]*ast.FuncDecl
	e               []augtError
}

type inspector struct {
	src   source
	col   collected
	stack []ast.Node
}

func (ispt *inspector) inspect(n ast.Node) bool {
	if n == nil {
		ispt.stack = ispt.stack[:len(ispt.stack)-1]

		return true
	}
	ispt.stack = append(ispt.stack, n)
	switch v := n.(type) {
	case *ast.AssignStmt:
		ispt.col.assignStmts = append(ispt.col.assignStmts, v)
	case *ast.GenDecl:
		switch v.Tok {
		case token.TYPE:
			d, err := analysisTypeDeclWithCmt(ispt.src.cmtmap, v)
			if err != nil {
				ispt.col.e = append(ispt.col.e, augtError{err: err, pos: v.Pos()})

				break
			}
			ispt.col.adtDecls = append(ispt.col.adtDecls, d...)
		case token.VAR:
			for _, spc := range v.Specs {
				vspc, ok := spc.(*ast.ValueSpec)
				if !ok || len(vspc.Values) == 0 {
					continue
				}
				ispt.col.declAssigns = append(ispt.col.declAssigns, vspc)
			}
		}
	case *ast.TypeSpec:
		d, err := analysisTypeSpecWithCmt(ispt.src.cmtmap, v)
		if err != nil {
			ispt.col.e = append(ispt.col.e, augtError{err: err, pos: v.Pos()})

			break
		}
		ispt.col.adtDecls = append(ispt.col.adtDecls, d...)
	case *ast.FuncDecl:
		if v.Recv == nil {
			break
		}
		if fn, ok := ispt.src.info.Defs[v.Name].(*types.Func); ok {
			ispt.col.methods[fn] = v
		}
	case *ast.ReturnStmt:
		if sig := ispt.enclosingSignature(); sig != nil {
			ispt.col.returnStmts = append(ispt.col.returnStmts, returnStmt{ret: v, sig: sig})
		}
	case *ast.SwitchStmt:
		ispt.col.switchStmts = append(ispt.col.switchStmts, v)
	case *ast.TypeSwitchStmt:
		ispt.col.typeSwitchStmts = append(ispt.col.typeSwitchStmts, v)
	case *ast.CallExpr:
		if isNeverCall(ispt.src.info, v) {
			ispt.col.neverCalls = append(ispt.col.neverCalls, neverCall{
				call: v,
				path: append([]ast.Node(nil), ispt.stack...),
			})

			break
		}
		ispt.col.calls = append(ispt.col.calls, v)
	case *ast.CompositeLit:
		ispt.col.compositeLits = append(ispt.col.compositeLits, v)
	case *ast.SendStmt:
		ispt.col.sendStmts = append(ispt.col.sendStmts, v)
	default:
		break
	}

	return true
}

func (ispt *inspector) enclosingSignature() *types.Signature {
	for i := len(ispt.stack) - 1; i >= 0; i-- {
		switch fn := ispt.stack[i].(type) {
		case *ast.FuncLit:
			sig, _ := ispt.src.info.TypeOf(fn).(*types.Signature)

			return sig
		case *ast.FuncDecl:
			obj, ok := ispt.src.info.Defs[fn.Name].(*types.Func)
			if !ok {
				return nil
			}
			sig, _ := obj.Type().(*types.Signature)

			return sig
		}
	}

	return nil
}

func isNeverCall(info *types.Info, call *ast.CallExpr) bool {
	var id *ast.Ident
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		id = fun
	case *ast.SelectorExpr:
		id = fun.Sel
	default:
		return false
	}
	fn, ok := info.Uses[id].(*types.Func)

	return ok && fn.FullName() == NeverFunc
}

func collectInfo(pass *analysis.Pass) collected {
	col := collected{methods: map[*types.Func]*ast.FuncDecl{}}
	for _, astf := range pass.Files {
		cmtmap := ast.NewCommentMap(pass.Fset, astf, astf.Comments)
		ispt := inspector{
			src: source{cmtmap: cmtmap, info: pass.TypesInfo},
			col: collected{methods: col.methods},
		}
		ast.Inspect(astf, ispt.inspect)
		col.adtDecls = append(col.adtDecls, ispt.col.adtDecls...)
		col.declAssigns = append(col.declAssigns, ispt.col.declAssigns...)
		col.assignStmts = append(col.assignStmts, ispt.col.assignStmts...)
		col.returnStmts = append(col.returnStmts, ispt.col.returnStmts...)
		col.calls = append(col.calls, ispt.col.calls...)
		col.compositeLits = append(col.compositeLits, ispt.col.compositeLits...)
		col.sendStmts = append(col.sendStmts, ispt.col.sendStmts...)
		col.switchStmts = append(col.switchStmts, ispt.col.switchStmts...)
		col.typeSwitchStmts = append(col.typeSwitchStmts, ispt.col.typeSwitchStmts...)
		col.neverCalls = append(col.neverCalls, ispt.col.neverCalls...)
		col.e = append(col.e, ispt.col.e...)
	}

	return col
}
