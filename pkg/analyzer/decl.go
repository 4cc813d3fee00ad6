package analyzer

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

type goAugADTDecl struct {
	sumtype      string
	permitted    []string
	discriminant string
	pos          token.Pos
}

// adtDeclCmt is the content of the directive lines of one comment group.
type adtDeclCmt struct {
	permitted    []string
	discriminant string
}

func parseAdtDeclCmt(cmtgrps []*ast.CommentGroup) (adtDeclCmt, error) {
	var d adtDeclCmt
	adtDeclLine := ""
	for _, cmtgrp := range cmtgrps {
		for _, cmt := range cmtgrp.List {
			after, ok := strings.CutPrefix(cmt.Text, DirectiveCommentPrefix)
			if !ok {
				continue
			}
			if disc, ok := strings.CutPrefix(after, DiscriminantKeyword); ok {
				d.discriminant = strings.TrimSpace(disc)
				if d.discriminant == "" {
					return adtDeclCmt{}, errors.New("invalid format: missing discriminant method name")
				}

				continue
			}
			if adtDeclLine != "" {
				return adtDeclCmt{}, errors.New("invalid format: duplicated member list")
			}
			adtDeclLine = after
		}
	}
	if adtDeclLine == "" {
		if d.discriminant != "" {
			return adtDeclCmt{}, errors.New("invalid format: discriminant without member list")
		}

		return adtDeclCmt{}, nil
	}
	items := strings.Split(adtDeclLine, "|")
	if len(items) <= 1 {
		return adtDeclCmt{}, errors.New("invalid format: a sum type needs at least two members")
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
		if items[i] == "" {
			return adtDeclCmt{}, errors.New("invalid format: empty member")
		}
	}
	d.permitted = items

	return d, nil
}

func analysisTypeSpecWithCmt(cmtmap ast.CommentMap, tspc *ast.TypeSpec) ([]goAugADTDecl, error) {
	cmt, ok := cmtmap[tspc]
	if !ok {
		return nil, nil
	}

	return analysisTypeSpec(cmt, tspc)
}

func analysisTypeSpec(cmt []*ast.CommentGroup, tspc *ast.TypeSpec) ([]goAugADTDecl, error) {
	d, err := parseAdtDeclCmt(cmt)
	if err != nil {
		return nil, err
	}
	if d.permitted == nil {
		return nil, nil
	}
	if tspc.Assign.IsValid() {
		return nil, fmt.Errorf("%s type %s should not be an alias", Directive, tspc.Name.Name)
	}

	return []goAugADTDecl{{
		sumtype:      tspc.Name.Name,
		permitted:    d.permitted,
		discriminant: d.discriminant,
		pos:          tspc.Name.Pos(),
	}}, nil
}

func analysisTypeDeclWithCmt(cmtmap ast.CommentMap, v *ast.GenDecl) ([]goAugADTDecl, error) {
	cmt, ok := cmtmap[v]
	if !ok {
		return nil, nil
	}
	if len(v.Specs) != 1 {
		// golang allows to declare multiple types in a single
		// parenthesis. In that case, the comment does not
		// belong to ast.GenDecl node but ast.TypeSpec node.
		d, err := parseAdtDeclCmt(cmt)
		if err != nil || d.permitted == nil {
			return nil, err
		}

		return nil, errors.New("invalid format: directive on a grouped type declaration")
	}
	tspc, ok := v.Specs[0].(*ast.TypeSpec)
	if !ok {
		return nil, nil
	}

	return analysisTypeSpec(cmt, tspc)
}
