// Package analyzer implements goexhaust, a checker for closed sum types.
//
// A sum type is an interface (or any) whose permitted members are listed in
// a directive comment:
//
//	// goexhaust: *Cat | *Dog
//	// goexhaust:discriminant Sound
//	type Pet interface{ Sound() Sound }
//
// An enum is a named basic type whose permitted constants are listed the
// same way:
//
//	// goexhaust: Meow | Woof
//	type Sound string
//
// The analyzer reports calls to never.Check whose argument may still hold a
// member at the call site, switches without a default clause that miss a
// member, and assignments of non-members to sum-typed variables.
package analyzer

import (
	"go/token"
	"reflect"

	"golang.org/x/tools/go/analysis"
)

const (
	Directive              = "goexhaust"
	DirectiveCommentPrefix = "// " + Directive + ":"
	DiscriminantKeyword    = "discriminant"

	// NeverFunc is the full name of the exhaustiveness sentinel.
	NeverFunc = "github.com/routiz/goexhaust/never.Check"
)

var (
	configPath   string
	reportSwitch = true
	reportAssign = true
)

var Analyzer = &analysis.Analyzer{
	Name:       Directive,
	Doc:        "reports non-exhaustive dispatch and invalid assignments on sum types",
	Run:        run,
	FactTypes:  []analysis.Fact{new(SumType)},
	ResultType: reflect.TypeOf(map[string]*SumType(nil)),
}

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "YAML file declaring additional sum types")
	Analyzer.Flags.BoolVar(&reportSwitch, "switch", true, "report switches without a default clause that miss a member")
	Analyzer.Flags.BoolVar(&reportAssign, "assign", true, "report assignments of non-members to sum-typed variables")
}

type augtError struct {
	err error
	pos token.Pos
}

// run returns the sum types declared in the package, keyed by type string.
func run(pass *analysis.Pass) (any, error) {
	col := collectInfo(pass)

	cfg, err := configFor(configPath)
	if err != nil {
		return nil, err
	}
	cfgDecls, err := configDecls(pass, cfg)
	if err != nil {
		return nil, err
	}
	col.adtDecls = append(col.adtDecls, cfgDecls...)

	c := newChecker(pass, col)
	errs := append([]augtError(nil), col.e...)
	errs = append(errs, c.evalDecls()...)
	errs = append(errs, c.check()...)

	for _, e := range errs {
		pass.Reportf(e.pos, "%v", e.err)
	}

	return c.local, nil
}
