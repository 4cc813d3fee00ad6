// Command goexhaust reports non-exhaustive dispatch on sum types.
//
// It can be run directly or as a vet tool:
//
//	go vet -vettool=$(which goexhaust) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/routiz/goexhaust/pkg/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
