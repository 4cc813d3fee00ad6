// Command exhaustreport loads packages and prints the goexhaust report.
//
// Usage:
//
//	exhaustreport [-tests] [-config file] [-color=auto|always|never] packages...
//
// Exit status is 0 when no diagnostic is reported, 1 when some are, 2 on
// usage or load errors and 3 when the analysis itself fails.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"

	"github.com/routiz/goexhaust/pkg/analyzer"
)

const (
	exitClean = iota
	exitDiagnostics
	exitUsage
	exitAnalysis
)

const pkgLoadMode = packages.LoadAllSyntax

type options struct {
	tests    bool
	config   string
	color    string
	patterns []string
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("exhaustreport", flag.ContinueOnError)
	fs.BoolVar(&opts.tests, "tests", false, "also check test files")
	fs.StringVar(&opts.config, "config", "", "YAML file declaring additional sum types")
	fs.StringVar(&opts.color, "color", "auto", "colorize output: auto, always or never")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	switch opts.color {
	case "auto", "always", "never":
	default:
		return options{}, fmt.Errorf("invalid -color value %q", opts.color)
	}
	opts.patterns = fs.Args()
	if len(opts.patterns) == 0 {
		opts.patterns = []string{"."}
	}

	return opts, nil
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type report struct {
	pos     string
	message string
}

func collectReports(graph *checker.Graph) ([]report, error) {
	var reports []report
	for _, act := range graph.Roots {
		if act.Err != nil {
			return nil, fmt.Errorf("%s: %w", act.Package.PkgPath, act.Err)
		}
		for _, d := range act.Diagnostics {
			reports = append(reports, newReport(act.Package, d))
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].pos < reports[j].pos
	})

	return dedup(reports), nil
}

func newReport(pkg *packages.Package, d analysis.Diagnostic) report {
	return report{
		pos:     pkg.Fset.Position(d.Pos).String(),
		message: d.Message,
	}
}

// dedup drops the reports repeated by test variants of a package.
func dedup(reports []report) []report {
	var out []report
	for i, r := range reports {
		if i > 0 && r == reports[i-1] {
			continue
		}
		out = append(out, r)
	}

	return out
}

func printReports(w io.Writer, reports []report, color bool) {
	for _, r := range reports {
		if color {
			fmt.Fprintf(w, "\x1b[1m%s\x1b[0m: \x1b[31m%s\x1b[0m\n", r.pos, r.message)

			continue
		}
		fmt.Fprintf(w, "%s: %s\n", r.pos, r.message)
	}
}

func run(args []string, stdout, stderr *os.File) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())

		return exitUsage
	}
	if opts.config != "" {
		if err := analyzer.Analyzer.Flags.Set("config", opts.config); err != nil {
			fmt.Fprintln(stderr, err.Error())

			return exitUsage
		}
	}

	cfg := &packages.Config{Mode: pkgLoadMode, Tests: opts.tests}
	pkgs, err := packages.Load(cfg, opts.patterns...)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())

		return exitUsage
	}
	if packages.PrintErrors(pkgs) != 0 {
		return exitUsage
	}

	graph, err := checker.Analyze([]*analysis.Analyzer{analyzer.Analyzer}, pkgs, &checker.Options{})
	if err != nil {
		fmt.Fprintln(stderr, err.Error())

		return exitAnalysis
	}
	reports, err := collectReports(graph)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())

		return exitAnalysis
	}
	printReports(stdout, reports, useColor(opts.color, stdout))
	if len(reports) != 0 {
		return exitDiagnostics
	}

	return exitClean
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
