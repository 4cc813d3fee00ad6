package adtsample

import (
	"strings"
)

// goexhaust: *strings.Reader | nil
type ImportedTester any // want ImportedTester:`goexhaust\(\*strings.Reader \| nil\)`

func noop(v any) {}

func ImportedTest() {
	t := ImportedTester(nil)

	// okay
	switch t.(type) {
	case *strings.Reader:
	case nil:
	}

	// okay
	switch v := t.(type) {
	case *strings.Reader:
		noop(v)
	case nil:
		noop(v)
	}

	switch t.(type) { // want `non-exhaustive type switch on ImportedTester: missing nil`
	case *strings.Reader:
	}

	switch v := t.(type) { // want `non-exhaustive type switch on ImportedTester: missing nil`
	case *strings.Reader:
		noop(v)
	}
}
