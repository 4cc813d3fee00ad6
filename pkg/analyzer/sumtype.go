package analyzer

import (
	"fmt"
	"strings"
)

// SumType is a closed set of members declared with a goexhaust directive.
// It is exported as a fact on the declaring type name, so dispatch in
// importing packages is checked against the same members.
type SumType struct {
	// Name is the types.Type string of the declared type.
	Name    string
	Display string
	// Enum is set when the members are constants of a basic type.
	Enum bool
	// Discriminant names the method whose constant result identifies a
	// member of an interface sum type.
	Discriminant string
	Members      []Member
}

// Member is one alternative of a SumType.
type Member struct {
	// Type is the types.Type string of the member. For enum members it is
	// the enum type itself.
	Type  string
	Label string
	// Tag is the exact constant value identifying the member, either the
	// enum constant or the discriminant method result.
	Tag      string
	TagLabel string
}

func (*SumType) AFact() {}

func (s *SumType) String() string {
	labels := make([]string, len(s.Members))
	for i, m := range s.Members {
		labels[i] = m.Label
	}

	return fmt.Sprintf("%s(%s)", Directive, strings.Join(labels, " | "))
}

func (m Member) String() string {
	if m.TagLabel != "" && m.TagLabel != m.Label {
		return fmt.Sprintf("%s [%s]", m.Label, m.TagLabel)
	}

	return m.Label
}

func (s *SumType) byType(t string) int {
	for i := range s.Members {
		if s.Members[i].Type == t {
			return i
		}
	}

	return -1
}

func (s *SumType) byTag(tag string) int {
	if tag == "" {
		return -1
	}
	for i := range s.Members {
		if s.Members[i].Tag == tag {
			return i
		}
	}

	return -1
}

// memberSet holds one flag per member of a SumType.
type memberSet []bool

func fullSet(n int) memberSet {
	s := make(memberSet, n)
	for i := range s {
		s[i] = true
	}

	return s
}

func (s memberSet) keep(o memberSet) {
	for i := range s {
		s[i] = s[i] && o[i]
	}
}

func (s memberSet) remove(o memberSet) {
	for i := range s {
		s[i] = s[i] && !o[i]
	}
}

func (s memberSet) union(o memberSet) memberSet {
	r := make(memberSet, len(s))
	for i := range s {
		r[i] = s[i] || o[i]
	}

	return r
}

func (s memberSet) intersect(o memberSet) memberSet {
	r := make(memberSet, len(s))
	for i := range s {
		r[i] = s[i] && o[i]
	}

	return r
}

func (s memberSet) complement() memberSet {
	r := make(memberSet, len(s))
	for i := range s {
		r[i] = !s[i]
	}

	return r
}

func (s memberSet) empty() bool {
	for _, ok := range s {
		if ok {
			return false
		}
	}

	return true
}

// describe lists the members present in s.
func (s memberSet) describe(sum *SumType) string {
	var names []string
	for i, ok := range s {
		if ok {
			names = append(names, sum.Members[i].String())
		}
	}

	return strings.Join(names, ", ")
}
