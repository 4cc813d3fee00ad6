package baddecl

// goexhaust: *A
type Single any // want `invalid format: a sum type needs at least two members`

type A struct{}

type B struct{}

// goexhaust: *A | *Nope
type Undefined any // want `invalid member \*Nope of Undefined`

// goexhaust: *A | *B
type Struct struct{} // want `goexhaust type Struct should be an interface or a basic type`

// goexhaust: *A | *B
type Alias = any // want `goexhaust type Alias should not be an alias`

// goexhaust:discriminant Kind
type Orphan any // want `invalid format: discriminant without member list`

// goexhaust: *A | *B
type ( // want `invalid format: directive on a grouped type declaration`
	X any
	Y any
)

// goexhaust: *A | *A
type Twice any // want `members \*A and \*A of Twice are the same type`

type Kinded interface {
	Kind() string
}

// goexhaust: *A | *K1
type NotImplemented Kinded // want `member \*A does not implement NotImplemented`

type K1 struct{}

func (*K1) Kind() string { return "k" }

type K2 struct{}

func (*K2) Kind() string { return "k" }

type K3 struct{ kind string }

func (k *K3) Kind() string { return k.kind }

type K4 struct{}

func (*K4) Kind() string {
	k := "k4"
	return k
}

// goexhaust: *K1 | *K2
// goexhaust:discriminant Kind
type Shared Kinded // want `members \*K1 and \*K2 of Shared share the value "k"`

// goexhaust: *K1 | *K3
// goexhaust:discriminant Kind
type Dynamic Kinded // want `member \*K3 of Dynamic: discriminant method Kind should only return a constant`

// goexhaust: *K1 | *K4
// goexhaust:discriminant Kind
type Statements Kinded // want `member \*K4 of Statements: discriminant method Kind should only return a constant`

// goexhaust: *K1 | *K2
// goexhaust:discriminant Name
type Unnamed any // want `member \*K1 of Unnamed: missing discriminant method Name`

type Color int

const (
	Red Color = iota
	Green
)

// goexhaust: Red | 3
type Shade Color // want `member Red is not a constant of type Shade`

// goexhaust: Red | Green
// goexhaust:discriminant Kind
type Paint Color // want `goexhaust enum Paint should not have a discriminant`
