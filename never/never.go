// Package never provides the exhaustiveness sentinel checked by goexhaust.
//
// A call to Check marks a program point that must be unreachable. The
// goexhaust analyzer accepts the call only when every member of the
// argument's sum type has been ruled out by the enclosing dispatch:
//
//	switch pet.Sound() {
//	case pets.Meow:
//		...
//	case pets.Woof:
//		...
//	default:
//		never.Check(pet)
//	}
package never

import "fmt"

// Error is the panic value of Check. It is only observed when a program
// that was not vetted by goexhaust reaches the sentinel, or when a value
// from outside the declared member set was smuggled in.
type Error struct {
	Value any
}

func (e *Error) Error() string {
	return fmt.Sprintf("never: reached unreachable code with %T(%v)", e.Value, e.Value)
}

// Check asserts that v has no possible value at this point.
func Check(v any) {
	panic(&Error{Value: v})
}
