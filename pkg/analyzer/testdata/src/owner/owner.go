// Package owner dispatches on a sum type declared in another package.
package owner

import (
	"github.com/routiz/goexhaust/never"

	"pets"
)

func Greet(pet pets.Pet) string {
	switch pet.Sound() {
	case pets.Meow:
		return "hello cat"
	case pets.Woof:
		return "hello dog"
	default:
		never.Check(pet)
	}

	return ""
}

func GreetCat(pet pets.Pet) string {
	if pet.Sound() == pets.Meow {
		return "hello cat"
	}
	never.Check(pet) // want `non-exhaustive dispatch on pet: Pet is not assignable to never; unhandled: \*Dog \[Woof\]`

	return ""
}

func Kind(pet pets.Pet) string {
	switch pet.(type) { // want `non-exhaustive type switch on Pet: missing \*Cat`
	case *pets.Dog:
		return "dog"
	}

	return ""
}

func Adopt() pets.Pet {
	var p pets.Pet = &pets.Dog{}

	return p
}

func Name(pet pets.Pet) string {
	switch p := pet.(type) {
	case interface{ PetName() string }:
		return p.PetName()
	default:
		never.Check(p)
	}

	return ""
}

func Names(pet pets.Pet) string {
	switch p := pet.(type) {
	case pets.Pet:
		return p.PetName()
	}

	return ""
}
