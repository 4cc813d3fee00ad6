// Package pets is the worked example for goexhaust: a Cat and a Dog are
// the same, except for the sound they make.
package pets

import (
	"fmt"

	"github.com/routiz/goexhaust/never"
)

// Sound is the discriminant of Pet.
// goexhaust: Meow | Woof
type Sound string

const (
	Meow Sound = "meow"
	Woof Sound = "woof"
)

// Pet is a Cat or a Dog.
// goexhaust: *Cat | *Dog
// goexhaust:discriminant Sound
type Pet interface {
	Sound() Sound
	PetName() string
}

type Cat struct {
	Name string
}

func (*Cat) Sound() Sound { return Meow }

func (c *Cat) PetName() string { return c.Name }

type Dog struct {
	Name string
}

func (*Dog) Sound() Sound { return Woof }

func (d *Dog) PetName() string { return d.Name }

func describe(kind string, pet Pet) string {
	return fmt.Sprintf("%s %s makes the sound %s", kind, pet.PetName(), pet.Sound())
}

// MakeSound dispatches on the discriminant with a switch.
func MakeSound(pet Pet) string {
	switch pet.Sound() {
	case Meow:
		return describe("Cat", pet)
	case Woof:
		return describe("Dog", pet)
	default:
		never.Check(pet)
	}

	return ""
}

// MakeSoundWithIfElse is MakeSound written as an if/else chain.
func MakeSoundWithIfElse(pet Pet) string {
	if pet.Sound() == Meow {
		return describe("Cat", pet)
	} else if pet.Sound() == Woof {
		return describe("Dog", pet)
	} else {
		never.Check(pet)
	}

	return ""
}

// Describe dispatches on the dynamic type instead of the discriminant.
func Describe(pet Pet) string {
	switch p := pet.(type) {
	case *Cat:
		return describe("Cat", p)
	case *Dog:
		return describe("Dog", p)
	default:
		never.Check(p)
	}

	return ""
}
