package pets

import (
	"fmt"

	"github.com/routiz/goexhaust/never"
)

// goexhaust: Meow | Woof
type Sound string // want Sound:`goexhaust\(Meow \| Woof\)`

const (
	Meow Sound = "meow"
	Woof Sound = "woof"
)

// Pet is a Cat or a Dog.
// goexhaust: *Cat | *Dog
// goexhaust:discriminant Sound
type Pet interface { // want Pet:`goexhaust\(\*Cat \| \*Dog\)`
	Sound() Sound
	PetName() string
}

type Cat struct{ Name string }

func (*Cat) Sound() Sound { return Meow }

func (c *Cat) PetName() string { return c.Name }

type Dog struct{ Name string }

func (*Dog) Sound() Sound { return Woof }

func (d *Dog) PetName() string { return d.Name }

func makeSound(pet Pet) string {
	switch pet.Sound() {
	case Meow:
		return fmt.Sprintf("%s makes the sound %s", pet.PetName(), pet.Sound())
	default:
		never.Check(pet) // want `non-exhaustive dispatch on pet: Pet is not assignable to never; unhandled: \*Dog \[Woof\]`
	}

	return ""
}

func makeSoundWithIfElse(pet Pet) string {
	if pet.Sound() == Meow {
		return fmt.Sprintf("%s makes the sound %s", pet.PetName(), pet.Sound())
	} else {
		never.Check(pet) // want `non-exhaustive dispatch on pet: Pet is not assignable to never; unhandled: \*Dog \[Woof\]`
	}

	return ""
}

func fixedMakeSound(pet Pet) string {
	switch pet.Sound() {
	case Meow:
		return fmt.Sprintf("Cat %s makes the sound %s", pet.PetName(), pet.Sound())
	case Woof:
		return fmt.Sprintf("Dog %s makes the sound %s", pet.PetName(), pet.Sound())
	default:
		never.Check(pet)
	}

	return ""
}

func fixedMakeSoundWithIfElse(pet Pet) string {
	if pet.Sound() == Meow {
		return fmt.Sprintf("Cat %s makes the sound %s", pet.PetName(), pet.Sound())
	} else if pet.Sound() == Woof {
		return fmt.Sprintf("Dog %s makes the sound %s", pet.PetName(), pet.Sound())
	} else {
		never.Check(pet)
	}

	return ""
}
