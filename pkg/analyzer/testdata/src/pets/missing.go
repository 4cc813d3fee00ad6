package pets

import "github.com/routiz/goexhaust/never"

func missingCat(pet Pet) string {
	switch pet.Sound() {
	case Woof:
		return "woof"
	default:
		never.Check(pet) // want `unhandled: \*Cat \[Meow\]$`
	}

	return ""
}

func missingCatIfElse(pet Pet) string {
	if Woof == pet.Sound() {
		return "woof"
	} else {
		never.Check(pet) // want `unhandled: \*Cat \[Meow\]$`
	}

	return ""
}

func missingBoth(pet Pet) {
	never.Check(pet) // want `unhandled: \*Cat \[Meow\], \*Dog \[Woof\]$`
}

func checkInsideCase(pet Pet) {
	switch pet.Sound() {
	case Meow:
		never.Check(pet) // want `unhandled: \*Cat \[Meow\]$`
	case Woof:
	}
}

func fallsIntoCheck(pet Pet) {
	switch pet.Sound() {
	case Meow:
		fallthrough
	case Woof:
		never.Check(pet) // want `unhandled: \*Cat \[Meow\], \*Dog \[Woof\]$`
	}
}

func noDefault(pet Pet) string {
	switch pet.Sound() { // want `non-exhaustive switch on pet.Sound\(\): missing \*Dog \[Woof\]`
	case Meow:
		return "meow"
	}

	return ""
}

func earlyReturnMissing(pet Pet) string {
	if pet.Sound() == Meow {
		return "meow"
	}
	never.Check(pet) // want `unhandled: \*Dog \[Woof\]$`

	return ""
}

func notASumType() {
	n := 42
	never.Check(n) // want `never.Check argument n of type int is not a goexhaust sum type`
}

func gotoBeforeCheck(pet Pet) string {
	if pet.Sound() == Meow {
		goto check
	}
	if pet.Sound() == Woof {
		return "woof"
	}
check:
	never.Check(pet) // want `unhandled: \*Cat \[Meow\]$`

	return ""
}

func interfaceCase(pet Pet) {
	switch p := pet.(type) {
	case Pet:
		never.Check(p) // want `unhandled: \*Cat \[Meow\], \*Dog \[Woof\]$`
	}
}

func interfaceAssertion(pet Pet) {
	if _, ok := pet.(interface{ PetName() string }); ok {
		never.Check(pet) // want `unhandled: \*Cat \[Meow\], \*Dog \[Woof\]$`
	}
}
