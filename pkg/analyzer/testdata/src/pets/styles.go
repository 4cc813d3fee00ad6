package pets

import "github.com/routiz/goexhaust/never"

func earlyReturn(pet Pet) string {
	if pet.Sound() == Meow {
		return "meow"
	}
	if pet.Sound() == Woof {
		return "woof"
	}
	never.Check(pet)

	return ""
}

func disjunction(pet Pet) string {
	if pet.Sound() == Meow || (pet.Sound() == Woof) {
		return "known"
	}
	never.Check(pet)

	return ""
}

func commaOk(pet Pet) string {
	if c, ok := pet.(*Cat); ok {
		return c.Name
	} else if d, ok := pet.(*Dog); ok {
		return d.Name
	} else {
		never.Check(pet)
	}

	return ""
}

func tagless(pet Pet) string {
	switch {
	case pet.Sound() == Meow:
		return "meow"
	case pet.Sound() == Woof:
		return "woof"
	default:
		never.Check(pet)
	}

	return ""
}

func typeSwitch(pet Pet) string {
	switch p := pet.(type) {
	case *Cat:
		return p.Name
	case *Dog:
		return p.Name
	default:
		never.Check(p)
	}

	return ""
}

func typeSwitchMissing(pet Pet) string {
	switch p := pet.(type) {
	case *Cat:
		return p.Name
	default:
		never.Check(p) // want `non-exhaustive dispatch on pet: Pet is not assignable to never; unhandled: \*Dog \[Woof\]`
	}

	return ""
}

func enumSwitch(s Sound) string {
	switch s {
	case Meow, Woof:
		return string(s)
	default:
		never.Check(s)
	}

	return ""
}

func enumSwitchMissing(s Sound) string {
	switch s {
	case Meow:
		return string(s)
	default:
		never.Check(s) // want `non-exhaustive dispatch on s: Sound is not assignable to never; unhandled: Woof$`
	}

	return ""
}

func discriminantAsEnum(pet Pet) {
	switch pet.Sound() {
	case Meow:
	case Woof:
	default:
		never.Check(pet.Sound())
	}
}

func inClosure(pets []Pet) {
	for _, pet := range pets {
		func() {
			if pet.Sound() == Meow {
				return
			}
			never.Check(pet) // want `unhandled: \*Dog \[Woof\]$`
		}()
	}
}

func loopContinue(pets []Pet) {
	for _, pet := range pets {
		if pet.Sound() == Meow {
			continue
		}
		if pet.Sound() == Woof {
			continue
		}
		never.Check(pet)
	}
}

func namedFirst(pet Pet) string {
	switch p := pet.(type) {
	case interface{ PetName() string }:
		return p.PetName()
	default:
		never.Check(p)
	}

	return ""
}

func assertedNamed(pet Pet) string {
	if named, ok := pet.(interface{ PetName() string }); ok {
		return named.PetName()
	}
	never.Check(pet)

	return ""
}
