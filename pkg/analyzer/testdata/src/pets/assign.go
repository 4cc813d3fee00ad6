package pets

type parrot struct{}

func (parrot) Sound() Sound { return Meow }

func (parrot) PetName() string { return "Polly" }

func assignments() {
	var p Pet = &Cat{}
	p = &Dog{}
	p = parrot{} // want `invalid assigning: parrot is not a member of Pet`
	_ = p

	var q Pet = parrot{} // want `invalid declaration: parrot is not a member of Pet`
	_ = q

	var s Sound = "bark" // want `invalid declaration: "bark" is not a member of Sound`
	s = Woof
	_ = s
}

func adopt() Pet {
	return parrot{} // want `invalid return: parrot is not a member of Pet`
}

func bark(s Sound) {
	switch s {
	case Meow, Woof:
	case "bark": // want `invalid switch: "bark" is not a member of Sound`
	}
}

type kennel struct {
	pet  Pet
	name string
}

func consume(p Pet, rest ...Pet) {}

func leaks(ch chan Pet) {
	consume(parrot{})                 // want `invalid argument: parrot is not a member of Pet`
	consume(&Cat{}, &Dog{}, parrot{}) // want `invalid argument: parrot is not a member of Pet`
	consume(&Cat{}, []Pet{&Dog{}}...)

	_ = []Pet{&Cat{}, parrot{}}       // want `invalid element: parrot is not a member of Pet`
	_ = [...]Pet{1: parrot{}}         // want `invalid element: parrot is not a member of Pet`
	_ = map[Sound]Pet{Meow: parrot{}} // want `invalid element: parrot is not a member of Pet`
	_ = map[Sound]Pet{"bark": &Dog{}} // want `invalid element: "bark" is not a member of Sound`
	_ = kennel{pet: parrot{}}         // want `invalid element: parrot is not a member of Pet`
	_ = kennel{parrot{}, "polly"}     // want `invalid element: parrot is not a member of Pet`
	_ = kennel{pet: &Cat{}, name: "tom"}

	ch <- parrot{} // want `invalid send: parrot is not a member of Pet`
	ch <- &Dog{}
}
