// Package adtsample provides code examples to verify the behavior of goexhaust.
package adtsample

import (
	"fmt"
)

// Tree represents a tree structure, which is very suitable for ADT testing.
// goexhaust: *Leaf | *Node | nil
type Tree any // want Tree:`goexhaust\(\*Leaf \| \*Node \| nil\)`

type Leaf struct{}

type Node struct{}

type NotTree struct{}

type (
	// TestInt is a sum type of all int family.
	// goexhaust: int8 | int16 | int32 | int64
	TestInt any // want TestInt:`goexhaust\(int8 \| int16 \| int32 \| int64\)`
)

func treeBuilder() Tree {
	return nil
}

func nonTreeBuilder() int {
	return 0
}

var gbvalt Tree = nil

func SimpleTest() {
	gbvalt = &Leaf{}
	var valt Tree = &Leaf{}
	valt = Leaf{} // want `invalid assigning: Leaf is not a member of Tree`
	valt = &Node{}
	valt = Node{} // want `invalid assigning: Node is not a member of Tree`
	valt = nil
	valt = &NotTree{} // want `invalid assigning: \*NotTree is not a member of Tree`
	valt = NotTree{}  // want `invalid assigning: NotTree is not a member of Tree`
	valt = treeBuilder()
	fmt.Printf("printing valt to suppres SA4006: %v\n", valt)
	valt = nonTreeBuilder() // want `invalid assigning: int is not a member of Tree`

	valt1 := treeBuilder()
	fmt.Printf("valt1: %v\n", valt1)
	valt1 = &Node{}

	valt2 := nonTreeBuilder()
	fmt.Printf("valt2: %v\n", valt2)
	valt2 = 2

	switch valt.(type) {
	case *Leaf:
	case *Node:
	case nil:
	}

	switch valt.(type) { // want `non-exhaustive type switch on Tree: missing nil`
	case *Leaf:
	case *Node:
	}

	switch valt.(type) { // want `non-exhaustive type switch on Tree: missing \*Leaf, nil`
	case *Node:
	}

	switch valt.(type) {
	case *NotTree: // want `invalid type switch: \*NotTree is not a member of Tree`
	default:
	}

	var ti TestInt = int8(1)
	switch ti.(type) { // want `non-exhaustive type switch on TestInt: missing int32, int64`
	case int8, int16:
	}
}
