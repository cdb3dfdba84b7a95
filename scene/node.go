package scene

import (
	"fmt"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

type OpKind int

const (
	OpTranslate OpKind = iota
	OpRotate
	OpScale
)

func (k OpKind) String() string {
	switch k {
	case OpTranslate:
		return "translate"
	case OpRotate:
		return "rotate"
	case OpScale:
		return "scale"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one local transform. For rotations V is the axis and Deg the angle in degree.
type Op struct {
	Kind OpKind
	V    vm.Vec3
	Deg  float64
}

func Translate(x, y, z float32) Op {
	return Op{Kind: OpTranslate, V: vm.Vec3{X: x, Y: y, Z: z}}
}

func Scale(x, y, z float32) Op {
	return Op{Kind: OpScale, V: vm.Vec3{X: x, Y: y, Z: z}}
}

func Rotate(deg float64, x, y, z float32) Op {
	return Op{Kind: OpRotate, Deg: deg, V: vm.Vec3{X: x, Y: y, Z: z}}
}

// Matrix returns the elementary transform of the op.
func (o Op) Matrix() vm.Mat {
	switch o.Kind {
	case OpTranslate:
		return vm.NewTranslation(o.V)
	case OpRotate:
		return vm.NewRotation(vm.ToRad(o.Deg), o.V)
	case OpScale:
		return vm.NewScale(o.V)
	}
	return vm.NewUnitMat(4)
}

type Material struct {
	Name  string
	Color vm.Vec3
}

// Node is an element of the scene graph. Offset is translated before Ops are applied and is
// meant for runtime adjustments such as moving a group of furniture.
type Node struct {
	Name      string
	Offset    vm.Vec3
	Ops       []Op
	Primitive string
	Material  *Material
	Children  []*Node
}

func NewGroup(name string, ops ...Op) *Node {
	return &Node{Name: name, Ops: ops}
}

func NewPrimitive(name, primitive string, material *Material, ops ...Op) *Node {
	return &Node{Name: name, Primitive: primitive, Material: material, Ops: ops}
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) SetOffset(x, z float32) {
	n.Offset = vm.Vec3{X: x, Z: z}
}

// Local is the node's transform relative to its parent.
func (n *Node) Local() vm.Mat {
	local := vm.NewTranslation(n.Offset)
	for _, op := range n.Ops {
		m := op.Matrix()
		local, _ = local.Mult(&m)
	}
	return local
}

// Find returns the first node named name in depth first order, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Validate rejects ops that would make a model transform singular.
func (n *Node) Validate() error {
	for i, op := range n.Ops {
		switch op.Kind {
		case OpScale:
			if op.V.X == 0 || op.V.Y == 0 || op.V.Z == 0 {
				return errors.Errorf("node %q op %d: zero scale factor %v", n.Name, i, op.V)
			}
		case OpRotate:
			if op.V.IsZero() {
				return errors.Errorf("node %q op %d: rotation without axis", n.Name, i)
			}
		}
	}
	for _, c := range n.Children {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of primitives in the subtree.
func (n *Node) Count() int {
	cnt := 0
	if n.Primitive != "" {
		cnt++
	}
	for _, c := range n.Children {
		cnt += c.Count()
	}
	return cnt
}
