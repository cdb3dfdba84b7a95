package scene

import (
	"fmt"
	"strings"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

// DrawCmd is one primitive draw with its world transform and normal transform.
type DrawCmd struct {
	Path      string
	Primitive string
	Material  *Material
	Model     vm.Mat
	Normal    vm.Mat
}

type DrawList []DrawCmd

func (l DrawList) String() string {
	sb := strings.Builder{}
	for i, c := range l {
		mat := ""
		if c.Material != nil {
			mat = c.Material.Name
		}
		sb.WriteString(fmt.Sprintf("%3d %-48s %-6s %-10s t=%v\n", i, c.Path, c.Primitive, mat,
			[]float32{c.Model[0][3], c.Model[1][3], c.Model[2][3]}))
	}
	return sb.String()
}

type frame struct {
	node    *Node
	path    string
	next    int
	entered bool
}

// Walk visits the scene depth first without recursion. Every node is entered with one Push,
// has its offset and ops applied, emits its primitive and is left with one Pop. The depth of
// the stack after the walk must match the depth before it.
func Walk(root *Node, stack *TransformStack, visit func(DrawCmd) error) error {
	entry := stack.Depth()
	work := []frame{{node: root, path: root.Name}}
	for len(work) > 0 {
		top := &work[len(work)-1]
		if !top.entered {
			top.entered = true
			stack.Push()
			if !top.node.Offset.IsZero() {
				stack.Translate(top.node.Offset)
			}
			for _, op := range top.node.Ops {
				stack.Apply(op)
			}
			if top.node.Primitive != "" {
				normal, err := stack.NormalMatrix()
				if err != nil {
					unwind(stack, work)
					return errors.Wrapf(err, "node %s", top.path)
				}
				cmd := DrawCmd{
					Path:      top.path,
					Primitive: top.node.Primitive,
					Material:  top.node.Material,
					Model:     stack.Current(),
					Normal:    normal,
				}
				if err := visit(cmd); err != nil {
					unwind(stack, work)
					return errors.Wrapf(err, "visit %s", top.path)
				}
			}
		}
		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++
			work = append(work, frame{node: child, path: top.path + "/" + child.Name})
			continue
		}
		if err := stack.Pop(); err != nil {
			return errors.Wrapf(err, "leaving %s", top.path)
		}
		work = work[:len(work)-1]
	}
	return stack.CheckDepth(entry)
}

func unwind(stack *TransformStack, work []frame) {
	for _, f := range work {
		if f.entered {
			_ = stack.Pop()
		}
	}
}

// Flatten walks root below rootTransform and collects the draw commands.
func Flatten(root *Node, rootTransform vm.Mat) (DrawList, error) {
	stack := NewTransformStack()
	if err := stack.Reset(rootTransform); err != nil {
		return nil, err
	}
	list := make(DrawList, 0, root.Count())
	err := Walk(root, stack, func(c DrawCmd) error {
		list = append(list, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// RootRotation is the per frame root transform: a rotation of deg around the y axis.
func RootRotation(deg float64) vm.Mat {
	return vm.NewRotation(vm.ToRad(deg), vm.Vec3{Y: 1})
}
