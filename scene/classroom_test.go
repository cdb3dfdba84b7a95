package scene

import (
	"bytes"
	"strings"
	"testing"

	vm "classroom/vector_math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassroomPrimitiveCount(t *testing.T) {
	root := BuildClassroom(DefaultDimensions(), DefaultPalette())
	require.NoError(t, root.Validate())

	list, err := Flatten(root, vm.NewUnitMat(4))
	require.NoError(t, err)
	assert.Len(t, list, 122)
	assert.Equal(t, 48, root.Find(ChairGroup).Count())
	assert.Len(t, Materials(root), 7)
}

func TestChairOffsetMovesOnlyChairs(t *testing.T) {
	root := BuildClassroom(DefaultDimensions(), DefaultPalette())
	before, err := Flatten(root, vm.NewUnitMat(4))
	require.NoError(t, err)

	root.Find(ChairGroup).SetOffset(-0.3, 0.2)
	after, err := Flatten(root, vm.NewUnitMat(4))
	require.NoError(t, err)
	require.Len(t, after, len(before))

	moved := 0
	for i := range before {
		require.Equal(t, before[i].Path, after[i].Path)
		dx := after[i].Model[0][3] - before[i].Model[0][3]
		dy := after[i].Model[1][3] - before[i].Model[1][3]
		dz := after[i].Model[2][3] - before[i].Model[2][3]
		if strings.Contains(before[i].Path, "/"+ChairGroup+"/") {
			moved++
			assert.InDelta(t, -0.3, dx, tol, before[i].Path)
			assert.InDelta(t, 0, dy, tol, before[i].Path)
			assert.InDelta(t, 0.2, dz, tol, before[i].Path)
		} else {
			assert.True(t, before[i].Model.Equals(&after[i].Model), before[i].Path)
		}
	}
	assert.Equal(t, 48, moved)
}

func findCmd(t *testing.T, list DrawList, path string) DrawCmd {
	t.Helper()
	for _, c := range list {
		if c.Path == path {
			return c
		}
	}
	t.Fatalf("no draw command %s", path)
	return DrawCmd{}
}

func TestClassroomPlacement(t *testing.T) {
	d := DefaultDimensions()
	list, err := Flatten(BuildClassroom(d, DefaultPalette()), vm.NewUnitMat(4))
	require.NoError(t, err)

	leg := findCmd(t, list, "classroom/desks/back-left/left-leg")
	assert.InDelta(t, -d.XDim/2-1.72, leg.Model[0][3], tol)
	assert.InDelta(t, -1.2-0.61, leg.Model[1][3], tol)
	assert.InDelta(t, -d.ZDim/2+2, leg.Model[2][3], tol)
	assert.InDelta(t, 1.22, leg.Model[1][1], tol)

	knob := findCmd(t, list, "classroom/door/knob")
	assert.InDelta(t, d.DoorX+d.DoorWidth/3, knob.Model[0][3], tol)
	assert.Equal(t, "yellow", knob.Material.Name)

	left := findCmd(t, list, "classroom/skirting/rear-bottom-left")
	right := findCmd(t, list, "classroom/skirting/rear-bottom-right")
	assert.InDelta(t, -4.4125, left.Model[0][3], tol)
	assert.InDelta(t, 1.175, left.Model[0][0], tol)
	assert.InDelta(t, 1.4125, right.Model[0][3], tol)
	assert.InDelta(t, 7.175, right.Model[0][0], tol)

	back := findCmd(t, list, "classroom/teacher-chair/back")
	assert.InDelta(t, -d.ZDim/2-1.3-0.45, back.Model[2][3], tol)
	assert.InDelta(t, d.TeacherChairBackHeight, back.Model[1][1], tol)
}

func TestDrawListString(t *testing.T) {
	list, err := Flatten(smallScene(), vm.NewUnitMat(4))
	require.NoError(t, err)
	s := list.String()
	assert.Equal(t, 3, strings.Count(s, "\n"))
	assert.Contains(t, s, "root/a/a2")
}

func TestExportGLTF(t *testing.T) {
	root := BuildClassroom(DefaultDimensions(), DefaultPalette())
	doc, err := NewGLTFDocument(root, UnitCube())
	require.NoError(t, err)

	nodes := 0
	var count func(n *Node)
	count = func(n *Node) {
		nodes++
		for _, c := range n.Children {
			count(c)
		}
	}
	count(root)
	assert.Len(t, doc.Nodes, nodes)
	assert.Len(t, doc.Meshes, 7)
	assert.Len(t, doc.Materials, 7)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)

	buf := &bytes.Buffer{}
	require.NoError(t, ExportGLTF(buf, root))
	assert.Equal(t, "glTF", buf.String()[:4])
}

func TestUnitCube(t *testing.T) {
	c := UnitCube()
	assert.Len(t, c.Positions, 24)
	assert.Len(t, c.Normals, 24)
	assert.Len(t, c.Indices, 36)
	c.Triangles(func(a, b, cc uint32) {
		e1 := c.Positions[b].Sub(c.Positions[a])
		e2 := c.Positions[cc].Sub(c.Positions[a])
		// counter clockwise seen from outside
		assert.Greater(t, e1.Cross(e2).Dot(c.Normals[a]), float32(0))
	})
}
