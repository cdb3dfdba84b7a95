package scene

import (
	vm "classroom/vector_math"
)

// Cube is the only primitive of the classroom, a unit cube centred at the origin.
const Cube = "cube"

// ChairGroup names the group holding the student chairs. Its offset is driven by WASD.
const ChairGroup = "chairs"

// Dimensions of the room. X, Y and Z are half extents.
type Dimensions struct {
	XDim                   float32 `yaml:"x_dim"`
	YDim                   float32 `yaml:"y_dim"`
	ZDim                   float32 `yaml:"z_dim"`
	WallThickness          float32 `yaml:"wall_thickness"`
	ChairHeight            float32 `yaml:"chair_height"`
	ChairWidth             float32 `yaml:"chair_width"`
	ChairDepth             float32 `yaml:"chair_depth"`
	ChairBackHeight        float32 `yaml:"chair_back_height"`
	TeacherChairBackHeight float32 `yaml:"teacher_chair_back_height"`
	StudentDeskWidth       float32 `yaml:"student_desk_width"`
	WhiteboardWidth        float32 `yaml:"whiteboard_width"`
	WhiteboardHeight       float32 `yaml:"whiteboard_height"`
	DoorWidth              float32 `yaml:"door_width"`
	DoorHeight             float32 `yaml:"door_height"`
	DoorX                  float32 `yaml:"door_x"`
}

func DefaultDimensions() Dimensions {
	return Dimensions{
		XDim:                   5,
		YDim:                   2.6,
		ZDim:                   5,
		WallThickness:          0.18,
		ChairHeight:            0.95,
		ChairWidth:             1,
		ChairDepth:             1,
		ChairBackHeight:        1,
		TeacherChairBackHeight: 1.3,
		StudentDeskWidth:       3.5,
		WhiteboardWidth:        5,
		WhiteboardHeight:       2,
		DoorWidth:              1.65,
		DoorHeight:             3.5,
		DoorX:                  -3,
	}
}

// Palette holds the materials the classroom is coloured with.
type Palette struct {
	Room, Floor, Wood, DarkGrey, Coral, White, Yellow *Material
}

func DefaultPalette() Palette {
	return Palette{
		Room:     &Material{Name: "room", Color: vm.Vec3{X: 0.79, Y: 0.85, Z: 0.88}},
		Floor:    &Material{Name: "floor", Color: vm.Vec3{X: 0.55, Y: 0.55, Z: 0.7}},
		Wood:     &Material{Name: "wood", Color: vm.Vec3{X: 0.87, Y: 0.72, Z: 0.53}},
		DarkGrey: &Material{Name: "dark-grey", Color: vm.Vec3{X: 0.29, Y: 0.29, Z: 0.29}},
		Coral:    &Material{Name: "coral", Color: vm.Vec3{X: 1.0, Y: 0.09, Z: 0.09}},
		White:    &Material{Name: "white", Color: vm.Vec3{X: 1, Y: 1, Z: 1}},
		Yellow:   &Material{Name: "yellow", Color: vm.Vec3{X: 1.0, Y: 0.93, Z: 0.0}},
	}
}

func box(name string, m *Material, x, y, z, sx, sy, sz float32) *Node {
	return NewPrimitive(name, Cube, m, Translate(x, y, z), Scale(sx, sy, sz))
}

func at(name string, x, y, z float32) *Node {
	return NewGroup(name, Translate(x, y, z))
}

// BuildClassroom assembles the classroom scene graph in room space.
func BuildClassroom(d Dimensions, p Palette) *Node {
	root := NewGroup("classroom")
	root.Add(
		walls(d, p),
		box("floor", p.Floor, 0, -d.YDim+d.WallThickness/2, 0, 2*d.XDim-0.001, d.WallThickness, 2*d.ZDim-0.001),
		desks(d, p),
		teacherDesk(d, p),
		door(d, p),
		chair("teacher-chair", d, p.DarkGrey, d.XDim/2, -(d.YDim-d.ChairHeight), -d.ZDim/2-1.3, d.TeacherChairBackHeight, -0.45),
		whiteboard(d, p),
		studentChairs(d, p),
		windows(d, p),
		lightBoxes(d, p),
		skirting(d, p),
	)
	return root
}

func walls(d Dimensions, p Palette) *Node {
	g := NewGroup("walls")
	for _, side := range []struct {
		name string
		x    float32
	}{{"left", -d.XDim}, {"right", d.XDim}} {
		w := at(side.name+"-wall", side.x, 0, 0)
		w.Add(
			box("upper", p.Room, 0, 5*d.YDim/6, 0, d.WallThickness, 2*d.YDim/6, 2*d.ZDim),
			box("lower", p.Room, 0, -5*d.YDim/6, 0, d.WallThickness, 2*d.YDim/6, 2*d.ZDim),
			box("far", p.Room, 0, 0, -5*d.ZDim/6, d.WallThickness, 4*d.YDim/3, 2*d.ZDim/6),
			box("middle", p.Room, 0, 0, 0, d.WallThickness, 4*d.YDim/3, 2*d.ZDim/6),
			box("front", p.Room, 0, 0, 5*d.ZDim/6, d.WallThickness, 4*d.YDim/3, 2*d.ZDim/6),
		)
		g.Add(w)
	}
	g.Add(
		box("rear-wall", p.Room, 0, 0, -d.ZDim+d.WallThickness/2, 2*d.XDim, 2*d.YDim, d.WallThickness),
		box("ceiling", p.Room, 0, d.YDim-d.WallThickness/2, 0, 2*d.XDim, d.WallThickness, 2*d.ZDim),
	)
	return g
}

func desk(name string, m *Material, x, y, z, width float32) *Node {
	return at(name, x, y, z).Add(
		box("top", m, 0, 0, 0, width, 0.1, 1.5),
		box("left-leg", m, -1.72, -0.61, 0, 0.05, 1.22, 1.2),
		box("right-leg", m, 1.72, -0.61, 0, 0.05, 1.22, 1.2),
	)
}

func desks(d Dimensions, p Palette) *Node {
	return NewGroup("desks").Add(
		desk("back-left", p.Wood, -d.XDim/2, -1.2, -d.ZDim/2+2, d.StudentDeskWidth),
		desk("back-right", p.Wood, d.XDim/2, -1.2, -d.ZDim/2+2, d.StudentDeskWidth),
		desk("front-left", p.Wood, -d.XDim/2, -1.2, d.ZDim/2, d.StudentDeskWidth),
		desk("front-right", p.Wood, d.XDim/2, -1.2, d.ZDim/2, d.StudentDeskWidth),
	)
}

func teacherDesk(d Dimensions, p Palette) *Node {
	return at("teacher-desk", d.XDim/2, -1.2, -d.ZDim/2-0.7).Add(
		box("top", p.Wood, 0, 0, 0, 4.8, 0.1, 1.5),
		box("left-leg", p.Wood, -2.2, -0.66, 0, 0.05, 1.22, 1.2),
		box("right-leg", p.Wood, 2.2, -0.66, 0, 0.05, 1.22, 1.2),
		box("right-drawers", p.Wood, 1.7, -0.66, 0, 1.18, 1.22, 1.2),
		box("left-drawers", p.Wood, -1.7, -0.66, 0, 1.18, 1.22, 1.2),
	)
}

func door(d Dimensions, p Palette) *Node {
	y := -(d.YDim - d.DoorHeight) - d.DoorHeight/2
	z := -d.ZDim + d.WallThickness/2 + 0.05
	return at("door", d.DoorX, y, z).Add(
		box("leaf", p.Wood, 0, 0, 0, d.DoorWidth, d.DoorHeight, 0.1),
		box("knob", p.Yellow, d.DoorWidth/3, 0, 0.1, 0.15, 0.15, 0.15),
	)
}

// chair builds seat, back and four legs. backZ places the back relative to the seat.
func chair(name string, d Dimensions, m *Material, x, y, z, backHeight, backZ float32) *Node {
	lx := d.ChairWidth/2 - 0.05
	lz := d.ChairDepth/2 - 0.05
	ly := -d.ChairHeight / 2
	return at(name, x, y, z).Add(
		box("seat", m, 0, 0, 0, d.ChairWidth, 0.1, d.ChairDepth),
		box("back", m, 0, backHeight/2-0.05, backZ, d.ChairWidth, backHeight, 0.1),
		box("front-left-leg", m, -lx, ly, lz, 0.1, d.ChairHeight, 0.1),
		box("front-right-leg", m, lx, ly, lz, 0.1, d.ChairHeight, 0.1),
		box("back-left-leg", m, -lx, ly, -lz, 0.1, d.ChairHeight, 0.1),
		box("back-right-leg", m, lx, ly, -lz, 0.1, d.ChairHeight, 0.1),
	)
}

func studentChairs(d Dimensions, p Palette) *Node {
	g := NewGroup(ChairGroup)
	y := -(d.YDim - d.ChairHeight)
	rows := []struct {
		name string
		z    float32
	}{{"back", -d.ZDim/2 + 2.55}, {"front", d.ZDim/2 + 0.55}}
	for _, row := range rows {
		for _, deskX := range []struct {
			name string
			x    float32
		}{{"left", -d.XDim / 2}, {"right", d.XDim / 2}} {
			prefix := row.name + "-" + deskX.name
			g.Add(
				chair(prefix+"-left", d, p.Coral, deskX.x-d.StudentDeskWidth/4, y, row.z, d.ChairBackHeight, 0.45),
				chair(prefix+"-right", d, p.Coral, deskX.x+d.StudentDeskWidth/4, y, row.z, d.ChairBackHeight, 0.45),
			)
		}
	}
	return g
}

func whiteboard(d Dimensions, p Palette) *Node {
	w, h := d.WhiteboardWidth, d.WhiteboardHeight
	return at("whiteboard", 2, 0, -d.ZDim+d.WallThickness/2+0.05).Add(
		box("left-border", p.DarkGrey, -w/2, 0, 0, 0.1, h+0.1, 0.11),
		box("right-border", p.DarkGrey, w/2, 0, 0, 0.1, h+0.1, 0.11),
		box("top-border", p.DarkGrey, 0, h/2, 0, w+0.1, 0.1, 0.11),
		box("bottom-border", p.DarkGrey, 0, -h/2, 0, w+0.1, 0.1, 0.11),
		box("board", p.White, 0, 0, 0, w, h, 0.1),
	)
}

func windows(d Dimensions, p Palette) *Node {
	g := NewGroup("windows")
	frameX := d.WallThickness + 0.1
	for _, pos := range []struct {
		name string
		x, z float32
	}{
		{"left-front", -d.XDim, 5 * d.ZDim / 12},
		{"left-back", -d.XDim, -5 * d.ZDim / 12},
		{"right-front", d.XDim, 5 * d.ZDim / 12},
		{"right-back", d.XDim, -5 * d.ZDim / 12},
	} {
		g.Add(at(pos.name, pos.x, 0, pos.z).Add(
			box("slat", p.White, 0, 0, 0, 0.1, 0.1, d.ZDim/2),
			box("near-frame", p.White, 0, 0, -d.ZDim/4, frameX, 4*d.YDim/3+0.075, 0.3),
			box("far-frame", p.White, 0, 0, d.ZDim/4, frameX, 4*d.YDim/3+0.075, 0.3),
			box("top-frame", p.White, 0, 2*d.YDim/3, 0, frameX, 0.3, d.ZDim/2+0.3),
			box("bottom-frame", p.White, 0, -2*d.YDim/3, 0, frameX, 0.3, d.ZDim/2+0.3),
		))
	}
	return g
}

// LightBoxHeight is the y of the ceiling light boxes.
func LightBoxHeight(d Dimensions) float32 {
	return d.YDim - d.WallThickness/2 - 0.1
}

func lightBoxes(d Dimensions, p Palette) *Node {
	g := NewGroup("light-boxes")
	y := LightBoxHeight(d)
	for i, xz := range [][2]float32{{-2.5, -2.5}, {-2.5, 2.5}, {2.5, -2.5}, {2.5, 2.5}} {
		g.Add(box("light-box-"+string(rune('1'+i)), p.White, xz[0], y, xz[1], 1.5, 0.05, 1.5))
	}
	return g
}

func skirting(d Dimensions, p Palette) *Node {
	x := d.XDim - d.WallThickness/2 - 0.03
	yLow := -d.YDim + d.WallThickness/2 + 0.225
	yHigh := d.YDim - d.WallThickness/2 - 0.225
	zRear := -d.ZDim + d.WallThickness/2 + 0.1
	length := 2*d.ZDim - 0.01

	// the rear bottom board is split around the door
	doorLeft := d.DoorX - d.DoorWidth/2
	doorRight := d.DoorX + d.DoorWidth/2
	leftW := doorLeft + d.XDim
	rightW := d.XDim - doorRight

	return NewGroup("skirting").Add(
		box("left-bottom", p.White, -x, yLow, 0, 0.06, 0.45, length),
		box("left-top", p.White, -x, yHigh, 0, 0.06, 0.45, length),
		box("right-bottom", p.White, x, yLow, 0, 0.06, 0.45, length),
		box("right-top", p.White, x, yHigh, 0, 0.06, 0.45, length),
		box("rear-top", p.White, 0, yHigh, zRear, 2*d.XDim-0.01, 0.45, 0.06),
		box("rear-bottom-left", p.White, -d.XDim+leftW/2, yLow, zRear, leftW, 0.45, 0.06),
		box("rear-bottom-right", p.White, doorRight+rightW/2, yLow, zRear, rightW, 0.45, 0.06),
	)
}

// Materials lists the distinct materials of the subtree in first use order.
func Materials(root *Node) []*Material {
	var res []*Material
	seen := map[*Material]bool{}
	var collect func(n *Node)
	collect = func(n *Node) {
		if n.Material != nil && !seen[n.Material] {
			seen[n.Material] = true
			res = append(res, n.Material)
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(root)
	return res
}
