package main

import "C"
import (
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"classroom/config"
	"classroom/controls"
	"classroom/lighting"
	"classroom/model"
	"classroom/renderer"
	"classroom/scene"
	"classroom/stl"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

//go:generate glslc shaders/classroom.vert -o shaders_spv/vert.spv
//go:generate glslc shaders/classroom.frag -o shaders_spv/frag.spv

const PROGRAM_NAME = "Classroom"

var (
	configPath = flag.String("config", "", "YAML file overriding the built in configuration")
	gltfPath   = flag.String("export-gltf", "", "write the scene graph as binary glTF to this file")
	stlPath    = flag.String("export-stl", "", "write the flattened classroom as binary STL to this file")
	headless   = flag.Bool("headless", false, "build, flatten and export the scene without opening a window")
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Printf("Starting %s", PROGRAM_NAME)
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

var keyMap = map[sdl.Keycode]controls.Key{
	sdl.K_LEFT:  controls.KeyLeft,
	sdl.K_RIGHT: controls.KeyRight,
	sdl.K_w:     controls.KeyW,
	sdl.K_a:     controls.KeyA,
	sdl.K_s:     controls.KeyS,
	sdl.K_d:     controls.KeyD,
	sdl.K_1:     controls.KeyLight1,
	sdl.K_2:     controls.KeyLight2,
	sdl.K_3:     controls.KeyLight3,
	sdl.K_4:     controls.KeyLight4,
}

// classroom is the per frame state the handlers of the render loop share.
type classroom struct {
	room   *scene.Node
	chairs *scene.Node
	ctl    *controls.Controls
	list   scene.DrawList
}

func (cr *classroom) onIteration(event sdl.Event, c *renderer.Core) {
	ev, ok := event.(*sdl.KeyboardEvent)
	if !ok {
		return
	}
	if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_p {
		log.Printf("Draw list of %d commands:\n%s", len(cr.list), cr.list)
		return
	}
	k, ok := keyMap[ev.Keysym.Sym]
	if !ok {
		return
	}
	switch ev.Type {
	case sdl.KEYDOWN:
		if err := cr.ctl.KeyDown(k, ev.Repeat != 0); err != nil {
			log.Printf("Key %s: %v", k, err)
		}
	case sdl.KEYUP:
		cr.ctl.KeyUp(k)
	}
}

func (cr *classroom) onDraw(elapsed time.Duration, c *renderer.Core) {
	angle := cr.ctl.Update(elapsed)
	cr.chairs.SetOffset(cr.ctl.Offset())
	root := scene.RootRotation(angle)

	list, err := scene.Flatten(cr.room, root)
	if err != nil {
		log.Printf("Keeping previous frame, flatten failed: %v", err)
		return
	}
	if err := c.SetDrawList(list); err != nil {
		log.Printf("Keeping previous frame, draw list rejected: %v", err)
		return
	}
	c.SetRoot(root)
	cr.list = list
}

func export(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	log.Printf("Exported %s", path)
	return f.Close()
}

func exportAll(room *scene.Node) error {
	if *gltfPath != "" {
		if err := export(*gltfPath, func(f *os.File) error { return scene.ExportGLTF(f, room) }); err != nil {
			return errors.Wrap(err, "gltf export")
		}
	}
	if *stlPath != "" {
		list, err := scene.Flatten(room, scene.RootRotation(0))
		if err != nil {
			return errors.Wrap(err, "stl export")
		}
		if err := export(*stlPath, func(f *os.File) error { return stl.WriteDrawList(f, list, scene.UnitCube()) }); err != nil {
			return errors.Wrap(err, "stl export")
		}
	}
	return nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration:\n%s", cfg.Dump())

	room := scene.BuildClassroom(cfg.Room, scene.DefaultPalette())
	if err := room.Validate(); err != nil {
		log.Fatalf("Invalid classroom: %v", err)
	}
	log.Printf("Built classroom with %d primitives", room.Count())
	if err := exportAll(room); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	if *headless {
		return
	}

	lights := lighting.NewSet(cfg.Lighting.Lights, cfg.Lighting.Ambient)
	cr := &classroom{
		room:   room,
		chairs: room.Find(scene.ChairGroup),
		ctl:    controls.New(lights, cfg.Controls.RotationSpeed, cfg.Controls.ChairStep),
	}
	if cr.chairs == nil {
		log.Fatalf("Classroom has no %q group", scene.ChairGroup)
	}

	core := renderer.NewRenderCore(cfg)
	core.Initialize(scene.Materials(room))
	core.SetLights(lights)
	if err := core.AddToScene(model.NewModel(model.NewCubeMesh(), scene.Cube)); err != nil {
		log.Panicf("Failed to upload %s: %v", scene.Cube, err)
	}
	core.Loop(
		cr.onIteration,
		cr.onDraw,
	)
	core.Destroy()
}
