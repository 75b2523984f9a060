package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string // Registry key
	DisplayName string // Human readable name
	Description string // One line summary
	Integrator  string // Integrator the scene is designed for
}

type sceneEntry struct {
	info  SceneInfo
	build func(width, height int) *Scene
}

var builtInScenes = map[string]sceneEntry{
	"spheres": {
		info: SceneInfo{
			Description: "Spheres on a checkerboard lit by two point lights",
			Integrator:  "whitted",
		},
		build: NewSpheresScene,
	},
	"shadow": {
		info: SceneInfo{
			Description: "A sphere casting a hard shadow on a plane",
			Integrator:  "whitted",
		},
		build: NewShadowScene,
	},
	"csg": {
		info: SceneInfo{
			Description: "Implicit surfaces: rounded cube and tilted torus",
			Integrator:  "whitted",
		},
		build: NewCSGScene,
	},
	"cornell": {
		info: SceneInfo{
			Description: "Cornell box with a ceiling light panel",
			Integrator:  "montecarlo",
		},
		build: NewCornellScene,
	},
	"furnace": {
		info: SceneInfo{
			Description: "Diffuse plane inside an emissive sphere, radiance known in closed form",
			Integrator:  "montecarlo",
		},
		build: NewFurnaceScene,
	},
}

// New builds the built-in scene with the given name for an image of width × height pixels
func New(name string, width, height int) (*Scene, error) {
	entry, ok := builtInScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return entry.build(width, height), nil
}

// Lookup returns the description of a built-in scene
func Lookup(name string) (SceneInfo, bool) {
	entry, ok := builtInScenes[name]
	if !ok {
		return SceneInfo{}, false
	}
	info := entry.info
	info.Name = name
	info.DisplayName = titleCase(name)
	return info, true
}

// Names returns the names of the built-in scenes in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns every built-in scene sorted by name
func ListScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		info, _ := Lookup(name)
		scenes = append(scenes, info)
	}
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
