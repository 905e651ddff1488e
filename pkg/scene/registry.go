package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene and the view it was composed for
type SceneInfo struct {
	ID          string  `json:"id"`          // Unique identifier
	DisplayName string  `json:"displayName"` // UI display name
	Description string  `json:"description"` // Optional description
	Width       int     `json:"width"`       // Recommended image width
	Height      int     `json:"height"`      // Recommended image height
	FOV         float32 `json:"fov"`         // Recommended field of view in degrees
}

type builtin struct {
	info  SceneInfo
	build func() *Scene
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Ivory, rubber, mirror and glass spheres with a mirror disc and glass box",
			Width:       800, Height: 600, FOV: 120,
		},
		build: NewDefaultScene,
	},
	"single-sphere": {
		info: SceneInfo{
			ID:          "single-sphere",
			DisplayName: "Single Sphere",
			Description: "One white diffuse sphere and one light",
			Width:       400, Height: 400, FOV: 90,
		},
		build: NewSingleSphereScene,
	},
	"showcase": {
		info: SceneInfo{
			ID:          "showcase",
			DisplayName: "Showcase",
			Description: "Floor, wall, box, disc and four materials",
			Width:       640, Height: 360, FOV: 75,
		},
		build: NewShowcaseScene,
	},
}

// Builtins lists the built-in scenes sorted by ID
func Builtins() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// ByName builds a fresh copy of a built-in scene
func ByName(id string) (*Scene, SceneInfo, error) {
	b, ok := builtins[strings.ToLower(id)]
	if !ok {
		return nil, SceneInfo{}, fmt.Errorf("unknown scene %q", id)
	}
	return b.build(), b.info, nil
}
