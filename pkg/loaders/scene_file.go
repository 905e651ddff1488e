package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// maxSceneFileSize bounds how much of a scene file is read
const maxSceneFileSize = 4 << 20

// CameraCfg describes the view a scene file recommends. Zero values mean
// "use the caller's default".
type CameraCfg struct {
	Origin core.Vec3 `json:"origin"`
	FOV    float32   `json:"fov,omitempty"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
}

// RGB is a color written as [r, g, b] with 0-255 channels
type RGB [3]int

// MaterialCfg is either a preset name, inline coefficients, or a preset
// with some coefficients overridden
type MaterialCfg struct {
	Preset      string   `json:"preset,omitempty"`
	Color       *RGB     `json:"color,omitempty"`
	Diffuse     *float32 `json:"diffuse,omitempty"`
	Specular    *float32 `json:"specular,omitempty"`
	SpecularExp *float32 `json:"specularExp,omitempty"`
	Reflect     *float32 `json:"reflect,omitempty"`
	Refract     *float32 `json:"refract,omitempty"`
	IOR         *float32 `json:"ior,omitempty"`
}

type SphereCfg struct {
	Center   core.Vec3 `json:"center"`
	Radius   float32   `json:"radius"`
	Material string    `json:"material,omitempty"`
}

type PlaneCfg struct {
	Point    core.Vec3 `json:"point"`
	Normal   core.Vec3 `json:"normal"`
	Material string    `json:"material,omitempty"`
}

type DiscCfg struct {
	Center   core.Vec3 `json:"center"`
	Normal   core.Vec3 `json:"normal"`
	Radius   float32   `json:"radius"`
	Material string    `json:"material,omitempty"`
}

// BoxCfg corners may be given in any order
type BoxCfg struct {
	Min      core.Vec3 `json:"min"`
	Max      core.Vec3 `json:"max"`
	Material string    `json:"material,omitempty"`
}

type LightCfg struct {
	Position  core.Vec3 `json:"position"`
	Intensity float32   `json:"intensity"`
}

// SceneFile is the JSON scene description
type SceneFile struct {
	Camera     CameraCfg              `json:"camera"`
	Background *RGB                   `json:"background,omitempty"`
	Materials  map[string]MaterialCfg `json:"materials,omitempty"`
	Spheres    []SphereCfg            `json:"spheres,omitempty"`
	Planes     []PlaneCfg             `json:"planes,omitempty"`
	Discs      []DiscCfg              `json:"discs,omitempty"`
	Boxes      []BoxCfg               `json:"boxes,omitempty"`
	Lights     []LightCfg             `json:"lights,omitempty"`
}

// ParseScene decodes and validates a scene description from r
func ParseScene(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(io.LimitReader(r, maxSceneFileSize))
	dec.DisallowUnknownFields()

	var f SceneFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadSceneFile reads and parses a .json scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return nil, fmt.Errorf("invalid file type %q: only .json scene files are allowed", filepath.Ext(filename))
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	f, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// Validate checks geometry and material references without building anything
func (f *SceneFile) Validate() error {
	var errs []error

	if f.Camera.FOV < 0 || f.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov must be in (0,180), got %v", f.Camera.FOV))
	}
	if f.Camera.Width < 0 || f.Camera.Height < 0 {
		errs = append(errs, fmt.Errorf("camera: negative size %dx%d", f.Camera.Width, f.Camera.Height))
	}
	if f.Background != nil {
		if err := f.Background.validate(); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}
	for name, m := range f.Materials {
		if _, err := m.Build(); err != nil {
			errs = append(errs, fmt.Errorf("material %q: %w", name, err))
		}
	}

	ref := func(kind string, i int, name string) {
		if _, err := f.material(name); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", kind, i, err))
		}
	}
	for i, s := range f.Spheres {
		if !(s.Radius > 0) {
			errs = append(errs, fmt.Errorf("spheres[%d]: radius must be positive, got %v", i, s.Radius))
		}
		ref("spheres", i, s.Material)
	}
	for i, p := range f.Planes {
		if p.Normal.LenSqr() == 0 {
			errs = append(errs, fmt.Errorf("planes[%d]: normal must be non-zero", i))
		}
		ref("planes", i, p.Material)
	}
	for i, d := range f.Discs {
		if !(d.Radius > 0) {
			errs = append(errs, fmt.Errorf("discs[%d]: radius must be positive, got %v", i, d.Radius))
		}
		if d.Normal.LenSqr() == 0 {
			errs = append(errs, fmt.Errorf("discs[%d]: normal must be non-zero", i))
		}
		ref("discs", i, d.Material)
	}
	for i, b := range f.Boxes {
		ref("boxes", i, b.Material)
	}
	for i, l := range f.Lights {
		if l.Intensity < 0 {
			errs = append(errs, fmt.Errorf("lights[%d]: intensity must not be negative, got %v", i, l.Intensity))
		}
	}

	return errors.Join(errs...)
}

// Build creates the scene described by the file
func (f *SceneFile) Build() (*scene.Scene, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := scene.NewScene()
	// Validate has already resolved every reference
	mat := func(name string) material.Material {
		m, _ := f.material(name)
		return m
	}

	for _, c := range f.Spheres {
		s.AddShape(geometry.NewSphere(c.Center, c.Radius, mat(c.Material)))
	}
	for _, c := range f.Planes {
		s.AddShape(geometry.NewPlane(c.Point, c.Normal, mat(c.Material)))
	}
	for _, c := range f.Discs {
		s.AddShape(geometry.NewDisc(c.Center, c.Normal, c.Radius, mat(c.Material)))
	}
	for _, c := range f.Boxes {
		s.AddShape(geometry.NewBox(c.Min, c.Max, mat(c.Material)))
	}
	for _, c := range f.Lights {
		s.AddLight(lights.NewPointLight(c.Position, c.Intensity))
	}

	core.Logger().Debug("scene file built", "shapes", len(s.Shapes), "lights", len(s.Lights))
	return s, nil
}

// BackgroundColor returns the background override, if any
func (f *SceneFile) BackgroundColor() (material.Color, bool) {
	if f.Background == nil {
		return material.Color{}, false
	}
	return f.Background.color(), true
}

// material resolves a reference: file-local names shadow presets and the
// empty name is the default material
func (f *SceneFile) material(name string) (material.Material, error) {
	if name == "" {
		return material.DefaultMaterial(), nil
	}
	if m, ok := f.Materials[name]; ok {
		return m.Build()
	}
	if m, ok := material.Preset(name); ok {
		return m, nil
	}
	return material.Material{}, fmt.Errorf("unknown material %q", name)
}

// Build resolves the preset (if any) and applies the overrides
func (m MaterialCfg) Build() (material.Material, error) {
	out := material.DefaultMaterial()
	if m.Preset != "" {
		p, ok := material.Preset(m.Preset)
		if !ok {
			return material.Material{}, fmt.Errorf("unknown preset %q", m.Preset)
		}
		out = p
	}

	if m.Color != nil {
		if err := m.Color.validate(); err != nil {
			return material.Material{}, err
		}
		out.BaseColor = m.Color.color()
	}
	set := func(dst *float32, src *float32) {
		if src != nil {
			*dst = *src
		}
	}
	set(&out.DiffuseReflection, m.Diffuse)
	set(&out.SpecularReflection, m.Specular)
	set(&out.SpecularExp, m.SpecularExp)
	set(&out.Reflectiveness, m.Reflect)
	set(&out.Refractiveness, m.Refract)
	set(&out.RefractiveIndex, m.IOR)

	return out, out.Validate()
}

func (c RGB) validate() error {
	for i, v := range c {
		if v < 0 || v > 255 {
			return fmt.Errorf("channel %d out of range [0,255]: %d", i, v)
		}
	}
	return nil
}

func (c RGB) color() material.Color {
	return material.RGB(uint8(c[0]), uint8(c[1]), uint8(c[2]))
}
