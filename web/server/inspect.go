package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	GeometryType string         `json:"geometryType"`
	Point        [3]float32     `json:"point"`
	Normal       [3]float32     `json:"normal"`
	Distance     float32        `json:"distance"`
	Material     *MaterialInfo  `json:"material,omitempty"`
	Properties   map[string]any `json:"properties"`
}

// MaterialInfo describes the material at an inspected point
type MaterialInfo struct {
	Color           string  `json:"color"`
	Diffuse         float32 `json:"diffuse"`
	Specular        float32 `json:"specular"`
	SpecularExp     float32 `json:"specularExp"`
	Reflectiveness  float32 `json:"reflectiveness"`
	Refractiveness  float32 `json:"refractiveness"`
	RefractiveIndex float32 `json:"refractiveIndex"`
}

// extractMaterialInfo flattens a material for JSON
func extractMaterialInfo(m material.Material) *MaterialInfo {
	return &MaterialInfo{
		Color:           fmt.Sprintf("#%02x%02x%02x", m.BaseColor.R, m.BaseColor.G, m.BaseColor.B),
		Diffuse:         m.DiffuseReflection,
		Specular:        m.SpecularReflection,
		SpecularExp:     m.SpecularExp,
		Reflectiveness:  m.Reflectiveness,
		Refractiveness:  m.Refractiveness,
		RefractiveIndex: m.RefractiveIndex,
	}
}

// extractGeometryInfo extracts the shape kind and its parameters
func extractGeometryInfo(shape *geometry.Shape) (string, map[string]any) {
	properties := make(map[string]any)

	if sp, ok := shape.Sphere(); ok {
		properties["center"] = sp.Center
		properties["radius"] = sp.Radius
	} else if p, ok := shape.Plane(); ok {
		properties["point"] = p.Point
		properties["normal"] = p.Normal
	} else if d, ok := shape.Disc(); ok {
		properties["center"] = d.Center
		properties["normal"] = d.Normal
		properties["radius"] = d.Radius
	} else if b, ok := shape.Box(); ok {
		properties["min"] = b.Min
		properties["max"] = b.Max
	}

	return shape.Kind().String(), properties
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Record geometry.RayHit
	Shape  *geometry.Shape // The actual shape that was hit
}

// inspectPixel casts the primary ray through pixel (px, py) and returns the
// nearest shape it hits
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, width, height, px, py int) InspectResult {
	ray := camera.GetRay(px, py, width, height)

	result := InspectResult{Record: geometry.NoHit()}
	for i := range sceneObj.Shapes {
		if hit, ok := sceneObj.Shapes[i].Hit(ray); ok && hit.Distance < result.Record.Distance {
			result = InspectResult{Hit: true, Record: hit, Shape: &sceneObj.Shapes[i]}
		}
	}
	return result
}

// handleInspect handles object inspection requests at a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := parseFrameRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	px, err := parseIntParam(query, "px", -1, 0, req.Width-1)
	if err != nil || px < 0 {
		writeError(w, http.StatusBadRequest, "Invalid or missing px coordinate")
		return
	}
	py, err := parseIntParam(query, "py", -1, 0, req.Height-1)
	if err != nil || py < 0 {
		writeError(w, http.StatusBadRequest, "Invalid or missing py coordinate")
		return
	}

	sceneObj, _, err := scene.ByName(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown scene: "+req.Scene)
		return
	}

	camera := renderer.NewCamera(req.Origin, req.FOV)
	result := inspectPixel(sceneObj, camera, req.Width, req.Height, px, py)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Properties: map[string]any{}})
		return
	}

	geometryType, properties := extractGeometryInfo(result.Shape)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        result.Record.Point,
		Normal:       result.Record.Normal,
		Distance:     result.Record.Distance,
		Material:     extractMaterialInfo(result.Record.Material),
		Properties:   properties,
	})
}
