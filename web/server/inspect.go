package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult describes the first surface along an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord core.HitRecord
	Primitive *geometry.Primitive // nil when no single primitive matches the hit
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(core.ClampFloat(c.X, 0, 1)*255), int(core.ClampFloat(c.Y, 0, 1)*255), int(core.ClampFloat(c.Z, 0, 1)*255))
}

// extractMaterialInfo describes a material by kind
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if mat == nil {
		return "unknown", properties
	}

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["textured"] = mat.Texture != nil
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	default:
		return "unknown", properties
	}
	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a primitive by kind
func extractGeometryInfo(p *geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if p == nil {
		return "unknown", properties
	}

	switch p.Kind {
	case geometry.KindSphere:
		properties["center"] = vecArray(p.Sphere.Center)
		properties["radius"] = p.Sphere.Radius
		return "sphere", properties
	case geometry.KindQuad:
		properties["corner"] = vecArray(p.Quad.Corner)
		properties["u"] = vecArray(p.Quad.U)
		properties["v"] = vecArray(p.Quad.V)
		properties["normal"] = vecArray(p.Quad.Normal)
		return "quad", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY)
// and reports the first surface it hits
func inspectPixel(world *scene.Scene, camera *geometry.Camera, width, height, pixelX, pixelY int) InspectResult {
	u, v := renderer.PixelToViewport(pixelX, pixelY, width, height, 0.5, 0.5)
	ray := camera.GetCenterRay(u, v)

	var hit core.HitRecord
	if !world.Hit(ray, integrator.HitEpsilon, math.Inf(1), &hit) {
		return InspectResult{Hit: false}
	}

	// The scene returns only the hit record, so find the primitive that produced it
	result := InspectResult{Hit: true, HitRecord: hit}
	for i := range world.Primitives {
		var candidate core.HitRecord
		p := &world.Primitives[i]
		if p.Hit(ray, integrator.HitEpsilon, math.Inf(1), &candidate) && candidate.T == hit.T {
			result.Primitive = p
			break
		}
	}
	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, height := pipeline.Config.Width, pipeline.Config.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(pipeline.Scene, pipeline.Camera, width, height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	mat, _ := pipeline.Scene.Material(result.HitRecord.Material)
	materialType, materialProps := extractMaterialInfo(mat)
	geometryType, geometryProps := extractGeometryInfo(result.Primitive)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
