package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits shared by parsing and /api/scene-config
const (
	minImageSize = 1
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 500
	maxGamma     = 5.0
)

// Server handles web requests for the path tracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a web server. A non-empty staticDir is served at "/".
func NewServer(port int, staticDir string) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	if staticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Handler returns the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client.
// Zero sizes, samples and depth use the scene's recommendation.
type RenderRequest struct {
	Scene   string  `json:"scene"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Samples int     `json:"samples"`
	Depth   int     `json:"depth"`
	Seed    int64   `json:"seed"`
	Gamma   float64 `json:"gamma"`
	Normals bool    `json:"normals"`
}

// RenderingPipeline contains the configured scene, camera and raytracer
type RenderingPipeline struct {
	Name      string
	Scene     *scene.Scene
	Camera    *geometry.Camera
	Config    renderer.Config
	Raytracer *renderer.Raytracer
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the registered scene presets
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// handleSceneConfig returns the recommended settings for a scene along with request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneName
	}

	sceneObj, err := scene.New(sceneName, scene.Options{})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sampling := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           sampling.Width,
			"height":          sampling.Height,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxDepth":        sampling.MaxDepth,
			"gamma":           renderer.DefaultConfig().Gamma,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":  map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
			"gamma":   map[string]float64{"min": 0, "max": maxGamma},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates the query parameters shared by
// the render and inspect endpoints
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneName
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(values, "gamma", renderer.DefaultConfig().Gamma, 0, maxGamma); err != nil {
		return nil, err
	}

	req.Seed = renderer.DefaultConfig().Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	if value := values.Get("normals"); value != "" {
		if req.Normals, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid normals: %s", value)
		}
	}

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// settings converts a request into render settings
func (req *RenderRequest) settings() config.Settings {
	settings := config.Default()
	settings.Scene = req.Scene
	settings.Render.Width = req.Width
	settings.Render.Height = req.Height
	settings.Render.SamplesPerPixel = req.Samples
	settings.Render.MaxDepth = req.Depth
	settings.Render.Seed = req.Seed
	settings.Render.Gamma = req.Gamma
	return settings
}

// setupRenderingPipeline creates and configures the scene, camera and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	settings := req.settings()

	sceneObj, err := scene.New(settings.Scene, scene.Options{Seed: settings.Render.Seed})
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Printf("Using %s scene (%d primitives)\n", settings.Scene, sceneObj.GetPrimitiveCount())
	}

	renderConfig := settings.RenderConfig(sceneObj.SamplingConfig)
	camera, err := geometry.NewCamera(sceneObj.CameraConfig.WithImageSize(renderConfig.Width, renderConfig.Height))
	if err != nil {
		return nil, err
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, camera, renderConfig, logger)
	if err != nil {
		return nil, err
	}
	if req.Normals {
		raytracer.SetIntegrator(integrator.NewNormalIntegrator())
	}

	return &RenderingPipeline{
		Name:      settings.Scene,
		Scene:     sceneObj,
		Camera:    camera,
		Config:    renderConfig,
		Raytracer: raytracer,
	}, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
