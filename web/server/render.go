package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Workers          int     `json:"workers"`
	PrimitiveCount   int     `json:"primitiveCount"`
	Luminance        float64 `json:"luminance"`
}

// RenderComplete is the payload of the final "complete" event
type RenderComplete struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// handleRender renders synchronously and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, NewWebLogger(nil))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := pipeline.Raytracer.Render(r.Context())
	if err != nil {
		// Client went away; nothing useful can be written
		log.Printf("Render aborted: %v", err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToRGBA(pipeline.Config.Gamma)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.FormatInt(stats.TotalSamples, 10))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleRenderStream renders while streaming console output via SSE, then
// sends the finished image in a "complete" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	startTime := time.Now()

	// Single writer goroutine; the handler must not return before it does.
	// The writer cancels ctx when it stops, so no sender or render outlives it.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	streamDone := make(chan struct{})
	go func() {
		defer close(streamDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	var img *renderer.Image
	var stats renderer.RenderStats
	if err == nil {
		img, stats, err = pipeline.Raytracer.Render(ctx)
	}

	// Rendering is over, so nothing logs to consoleChan any more
	close(consoleChan)
	<-streamDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}
	s.handleRenderComplete(ctx, sseEventChan, pipeline, img, stats, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	return consoleChan, NewWebLogger(consoleChan)
}

// writeSSEEvents writes every event until the channel closes or the client disconnects
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			// Keep draining so the logger never blocks
		}
	}
}

// handleRenderComplete encodes the final image and sends the "complete" event
func (s *Server) handleRenderComplete(ctx context.Context, sseEventChan chan<- SSEEvent, pipeline *RenderingPipeline,
	img *renderer.Image, stats renderer.RenderStats, startTime time.Time) {

	imageData, err := imageToBase64PNG(img.ToRGBA(pipeline.Config.Gamma))
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	update := RenderComplete{
		Scene:     pipeline.Name,
		Width:     img.Width,
		Height:    img.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     stats.TotalSamples,
			AverageSamples:   stats.AverageSamples,
			SamplesPerSecond: stats.SamplesPerSecond(),
			Workers:          stats.Workers,
			PrimitiveCount:   pipeline.Scene.GetPrimitiveCount(),
			Luminance:        renderer.CalculateAverageLuminance(img),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("failed to encode result: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
