// Package mockhook is a local stand-in for the automation webhook.
//
// It accepts every request encoding the real endpoint sees (text JSON,
// dataurl JSON, multipart form, raw bytes with metadata headers) and
// answers in a configurable shape so the whole normalization surface can
// be exercised without a live deployment.
package mockhook

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"ai-multi/internal/models"

	"github.com/brianvoe/gofakeit/v5"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Shape selects the payload layout of the mock answers
type Shape string

const (
	// ShapeMap answers with a model-keyed object using response/latency.
	ShapeMap Shape = "map"
	// ShapeEnvelope wraps a list under "responses" using text/latencyMs.
	ShapeEnvelope Shape = "envelope"
	// ShapeList answers with a bare list.
	ShapeList Shape = "list"
	// ShapeScalar answers with a bare JSON string.
	ShapeScalar Shape = "scalar"
	// ShapeRaw answers with non-JSON text.
	ShapeRaw Shape = "raw"
)

// ParseShape validates a raw shape string
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeMap, ShapeEnvelope, ShapeList, ShapeScalar, ShapeRaw:
		return Shape(s), nil
	default:
		return "", fmt.Errorf("unknown shape %q (expected map, envelope, list, scalar or raw)", s)
	}
}

// decodedRequest is what the handler understood from any encoding
type decodedRequest struct {
	Prompt    string
	InputType string
	Models    []string
	FileName  string
	FileBytes int
}

// Server answers webhook calls in the configured shape
type Server struct {
	shape  Shape
	engine *gin.Engine
}

// New creates a mock webhook server
func New(shape Shape) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{shape: shape, engine: engine}
	engine.POST("/webhook/multi", s.handle)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the mock webhook on addr
func (s *Server) Run(addr string) error {
	logrus.WithFields(logrus.Fields{
		"addr":  addr,
		"shape": s.shape,
	}).Info("Mock webhook listening")
	return s.engine.Run(addr)
}

func (s *Server) handle(c *gin.Context) {
	req, err := s.decodeRequest(c)
	if err != nil {
		logrus.WithField("error", err).Warn("Mock webhook could not decode request")
		c.String(http.StatusBadRequest, "bad request: %v", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"input_type": req.InputType,
		"models":     req.Models,
		"prompt":     req.Prompt,
		"file_name":  req.FileName,
		"file_bytes": req.FileBytes,
	}).Debug("Mock webhook request decoded")

	if len(req.Models) == 0 {
		req.Models = []string{"gpt4o"}
	}

	switch s.shape {
	case ShapeEnvelope:
		list := make([]gin.H, 0, len(req.Models))
		for _, m := range req.Models {
			list = append(list, gin.H{
				"model":     m,
				"text":      gofakeit.HackerPhrase(),
				"latencyMs": fakeLatency(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"responses": list})
	case ShapeList:
		list := make([]gin.H, 0, len(req.Models))
		for _, m := range req.Models {
			list = append(list, gin.H{
				"model":    m,
				"response": gofakeit.HackerPhrase(),
				"latency":  fakeLatency(),
			})
		}
		c.JSON(http.StatusOK, list)
	case ShapeScalar:
		c.JSON(http.StatusOK, gofakeit.HackerPhrase())
	case ShapeRaw:
		c.String(http.StatusOK, "%s", gofakeit.HackerPhrase())
	default: // ShapeMap
		out := gin.H{}
		for _, m := range req.Models {
			out[m] = gin.H{
				"response": gofakeit.HackerPhrase(),
				"latency":  fakeLatency(),
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// decodeRequest branches on Content-Type the way the automation graph
// does: JSON bodies (text or dataurl), multipart forms, and raw bytes
// with metadata headers.
func (s *Server) decodeRequest(c *gin.Context) (*decodedRequest, error) {
	mediaType := c.ContentType()

	switch {
	case mediaType == "application/json":
		return decodeJSONBody(c)
	case mediaType == "multipart/form-data":
		return decodeMultipart(c)
	default:
		return decodeRawBody(c)
	}
}

func decodeJSONBody(c *gin.Context) (*decodedRequest, error) {
	var payload struct {
		Prompt    string   `json:"prompt"`
		Models    []string `json:"models"`
		InputType string   `json:"inputType"`
		FileName  string   `json:"fileName"`
		Data      string   `json:"data"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, fmt.Errorf("decode JSON body: %w", err)
	}
	return &decodedRequest{
		Prompt:    payload.Prompt,
		InputType: payload.InputType,
		Models:    payload.Models,
		FileName:  payload.FileName,
		FileBytes: len(payload.Data),
	}, nil
}

func decodeMultipart(c *gin.Context) (*decodedRequest, error) {
	req := &decodedRequest{
		Prompt:    c.PostForm("prompt"),
		InputType: c.PostForm("inputType"),
	}
	if encoded := c.PostForm("models"); encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &req.Models); err != nil {
			return nil, fmt.Errorf("decode models field: %w", err)
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	req.FileName = file.Filename
	req.FileBytes = int(file.Size)
	return req, nil
}

func decodeRawBody(c *gin.Context) (*decodedRequest, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read raw body: %w", err)
	}

	req := &decodedRequest{
		Prompt:    c.GetHeader("Prompt"),
		InputType: c.GetHeader("Input-Type"),
		FileName:  c.GetHeader("Filename"),
		FileBytes: len(body),
	}
	if encoded := c.GetHeader("Models"); encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &req.Models); err != nil {
			return nil, fmt.Errorf("decode Models header: %w", err)
		}
	}
	if req.InputType == "" {
		req.InputType = string(models.InputTypeText)
	}
	return req, nil
}

func fakeLatency() int {
	return 40 + rand.Intn(800)
}
