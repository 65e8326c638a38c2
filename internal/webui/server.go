// Package webui serves the browser front end: a control form on the left,
// status line and result cards on the right. Each POST is one independent
// run; the page blocks and re-renders when the webhook answers.
package webui

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"ai-multi/internal/config"
	app_errors "ai-multi/internal/errors"
	"ai-multi/internal/models"
	"ai-multi/internal/runner"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server is the web UI host
type Server struct {
	cfg    *config.Config
	runner *runner.Runner
	engine *gin.Engine
}

// NewServer wires the gin engine with its middleware and routes
func NewServer(cfg *config.Config, run *runner.Runner) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(static.Serve("/assets", static.LocalFile("./assets", false)))

	s := &Server{cfg: cfg, runner: run, engine: engine}
	engine.GET("/", s.handleIndex)
	engine.POST("/run", s.handleRun)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving the UI on the configured address
func (s *Server) Start() error {
	logrus.WithField("addr", s.cfg.Addr()).Info("Web UI listening")
	return s.engine.Run(s.cfg.Addr())
}

func (s *Server) basePage() pageData {
	return pageData{
		Models:      models.AvailableModels(),
		MultiSelect: s.cfg.SelectionMode == config.SelectionMulti,
		InputTypes:  []string{"text", "image", "audio"},
		InputType:   "text",
		Selected:    map[string]bool{},
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderHTML(c, http.StatusOK, s.basePage())
}

func (s *Server) handleRun(c *gin.Context) {
	data := s.basePage()

	in, err := s.parseForm(c, &data)
	if err == nil {
		var result *models.RunResult
		result, err = s.runner.Run(c.Request.Context(), in)
		if err == nil {
			s.respondSuccess(c, data, result)
			return
		}
	}
	s.respondError(c, data, err)
}

// parseForm reads the submitted form (urlencoded or multipart) into run
// input, keeping the page state sticky for the re-render.
func (s *Server) parseForm(c *gin.Context, data *pageData) (models.Input, error) {
	in := models.Input{
		Prompt: c.PostForm("prompt"),
	}
	data.Prompt = in.Prompt

	rawType := c.DefaultPostForm("inputType", "text")
	inputType, err := models.ParseInputType(rawType)
	if err != nil {
		return in, app_errors.NewValidationError("%v", err)
	}
	in.Type = inputType
	data.InputType = string(inputType)

	if s.cfg.SelectionMode == config.SelectionMulti {
		in.Models = c.PostFormArray("models")
	} else if id := c.PostForm("model"); id != "" {
		in.Models = []string{id}
	}
	for _, id := range in.Models {
		data.Selected[id] = true
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// no attachment; the encoder decides whether that is acceptable
		return in, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return in, app_errors.NewValidationError("open upload %s: %v", fileHeader.Filename, err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxFileSize+1))
	if err != nil {
		return in, app_errors.NewValidationError("read upload %s: %v", fileHeader.Filename, err)
	}
	in.File = &models.FileUpload{
		Name: fileHeader.Filename,
		MIME: fileHeader.Header.Get("Content-Type"),
		Data: fileBytes,
	}
	return in, nil
}

func (s *Server) respondSuccess(c *gin.Context, data pageData, result *models.RunResult) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"runId":     result.RunID,
			"elapsedMs": result.Elapsed.Milliseconds(),
			"records":   result.Records,
		})
		return
	}

	data.Status = fmt.Sprintf("Success — %.2fs", result.Elapsed.Seconds())
	data.StatusOK = true
	data.Records = result.Records
	s.renderHTML(c, http.StatusOK, data)
}

func (s *Server) respondError(c *gin.Context, data pageData, err error) {
	status := http.StatusBadGateway
	switch {
	case app_errors.IsValidation(err):
		status = http.StatusBadRequest
	case app_errors.IsConfig(err):
		status = http.StatusInternalServerError
	}

	if wantsJSON(c) {
		if httpErr, ok := app_errors.AsHTTP(err); ok {
			c.JSON(status, gin.H{
				"error":          httpErr.Error(),
				"upstreamStatus": httpErr.StatusCode,
				"upstreamBody":   httpErr.Body,
			})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if httpErr, ok := app_errors.AsHTTP(err); ok {
		data.Status = fmt.Sprintf("Error %d — %s", httpErr.StatusCode, httpErr.Body)
	} else {
		data.Status = err.Error()
	}
	s.renderHTML(c, status, data)
}

func (s *Server) renderHTML(c *gin.Context, status int, data pageData) {
	page, err := renderPage(data)
	if err != nil {
		logrus.WithField("error", err).Error("Failed to render page")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", page)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
