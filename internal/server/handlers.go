package server

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BDNK1/stepkit/internal/harness"
	"github.com/BDNK1/stepkit/registry"
	"github.com/BDNK1/stepkit/stepapi"
)

func (s *Server) listSteps(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.List())
}

func (s *Server) getStep(c *gin.Context) {
	step, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, step.Manifest)
}

func (s *Server) initialInputs(c *gin.Context) {
	step, ok := s.lookup(c)
	if !ok {
		return
	}

	inputs, err := step.InitialInputs()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Error creating initial inputs", err)
		return
	}
	c.JSON(http.StatusOK, InputsResponse{Inputs: inputs})
}

func (s *Server) form(c *gin.Context) {
	step, ok := s.lookup(c)
	if !ok {
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Wrong request body format", err)
		return
	}

	fields, err := step.Form(req.Inputs, harness.FieldBuilders())
	if err != nil {
		s.inputError(c, err)
		return
	}

	s.metrics.formRenders.WithLabelValues(step.Manifest.ID).Inc()
	c.JSON(http.StatusOK, FormResponse{Fields: fields})
}

func (s *Server) validate(c *gin.Context) {
	step, ok := s.lookup(c)
	if !ok {
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Wrong request body format", err)
		return
	}

	vars := make(map[string]any, len(s.variables)+len(req.Variables))
	maps.Copy(vars, s.variables)
	maps.Copy(vars, req.Variables)

	logger := s.logger.With("step", step.Manifest.ID, "request_id", c.GetString(requestIDKey))
	validate := harness.NewValidate(harness.NewResolver(vars), logger)

	results, err := step.Validate(req.Inputs, validate)
	if err != nil {
		s.inputError(c, err)
		return
	}

	valid := stepapi.Valid(results)
	s.metrics.validations.WithLabelValues(step.Manifest.ID, outcome(valid)).Inc()
	c.JSON(http.StatusOK, ValidateResponse{Valid: valid, Results: results})
}

func (s *Server) lookup(c *gin.Context) (*registry.Step, bool) {
	step, err := s.registry.Get(c.Param("id"))
	if err != nil {
		s.fail(c, http.StatusNotFound, "Unknown step: "+c.Param("id"), err)
		return nil, false
	}
	return step, true
}

func (s *Server) inputError(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrInvalidInputs) {
		s.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	s.fail(c, http.StatusInternalServerError, "Error in step: "+err.Error(), err)
}

func (s *Server) fail(c *gin.Context, status int, message string, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(c.Request.Context(), level, "Request failed",
		"path", c.Request.URL.Path,
		"status", status,
		"request_id", c.GetString(requestIDKey),
		"error", err)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Message:   message,
		RequestID: c.GetString(requestIDKey),
	})
}
