// Package models defines the domain types shared across the client
package models

import (
	"fmt"
	"time"
)

// InputType identifies the modality of a run
type InputType string

const (
	InputTypeText  InputType = "text"
	InputTypeImage InputType = "image"
	InputTypeAudio InputType = "audio"
)

// ParseInputType validates a raw input type string
func ParseInputType(s string) (InputType, error) {
	switch InputType(s) {
	case InputTypeText, InputTypeImage, InputTypeAudio:
		return InputType(s), nil
	default:
		return "", fmt.Errorf("unknown input type: %q (expected text, image or audio)", s)
	}
}

// RequiresFile reports whether this modality needs an uploaded file
func (t InputType) RequiresFile() bool {
	return t == InputTypeImage || t == InputTypeAudio
}

// ResultRecord is the uniform per-model display record produced by normalization.
// All three fields are always populated; see the normalize package for the
// fallback rules.
type ResultRecord struct {
	Model    string  `json:"model"`
	Response string  `json:"response"`
	Latency  float64 `json:"latency"`
}

// FileUpload carries the optional attachment of a run
type FileUpload struct {
	Name string
	MIME string
	Data []byte
}

// Input is everything a single run needs
type Input struct {
	Type   InputType
	Prompt string
	Models []string
	File   *FileUpload
}

// RunResult is the outcome of one successful run
type RunResult struct {
	RunID   string
	Records []ResultRecord
	Elapsed time.Duration
}
