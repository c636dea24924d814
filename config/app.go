package config

import (
	"errors"
	"os"
	"strings"
)

// VertexConfig holds the Gemini connection settings.
type VertexConfig struct {
	ProjectID    string
	Location     string
	DefaultModel string
}

func LoadVertexConfig() (VertexConfig, error) {
	cfg := VertexConfig{
		ProjectID:    os.Getenv("VERTEX_PROJECT_ID"),
		Location:     os.Getenv("VERTEX_LOCATION"),
		DefaultModel: os.Getenv("VERTEX_MODEL"),
	}
	if cfg.ProjectID == "" {
		return cfg, errors.New("VERTEX_PROJECT_ID environment variable is not set")
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-1.5-flash"
	}
	return cfg, nil
}

// CascadeConfig points at the face and pupil cascade files used by the
// proctoring detector.
type CascadeConfig struct {
	FaceFinderPath string
	PuplocPath     string
}

func LoadCascadeConfig() CascadeConfig {
	cfg := CascadeConfig{
		FaceFinderPath: os.Getenv("FACE_CASCADE_PATH"),
		PuplocPath:     os.Getenv("PUPLOC_CASCADE_PATH"),
	}
	if cfg.FaceFinderPath == "" {
		cfg.FaceFinderPath = "cascade/facefinder"
	}
	if cfg.PuplocPath == "" {
		cfg.PuplocPath = "cascade/puploc"
	}
	return cfg
}

// AllowedOrigins parses the comma separated CORS_ORIGINS value. Empty means
// allow any origin.
func AllowedOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
