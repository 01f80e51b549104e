package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new generations
	DefaultCanvasWidth  float64 `json:"default_canvas_width"`
	DefaultCanvasHeight float64 `json:"default_canvas_height"`
	DefaultGap          float64 `json:"default_gap"`
	DefaultMaxAttempts  int     `json:"default_max_attempts"`
	DefaultBackground   string  `json:"default_background"`

	// Language model settings
	LLMProvider string `json:"llm_provider"` // "anthropic" or "local"
	LLMModel    string `json:"llm_model"`

	// Application preferences
	GalleryLimit  int      `json:"gallery_limit"` // max stored artworks, 0 = unlimited
	RecentExports []string `json:"recent_exports"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultCanvasWidth:  1024,
		DefaultCanvasHeight: 768,
		DefaultGap:          2.0,
		DefaultMaxAttempts:  500,
		DefaultBackground:   DefaultBackground,
		LLMProvider:         "anthropic",
		LLMModel:            "claude-sonnet-4-20250514",
		GalleryLimit:        200,
		RecentExports:       []string{},
		Theme:               "system",
	}
}
