package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/artfoundry/canvaspack/internal/logger"
	"github.com/artfoundry/canvaspack/internal/model"
)

const maxParseRetries = 1

const systemPrompt = `You translate art descriptions into a JSON configuration for an abstract rectangle-art generator.

Respond with ONLY a JSON object, no prose, in this exact shape:
{
  "color": "#rrggbb",
  "count": <number of rectangles, 1-500>,
  "min_size": <minimum side length in px, 1-400>,
  "max_size": <maximum side length in px, 1-400>,
  "zones": [
    {"shape": "circle", "cx": <x>, "cy": <y>, "radius": <r>, "color": "#rrggbb"},
    {"shape": "rectangle", "x": <x>, "y": <y>, "w": <w>, "h": <h>, "color": "#rrggbb"}
  ]
}

Pick colors and zone placement that evoke the description. The canvas is %.0f x %.0f pixels. Omit "zones" if the description implies a single color.`

// Interpreter maps free-text prompts to sanitized generation configs.
type Interpreter struct {
	client Client
	log    *logger.Logger
}

// NewInterpreter creates an Interpreter. A nil log falls back to the default
// logger.
func NewInterpreter(client Client, log *logger.Logger) *Interpreter {
	if log == nil {
		log = logger.Default()
	}
	return &Interpreter{
		client: client,
		log:    log.WithPrefix("interpreter"),
	}
}

// Interpret sends the description to the language model and parses the reply
// into a GenerationConfig. Parse failures are retried once with the error
// fed back to the model. The returned config is always sanitized.
func (in *Interpreter) Interpret(ctx context.Context, width, height float64, description string) (model.GenerationConfig, error) {
	done := in.log.Step("interpreting prompt")
	defer done()

	system := fmt.Sprintf(systemPrompt, width, height)
	messages := []Message{{Role: "user", Content: description}}

	var lastErr error
	for attempt := 0; attempt <= maxParseRetries; attempt++ {
		content, err := in.client.Complete(ctx, system, messages)
		if err != nil {
			return model.GenerationConfig{}, fmt.Errorf("LLM request failed: %w", err)
		}

		cfg, err := ParseConfig(content)
		if err != nil {
			lastErr = err
			if attempt < maxParseRetries {
				in.log.Warn("parse error (attempt %d/%d): %v", attempt+1, maxParseRetries+1, err)
				messages = append(messages,
					Message{Role: "assistant", Content: content},
					Message{Role: "user", Content: fmt.Sprintf("That was not valid JSON (%v). Reply with only the JSON object.", err)},
				)
				continue
			}
			break
		}

		sanitized := cfg.Sanitize()
		in.log.Debug("config: count=%d sizes=[%d,%d] zones=%d",
			sanitized.Count, sanitized.MinSize, sanitized.MaxSize, len(sanitized.Zones))
		return sanitized, nil
	}

	return model.GenerationConfig{}, fmt.Errorf("parse failed after %d attempts: %w", maxParseRetries+1, lastErr)
}

// ParseConfig extracts and unmarshals the JSON object from a model reply.
// Code fences and surrounding prose are tolerated.
func ParseConfig(reply string) (model.GenerationConfig, error) {
	raw := extractJSON(reply)
	if raw == "" {
		return model.GenerationConfig{}, fmt.Errorf("no JSON object found in reply")
	}

	var cfg model.GenerationConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return model.GenerationConfig{}, fmt.Errorf("invalid config JSON: %w", err)
	}
	return cfg, nil
}

// extractJSON returns the first top-level {...} block in s, or "".
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
