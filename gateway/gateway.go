package gateway

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/vitalflux/vitalflux/schema"
	"github.com/vitalflux/vitalflux/widget"
)

// ============================================================================
// WIDGET GENERATION GATEWAY — The only component that calls the AI service
// ============================================================================
// One outbound call per user message, no automatic retry. The model's text
// is never executed or interpreted as code: the gateway extracts a JSON
// payload, and everything inside it goes through the validator and the
// fixed reference grammar.
// ============================================================================

// AllowedModels lists acceptable model names, cheapest and stable first.
var AllowedModels = []string{
	"gemini-2.5-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-pro",
}

// Config holds gateway configuration.
type Config struct {
	APIKey   string // AI provider API key
	Model    string // must be in AllowedModels, else the default is used
	Endpoint string // API endpoint override (empty = Gemini default)
}

// DefaultConfig returns a Config with the default model and endpoint.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:   apiKey,
		Model:    AllowedModels[0],
		Endpoint: defaultEndpoint,
	}
}

// Error is a user-displayable generation failure. Message is shown
// verbatim in the chat transcript; Cause carries the underlying error for
// logs only.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// Gateway turns user text into validated widget configs. The registry is
// an explicit dependency: prompt building and validation both read it.
type Gateway struct {
	cfg    Config
	reg    *schema.Registry
	client *http.Client
}

// New creates a gateway. An unknown model name silently falls back to the
// cheapest allowed model.
func New(cfg Config, reg *schema.Registry) *Gateway {
	if !allowedModel(cfg.Model) {
		cfg.Model = AllowedModels[0]
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &Gateway{
		cfg: cfg,
		reg: reg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Generate asks the model for a widget config for the user's request and
// returns it validated and repaired. Every failure is a *Error whose
// message can be shown to the user as-is; no partial widget ever escapes.
func (g *Gateway) Generate(ctx context.Context, userText string) (widget.Config, error) {
	prompt := BuildPrompt(g.reg, userText)

	log.Printf("🔄 VitalFlux gateway: model=%s request=%q", g.cfg.Model, truncate(userText, 80))

	text, err := g.generateText(ctx, prompt)
	if err != nil {
		return widget.Config{}, &Error{
			Message: "The AI assistant could not be reached. Please try again in a moment.",
			Cause:   err,
		}
	}

	payload, ok := ExtractObject(text)
	if !ok {
		return widget.Config{}, &Error{
			Message: "No JSON object found in the model response.",
		}
	}

	cfg, err := widget.Normalize(g.reg, payload)
	if err != nil {
		var verr *widget.ValidationError
		if errors.As(err, &verr) {
			return widget.Config{}, &Error{Message: verr.Message, Cause: verr}
		}
		return widget.Config{}, &Error{
			Message: "The AI response did not contain a valid widget config.",
			Cause:   err,
		}
	}

	log.Printf("✅ VitalFlux gateway: chartType=%s title=%q", cfg.ChartType, cfg.Title)
	return cfg, nil
}

func allowedModel(name string) bool {
	for _, m := range AllowedModels {
		if m == name {
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
