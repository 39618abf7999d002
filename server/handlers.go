package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitalflux/vitalflux/gateway"
	"github.com/vitalflux/vitalflux/resolve"
)

// chatRequest is one user message from the chat panel.
type chatRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// chatResponse mirrors the chat transcript: Reply is always shown as the
// assistant message; Error is additionally raised through the shell's
// toast/alert presentation.
type chatResponse struct {
	SessionID string        `json:"sessionId"`
	Reply     string        `json:"reply"`
	Error     string        `json:"error,omitempty"`
	Widget    *StoredWidget `json:"widget,omitempty"`
}

// handleChat runs one generation for one user message. A session may have
// only one generation in flight; a second submission is rejected until the
// first resolves or fails.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondError(w, http.StatusBadRequest, "request must include non-empty text")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	if !s.store.BeginGeneration(req.SessionID) {
		respondError(w, http.StatusConflict, "a widget generation is already in progress for this session")
		return
	}
	defer s.store.EndGeneration(req.SessionID)

	cfg, err := s.gen.Generate(r.Context(), req.Text)
	if err != nil {
		// The request context may be gone (user navigated away); there is
		// no widget to discard, just nothing to report.
		if r.Context().Err() != nil {
			return
		}
		msg := "Sorry, I was unable to create that widget."
		var gerr *gateway.Error
		if errors.As(err, &gerr) {
			msg = gerr.Message
		}
		s.logger.Error("widget generation failed", "session", req.SessionID, "err", err)
		respondJSON(w, http.StatusOK, chatResponse{
			SessionID: req.SessionID,
			Reply:     msg,
			Error:     msg,
		})
		return
	}

	stored := s.store.Add(cfg)
	s.logger.Info("widget created", "session", req.SessionID, "widget", stored.ID, "chartType", cfg.ChartType)
	respondJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Reply:     fmt.Sprintf("✅ Widget created for %q.", cfg.Title),
		Widget:    &stored,
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"source": s.reg.Source(),
		"tables": s.reg.Tables(),
	})
}

func (s *Server) handleListWidgets(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"widgets": s.store.List()})
}

func (s *Server) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	wdg, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "widget not found")
		return
	}
	respondJSON(w, http.StatusOK, wdg)
}

func (s *Server) handleDeleteWidget(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "widget not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetStyle updates a widget's color overlay. The config stays
// untouched; the overlay only affects future binding responses.
func (s *Server) handleSetStyle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid style payload")
		return
	}
	wdg, ok := s.store.SetColor(chi.URLParam(r, "id"), req.Color)
	if !ok {
		respondError(w, http.StatusNotFound, "widget not found")
		return
	}
	respondJSON(w, http.StatusOK, wdg)
}

// bindingResponse is the render-time payload for one widget. When the
// config has no resolvable values the widget is not yet ready and the
// shell renders the placeholder instead of an error.
type bindingResponse struct {
	Ready       bool                       `json:"ready"`
	Placeholder string                     `json:"placeholder,omitempty"`
	Binding     *resolve.RenderableBinding `json:"binding,omitempty"`
}

// handleBindings resolves a widget's string references into chart
// bindings. Bindings are recomputed on every call, never cached.
func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	wdg, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "widget not found")
		return
	}

	binding := resolve.New(s.reg).DataOptions(wdg.Config)
	if !binding.Ready() {
		respondJSON(w, http.StatusOK, bindingResponse{
			Ready:       false,
			Placeholder: resolve.PlaceholderMessage,
		})
		return
	}

	styled := resolve.ApplyStyle(binding, resolve.StyleOptions{Color: wdg.Color})
	respondJSON(w, http.StatusOK, bindingResponse{Ready: true, Binding: &styled})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
