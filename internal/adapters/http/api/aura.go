package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gitaura/gitaura/internal/adapters/github"
	"github.com/gitaura/gitaura/internal/app"
	"github.com/gitaura/gitaura/internal/domain/stats"
)

// Canvas bounds accepted from query parameters.
const (
	minCanvas     = 64
	maxCanvas     = 4096
	defaultCanvas = 800
)

// AuraHandler serves rendered auras.
type AuraHandler struct {
	deps Dependencies
}

// NewAuraHandler creates a new aura handler.
func NewAuraHandler(deps Dependencies) *AuraHandler {
	return &AuraHandler{deps: deps}
}

// HandleGetAura handles GET /aura/{login}.svg requests. Optional query
// parameters: w and h (pixels, 64-4096), animate (default true).
func (h *AuraHandler) HandleGetAura(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	login := strings.TrimPrefix(r.URL.Path, "/aura/")
	login = strings.TrimSuffix(login, ".svg")
	if login == "" || strings.Contains(login, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing or malformed login"))
		return
	}

	req := app.Request{
		Login:   login,
		Width:   defaultCanvas,
		Height:  defaultCanvas,
		Animate: true,
	}

	var err error
	if req.Width, err = canvasParam(r, "w", req.Width); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Height, err = canvasParam(r, "h", req.Height); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if v := r.URL.Query().Get("animate"); v != "" {
		req.Animate, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("animate must be a boolean"))
			return
		}
	}

	doc, err := h.deps.Aura(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, github.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err)
		return
	case errors.Is(err, stats.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_stats", err)
		return
	default:
		writeError(w, http.StatusBadGateway, "generation_failed", err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(doc)
}

func canvasParam(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minCanvas || n > maxCanvas {
		return 0, errors.New(key + " must be an integer between 64 and 4096")
	}
	return n, nil
}
