package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/kdduha/burnmaster/internal/models"
	"github.com/kdduha/burnmaster/internal/service"
	"go.uber.org/zap"
)

const SessionHeader = "X-Session-ID"

type roastService interface {
	Generate(ctx context.Context, settings models.RoastSettings) (*models.GeneratedRoast, error)
	GenerateStream(ctx context.Context, settings models.RoastSettings) (<-chan models.RoastEvent, error)
}

type HistoryStore interface {
	Push(ctx context.Context, sessionID string, roast models.GeneratedRoast) error
	List(ctx context.Context, sessionID string) ([]models.GeneratedRoast, error)
	Clear(ctx context.Context, sessionID string) error
}

type RoastHandler struct {
	logger       *zap.Logger
	service      roastService
	history      HistoryStore
	inflight     *inflightGuard
	maxBodyBytes int64
}

func NewRoastHandler(logger *zap.Logger, svc roastService, store HistoryStore, maxBodyBytes int64) *RoastHandler {
	return &RoastHandler{
		logger:       logger,
		service:      svc,
		history:      store,
		inflight:     newInflightGuard(),
		maxBodyBytes: maxBodyBytes,
	}
}

// Roast godoc
// @Summary Generate a roast
// @Description Builds a roast from the settings. With an image, also tries to draw a caricature; a failed caricature never fails the request.
// @Tags roast
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id; generated when absent"
// @Param request body models.RoastSettings true "Roast settings"
// @Success 200 {object} models.GeneratedRoast
// @Failure 400 {string} string
// @Failure 409 {string} string
// @Failure 413 {string} string
// @Failure 502 {string} string
// @Router /roast [post]
func (h *RoastHandler) Roast(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromRequest(w, r)

	settings, ok := h.decodeSettings(w, r)
	if !ok {
		return
	}

	if !h.inflight.acquire(sessionID) {
		h.writeError(w, ErrSessionBusy)
		return
	}
	defer h.inflight.release(sessionID)

	roast, err := h.service.Generate(r.Context(), settings)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.remember(r.Context(), sessionID, roast)

	writeJSON(w, http.StatusOK, roast)
}

// RoastStream godoc
// @Summary Stream a roast
// @Description Same as /roast, reported as server-sent events: text, caricature, then done (or error).
// @Tags roast
// @Accept json
// @Produce text/event-stream
// @Param X-Session-ID header string false "Session id; generated when absent"
// @Param request body models.RoastSettings true "Roast settings"
// @Success 200 {object} models.RoastEvent "Stream of roast events (SSE)"
// @Failure 400 {string} string
// @Failure 409 {string} string
// @Failure 413 {string} string
// @Router /roast/stream [post]
func (h *RoastHandler) RoastStream(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromRequest(w, r)

	settings, ok := h.decodeSettings(w, r)
	if !ok {
		return
	}

	if !h.inflight.acquire(sessionID) {
		h.writeError(w, ErrSessionBusy)
		return
	}
	defer h.inflight.release(sessionID)

	stream, err := h.service.GenerateStream(r.Context(), settings)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher := http.NewResponseController(w)

	for ev := range stream {
		if ev.Type == models.EventError {
			data, _ := sonic.Marshal(map[string]string{"error": ev.Err.Error()})
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
			_ = flusher.Flush()
			return
		}

		if ev.Type == models.EventDone && ev.Roast != nil {
			h.remember(r.Context(), sessionID, ev.Roast)
		}

		data, err := sonic.Marshal(ev)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: {\"error\":\"marshal error\"}\n\n")
			_ = flusher.Flush()
			return
		}

		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
		_ = flusher.Flush()
	}
}

// History godoc
// @Summary Session history
// @Description Most recent roasts of the session, newest first.
// @Tags history
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {array} models.GeneratedRoast
// @Failure 500 {string} string
// @Router /history [get]
func (h *RoastHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromRequest(w, r)

	entries, err := h.history.List(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ClearHistory godoc
// @Summary Clear session history
// @Tags history
// @Param X-Session-ID header string false "Session id"
// @Success 204
// @Failure 500 {string} string
// @Router /history [delete]
func (h *RoastHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionFromRequest(w, r)

	if err := h.history.Clear(r.Context(), sessionID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Options godoc
// @Summary Available styles and focuses
// @Tags roast
// @Produce json
// @Success 200 {object} models.OptionsResponse
// @Router /options [get]
func (h *RoastHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.AvailableOptions())
}

// remember stores a finished roast. A failed write is logged, the roast is
// still returned to the caller.
func (h *RoastHandler) remember(ctx context.Context, sessionID string, roast *models.GeneratedRoast) {
	if err := h.history.Push(context.WithoutCancel(ctx), sessionID, *roast); err != nil {
		h.logger.Warn("failed to store roast in history",
			zap.String("session", sessionID),
			zap.String("roast_id", roast.ID),
			zap.Error(err),
		)
	}
}

func (h *RoastHandler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		generationErr *service.GenerationError
	)
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
	case errors.Is(err, ErrSessionBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &generationErr):
		http.Error(w, fmt.Sprintf("service error: %s", err), http.StatusBadGateway)
	default:
		h.logger.Error("request failed", zap.Error(err))
		http.Error(w, fmt.Sprintf("internal error: %s", err), http.StatusInternalServerError)
	}
}

// decodeSettings reads the body and clamps the sliders. It writes the 4xx
// itself and reports false when the request cannot proceed.
func (h *RoastHandler) decodeSettings(w http.ResponseWriter, r *http.Request) (models.RoastSettings, bool) {
	var req models.RoastSettings
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return req, false
		}
		http.Error(w, fmt.Sprintf("failed to read body: %s", err), http.StatusBadRequest)
		return req, false
	}
	if err := sonic.Unmarshal(body, &req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return req, false
	}

	req = req.Clamped()
	if err := req.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func sessionFromRequest(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
