// Package http serves the keep-alive liveness endpoint. It shares no state
// with the ledger.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const statusBody = "✅ Shopkeeper is running!"

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.home)
	r.Get("/healthz", h.healthz)

	return r
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(statusBody))
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
