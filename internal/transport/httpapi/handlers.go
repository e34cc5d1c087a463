package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/itsyanis/1Day1Quote/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func QuoteHandler(uc usecase.QuoteUseCase, doc *DocumentMeta, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path)
		if len(parts) == 0 || parts[0] != "quote" || len(parts) > 2 {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
			return
		}
		action := ""
		if len(parts) == 2 {
			action = parts[1]
		}

		switch action {
		case "":
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			writeJSON(w, http.StatusOK, uc.State())
		case "next":
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			uc.FetchQuote(ctx)
			state := uc.State()
			if err := doc.Inject(PageMetaFor(state, r.URL.Query().Get("lang"))); err != nil {
				slog.Warn("metadata injection failed", "error", err)
			}
			writeJSON(w, http.StatusOK, state)
		case "toggle":
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			uc.ToggleAuthorInfo()
			writeJSON(w, http.StatusOK, uc.State())
		case "meta":
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			writeJSON(w, http.StatusOK, doc.Current())
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown action"})
		}
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
}

func splitPath(p string) []string {
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	if p == "" {
		return nil
	}
	parts := []string{}
	cur := ""
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			if cur != "" {
				parts = append(parts, cur)
				cur = ""
			}
			continue
		}
		cur += string(p[i])
	}
	if cur != "" {
		parts = append(parts, cur)
	}
	return parts
}
