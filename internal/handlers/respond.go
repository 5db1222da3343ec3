// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the TradeFX API: the
// public read endpoints consumed by the blog SPA and the session-gated
// admin endpoints for post management.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// marshalJSON encodes v for the response body. Split out so handlers that
// cache the encoded body can reuse the exact bytes they wrote.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// respondJSON encodes v as the response body with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response encode failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, body)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeJSON writes pre-encoded JSON bytes.
func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
