// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradefx/internal/session"
)

func requestWithSession(data *session.Data) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	if data != nil {
		ctx := context.WithValue(req.Context(), SessionKey, data)
		req = req.WithContext(ctx)
	}
	return req
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAuth(okHandler()).ServeHTTP(rec, requestWithSession(nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequireAuth_AllowsAuthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	sess := &session.Data{Email: "admin@tradefx.local", Role: "admin", TwoFADone: true}
	RequireAuth(okHandler()).ServeHTTP(rec, requestWithSession(sess))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequire2FA(t *testing.T) {
	tests := []struct {
		name     string
		sess     *session.Data
		wantCode int
	}{
		{"verified session passes", &session.Data{TwoFADone: true}, http.StatusOK},
		{"unverified session rejected", &session.Data{TwoFADone: false}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Require2FA(okHandler()).ServeHTTP(rec, requestWithSession(tt.sess))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		sess     *session.Data
		wantCode int
	}{
		{"admin passes", &session.Data{Role: "admin"}, http.StatusOK},
		{"editor forbidden", &session.Data{Role: "editor"}, http.StatusForbidden},
		{"anonymous forbidden", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdmin(okHandler()).ServeHTTP(rec, requestWithSession(tt.sess))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestSessionFromCtx_Empty(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("SessionFromCtx() = %v, want nil", got)
	}
}
