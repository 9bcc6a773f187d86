package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"novadash/internal/auth"
	"novadash/internal/config"
	"novadash/internal/http/handlers"
	"novadash/internal/repos"
	"novadash/internal/services"
)

const testSecret = "test-secret"

type testEnv struct {
	app    *fiber.App
	stores services.Stores
	tokens *auth.Tokens
	token  string // bearer token of a registered admin
}

func newTestEnv(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	if cfg.LoginRateMax == 0 {
		cfg.LoginRateMax = 1000
	}
	stores := repos.Stores(db)
	tokens := auth.NewTokens(testSecret, time.Hour)
	deps := handlers.NewDeps(stores, tokens)
	env := &testEnv{app: handlers.NewApp(cfg, deps), stores: stores, tokens: tokens}

	u, err := deps.Auth.Register(context.Background(), "Test Admin", "admin@example.com", "secret1")
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	env.token, err = tokens.Issue(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return env
}

// do sends a request and decodes a JSON response body (numbers kept as json.Number).
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp, out
}

func (e *testEnv) mustCreate(t *testing.T, path string, body any) map[string]any {
	t.Helper()
	resp, out := e.do(t, http.MethodPost, path, e.token, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d: %v", path, resp.StatusCode, out)
	}
	return out
}

func errorPaths(out map[string]any) []string {
	var paths []string
	list, _ := out["errors"].([]any)
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			paths = append(paths, m["path"].(string))
		}
	}
	return paths
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	ReqID  string         `json:"req_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

// captureLogs temporarily replaces the standard logger output.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
