// Package log emits one JSON object per line through the standard logger.
// Request-scoped helpers take the fiber context and attach request id, client
// and authenticated user; Event is for code running outside a request.
package log

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserID is the fiber.Ctx locals key holding the authenticated user id.
const LocalsUserID = "userID"

type Level string

const (
	LevelInfo  Level = "info"
	LevelAudit Level = "audit"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type record struct {
	Time      string         `json:"ts"`
	Level     Level          `json:"level"`
	Action    string         `json:"action,omitempty"`
	RequestID string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Status    int            `json:"status,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Keys whose values never reach the log.
var secretKeys = []string{"password", "token", "authorization", "secret", "hash"}

func redact(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if isSecret(k) {
			continue
		}
		out[k] = v
	}
	return out
}

func isSecret(key string) bool {
	k := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

func (r *record) fromRequest(c *fiber.Ctx) {
	r.IP = c.IP()
	r.Method = c.Method()
	r.Path = c.Path()
	r.Status = c.Response().StatusCode()
	if rid, _ := c.Locals("requestid").(string); rid != "" {
		r.RequestID = rid
	}
	if uid, _ := c.Locals(LocalsUserID).(string); uid != "" {
		r.UserID = uid
	}
}

func emit(level Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	r := record{
		Time:   time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		Action: action,
		Fields: redact(fields),
	}
	if c != nil {
		r.fromRequest(c)
	}
	if err != nil {
		r.Err = err.Error()
	}
	b, mErr := json.Marshal(r)
	if mErr != nil {
		log.Printf(`{"level":"error","action":"log.encode","err":%q}`, mErr.Error())
		return
	}
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { emit(LevelInfo, c, action, nil, fields) }

// Audit records a state change made by the authenticated user.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	emit(LevelAudit, c, action, nil, fields)
}

// Security records rejected credentials, tokens, input and rate limits.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	emit(LevelWarn, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	emit(LevelError, c, action, err, fields)
}

// Event logs outside of a request, e.g. from the seeder or at startup.
func Event(level Level, action string, err error, fields map[string]any) {
	emit(level, nil, action, err, fields)
}
