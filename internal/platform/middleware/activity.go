package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

// ActivityEntry is one audit row: who did what, against which branch, with a
// compact request and response summary.
type ActivityEntry struct {
	UserID          string
	Username        string
	Role            auth.Role
	BranchID        string
	Action          string
	Method          string
	Path            string
	IPAddress       string
	UserAgent       string
	StatusCode      int
	RequestID       string
	RequestDetail   map[string]interface{}
	ResponseSummary map[string]interface{}
	Timestamp       time.Time
}

// ActivityRecorder persists activity entries. The activitylog domain provides
// the Postgres implementation; tests provide mocks.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) error
}

// ActivityRecorderFunc is a function adapter for ActivityRecorder.
type ActivityRecorderFunc func(ctx context.Context, entry ActivityEntry) error

func (f ActivityRecorderFunc) Record(ctx context.Context, entry ActivityEntry) error {
	return f(ctx, entry)
}

// recordTimeout bounds the background write so a stuck database cannot
// accumulate goroutines forever.
const recordTimeout = 10 * time.Second

// Activity returns middleware that persists one audit row per authenticated
// admin or super-admin request. The write happens on a background goroutine
// and never blocks or fails the original request; write errors only reach the
// operational log. Unauthenticated or staff requests are not recorded.
func Activity(logger zerolog.Logger, recorder ActivityRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// Snapshot the request body so the handler can still read it.
			var bodyCopy []byte
			if req.Body != nil && req.Body != http.NoBody {
				bodyCopy, _ = io.ReadAll(req.Body)
				req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
			}

			// Capture the response body alongside the client write.
			resBuf := &bytes.Buffer{}
			writer := &teeResponseWriter{ResponseWriter: c.Response().Writer, buf: resBuf}
			c.Response().Writer = writer

			err := next(c)

			user := auth.UserFromContext(req.Context())
			if user == nil || !user.Role.IsAdmin() {
				return err
			}

			entry := ActivityEntry{
				UserID:          user.ID.String(),
				Username:        user.Username,
				Role:            user.Role,
				BranchID:        user.BranchID.String(),
				Action:          classifyAction(req.Method, req.URL.Path),
				Method:          req.Method,
				Path:            req.URL.Path,
				IPAddress:       c.RealIP(),
				UserAgent:       req.UserAgent(),
				StatusCode:      c.Response().Status,
				RequestDetail:   extractRequestDetail(bodyCopy, c.QueryParams()),
				ResponseSummary: summarizeResponse(resBuf.Bytes()),
				Timestamp:       time.Now().UTC(),
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
				defer cancel()
				if recErr := recorder.Record(ctx, entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Str("action", entry.Action).
						Msg("failed to record activity entry")
				}
			}()

			return err
		}
	}
}

type teeResponseWriter struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *teeResponseWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

// entityActions maps API path segments to the entity name used in action tags.
var entityActions = map[string]string{
	"branches":     "branch",
	"patients":     "patient",
	"appointments": "appointment",
	"treatments":   "treatment",
	"invoices":     "invoice",
	"notes":        "note",
	"users":        "user",
}

// classifyAction maps method+path to a semantic action tag such as
// "patient created", "report generated" or "admin action".
func classifyAction(method, path string) string {
	segment := firstAPISegment(path)

	if segment == "admin" {
		return "admin action"
	}
	if segment == "reports" {
		return "report generated"
	}

	entity, ok := entityActions[segment]
	if !ok {
		entity = "request"
	}

	switch method {
	case http.MethodPost:
		return entity + " created"
	case http.MethodPut, http.MethodPatch:
		return entity + " updated"
	case http.MethodDelete:
		return entity + " deleted"
	default:
		return entity + " viewed"
	}
}

func firstAPISegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/")
	if trimmed == path {
		return ""
	}
	segments := strings.SplitN(trimmed, "/", 2)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

// extractRequestDetail merges JSON body fields and query parameters, dropping
// anything secret-like (password fields and friends).
func extractRequestDetail(body []byte, query map[string][]string) map[string]interface{} {
	detail := map[string]interface{}{}

	if len(body) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			for k, v := range parsed {
				if isSecretField(k) {
					continue
				}
				detail[k] = v
			}
		}
	}

	for k, vals := range query {
		if isSecretField(k) || len(vals) == 0 {
			continue
		}
		detail[k] = vals[0]
	}

	if len(detail) == 0 {
		return nil
	}
	return detail
}

func isSecretField(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "password") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "token")
}

// summarizeResponse pulls the envelope's success flag and message plus an
// item count, without storing the full payload.
func summarizeResponse(body []byte) map[string]interface{} {
	if len(body) == 0 {
		return nil
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}

	summary := map[string]interface{}{}
	if success, ok := parsed["success"]; ok {
		summary["success"] = success
	}
	if msg, ok := parsed["message"].(string); ok && msg != "" {
		summary["message"] = msg
	}
	switch data := parsed["data"].(type) {
	case []interface{}:
		summary["count"] = len(data)
	case map[string]interface{}:
		summary["count"] = 1
	}

	if len(summary) == 0 {
		return nil
	}
	return summary
}
