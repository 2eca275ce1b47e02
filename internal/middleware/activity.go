package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Adarsha5421/Grainly-final/internal/activity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxCapturedBody bounds the body bytes kept in the forensic blob. The
// request body itself is restored in full for downstream handlers.
const maxCapturedBody = 64 << 10

// ActivityLogger observes every request passing through it: it snapshots
// the request, lets the handler chain run, then classifies, threat-scans
// and persists an activity record in the background. Observation can never
// fail the request; every step is recovered and persistence is
// fire-and-forget. An invalid or missing credential just means the record
// is attributed to a visitor.
func ActivityLogger(svc *activity.Service, jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	logger := slog.Default()
	return func(c *gin.Context) {
		snap := takeSnapshot(c, logger)
		start := time.Now()

		c.Next()

		if snap == nil {
			return
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("activity logging failed", "panic", r)
				}
			}()

			var actor *activity.Actor
			if user := CurrentUser(c); user != nil {
				actor = actorFor(user.ID, user.DisplayName, user.Username)
			} else if user := resolveUser(c, jwtSecret, db); user != nil {
				// public routes carry no context user; resolve the token
				// directly, invalid tokens silently stay anonymous
				actor = actorFor(user.ID, user.DisplayName, user.Username)
			}

			rec := activity.BuildRecord(snap, actor)
			rec.StatusCode = c.Writer.Status()
			rec.ResponseTime = time.Since(start).Milliseconds()

			// a suspicious request additionally produces a dedicated
			// security alert record; derive it before Submit hands rec to
			// the background writer, which sets rec.ID on insert
			if rec.IsSuspicious {
				alert := activity.AlertRecord(rec)
				svc.Submit(&rec)
				svc.Submit(&alert)
			} else {
				svc.Submit(&rec)
			}
		}()
	}
}

func actorFor(id uint, displayName, username string) *activity.Actor {
	name := displayName
	if name == "" {
		name = username
	}
	return &activity.Actor{ID: id, Name: name}
}

// takeSnapshot captures method, path, origin, headers, query, params and
// body before the handlers consume them. The body is re-buffered so the
// chain still sees it.
func takeSnapshot(c *gin.Context, logger *slog.Logger) *activity.RequestSnapshot {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("activity snapshot failed", "panic", r)
		}
	}()

	var bodyBytes []byte
	if c.Request.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(c.Request.Body)
		if err != nil {
			bodyBytes = nil
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}
	captured := bodyBytes
	if len(captured) > maxCapturedBody {
		captured = captured[:maxCapturedBody]
	}

	headers := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		if len(v) > 0 {
			headers[strings.ToLower(k)] = v[0]
		}
	}

	query := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	params := map[string]string{}
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return &activity.RequestSnapshot{
		Method:     c.Request.Method,
		Path:       c.Request.URL.RequestURI(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Headers:    headers,
		Query:      query,
		Params:     params,
		Body:       captured,
		RequestID:  uuid.New().String(),
		ReceivedAt: time.Now(),
	}
}
