package activity

import (
	"encoding/json"
	"strings"

	"github.com/Adarsha5421/Grainly-final/internal/models"

	"gorm.io/datatypes"
)

// BuildRecord composes one ActivityLog from a request snapshot and an
// optional resolved actor. It runs the user-agent classifier, the event
// classifier and the threat detector, and captures a bounded forensic
// context blob (body, query, params and selected headers only).
func BuildRecord(snap *RequestSnapshot, actor *Actor) models.ActivityLog {
	client := ClassifyUserAgent(snap.UserAgent)
	eventType, category := ClassifyEvent(snap.Method, snap.Path)

	body := parseBody(snap.Body)
	passwordChange := false
	if m, ok := body.(map[string]any); ok {
		if v, exists := m["password"]; exists && v != nil && v != "" {
			passwordChange = true
		}
	}

	info := InfoText(eventType, actor.Label(), snap.Path, passwordChange)

	threats := DetectThreats(snap)
	isSuspicious := len(threats) > 0

	severity := models.SeverityLow
	threatLevel := models.ThreatNone
	if isSuspicious {
		severity = models.SeverityHigh
		threatLevel = models.ThreatHigh
	}

	rec := models.ActivityLog{
		IP:            snap.IP,
		UserAgent:     snap.UserAgent,
		URL:           snap.Path,
		Method:        snap.Method,
		Action:        "Request",
		Category:      category,
		Severity:      severity,
		EventType:     eventType,
		IsSuspicious:  isSuspicious,
		SecurityFlags: datatypes.NewJSONSlice(threats),
		ThreatLevel:   threatLevel,
		Info:          info,
		Description:   snap.Method + " " + snap.Path + " - " + info,
		Device:        client.Device,
		Browser:       client.Browser,
		Meta:          captureMeta(snap, body),
		CreatedAt:     snap.ReceivedAt,
	}

	if actor != nil {
		id := actor.ID
		rec.UserID = &id
		rec.UserName = actor.Name
	}

	return rec
}

// AlertRecord derives the separate security-alert record appended alongside
// a suspicious primary record. Its texts focus on the detected threats.
func AlertRecord(rec models.ActivityLog) models.ActivityLog {
	flags := strings.Join(rec.SecurityFlags, ", ")
	rec.ID = 0
	rec.Info = "Security threat detected: " + flags
	rec.Description = "Suspicious activity from IP " + rec.IP + " - " + flags
	return models.AsSecurityAlert(rec)
}

// parseBody keeps a JSON body as a structured value and anything else as a
// raw string, so the forensic blob stays readable either way.
func parseBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

// captureMeta bounds the context blob to body, query, params and a fixed
// header subset; never the full header set.
func captureMeta(snap *RequestSnapshot, body any) datatypes.JSONMap {
	headers := map[string]any{}
	for _, k := range []string{"user-agent", "referer", "origin"} {
		if v, ok := snap.Headers[k]; ok {
			headers[k] = v
		}
	}

	query := map[string]any{}
	for k, v := range snap.Query {
		query[k] = v
	}
	params := map[string]any{}
	for k, v := range snap.Params {
		params[k] = v
	}

	return datatypes.JSONMap{
		"request_id": snap.RequestID,
		"body":       body,
		"query":      query,
		"params":     params,
		"headers":    headers,
	}
}
