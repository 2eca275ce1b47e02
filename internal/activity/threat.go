package activity

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Threat tags attached to a record when a signature pattern matches.
const (
	FlagSQLInjection        = "SQL_INJECTION_ATTEMPT"
	FlagXSS                 = "XSS_ATTEMPT"
	FlagPathTraversal       = "PATH_TRAVERSAL_ATTEMPT"
	FlagCommandInjection    = "COMMAND_INJECTION_ATTEMPT"
	FlagSuspiciousIP        = "SUSPICIOUS_IP"
	FlagSuspiciousUserAgent = "SUSPICIOUS_USER_AGENT"
)

// Fixed signature catalog. This is signature-based, not learned: whole-word
// matches against arbitrary user text are known to flag ordinary words
// ("select your size", "update me") and that false-positive rate is accepted.
var (
	sqlInjectionPattern     = regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter)\b`)
	xssPattern              = regexp.MustCompile(`(?i)(<script|javascript:|onload=|onerror=|onclick=)`)
	pathTraversalPattern    = regexp.MustCompile(`\.\./|\.\.\\`)
	commandInjectionPattern = regexp.MustCompile(`(?i)\b(cmd|exec|system|eval|process)\b`)
	suspiciousIPPattern     = regexp.MustCompile(`^(10\.|192\.168\.|172\.(1[6-9]|2[0-9]|3[0-1])\.)`)
	suspiciousUAPattern     = regexp.MustCompile(`(?i)(bot|crawler|spider|scraper|curl|wget|python|java)`)
)

// DetectThreats scans a request snapshot against the signature catalog and
// returns the accumulated threat tags. All rules run unconditionally; a
// single request can collect several tags. Pure function, safe for
// concurrent use.
func DetectThreats(snap *RequestSnapshot) []string {
	var threats []string

	// SQL injection, XSS and command injection scan the serialized
	// url+body+headers blob, mirroring how the request travels on the wire.
	blob := serializeForScan(snap)

	if sqlInjectionPattern.MatchString(blob) {
		threats = append(threats, FlagSQLInjection)
	}
	if xssPattern.MatchString(blob) {
		threats = append(threats, FlagXSS)
	}
	if pathTraversalPattern.MatchString(snap.Path) {
		threats = append(threats, FlagPathTraversal)
	}
	if commandInjectionPattern.MatchString(blob) {
		threats = append(threats, FlagCommandInjection)
	}
	if suspiciousIPPattern.MatchString(snap.IP) {
		threats = append(threats, FlagSuspiciousIP)
	}
	if suspiciousUAPattern.MatchString(snap.UserAgent) {
		threats = append(threats, FlagSuspiciousUserAgent)
	}

	return threats
}

func serializeForScan(snap *RequestSnapshot) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// keep < and > literal, otherwise "<script" never survives serialization
	enc.SetEscapeHTML(false)
	err := enc.Encode(map[string]any{
		"url":     snap.Path,
		"body":    string(snap.Body),
		"headers": snap.Headers,
	})
	if err != nil {
		// map[string]any over strings cannot fail to marshal; fall back to
		// the raw parts just in case
		return snap.Path + string(snap.Body)
	}
	return buf.String()
}
