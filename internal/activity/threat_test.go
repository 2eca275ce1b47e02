package activity

import "testing"

func cleanSnapshot() *RequestSnapshot {
	return &RequestSnapshot{
		Method:    "POST",
		Path:      "/api/contact",
		IP:        "203.0.113.9",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0) Chrome/114.0",
		Headers:   map[string]string{"user-agent": "Mozilla/5.0 (Windows NT 10.0) Chrome/114.0"},
		Body:      []byte(`{"name":"Bob","message":"hello there"}`),
	}
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func TestDetectThreats_Clean(t *testing.T) {
	threats := DetectThreats(cleanSnapshot())
	if len(threats) != 0 {
		t.Errorf("DetectThreats(clean) = %v, want none", threats)
	}
}

func TestDetectThreats_SQLInjectionInBody(t *testing.T) {
	snap := cleanSnapshot()
	snap.Body = []byte(`{"q":"1 union select password from users"}`)

	threats := DetectThreats(snap)
	if !hasFlag(threats, FlagSQLInjection) {
		t.Errorf("threats = %v, want %s", threats, FlagSQLInjection)
	}
}

// The whole-word heuristic intentionally flags ordinary words too.
func TestDetectThreats_SQLInjectionFalsePositive(t *testing.T) {
	snap := cleanSnapshot()
	snap.Body = []byte(`{"message":"please update me on my order"}`)

	threats := DetectThreats(snap)
	if !hasFlag(threats, FlagSQLInjection) {
		t.Errorf("threats = %v, want %s (heuristic matches the word 'update')", threats, FlagSQLInjection)
	}
}

func TestDetectThreats_XSS(t *testing.T) {
	snap := cleanSnapshot()
	snap.Body = []byte(`{"comment":"<script>alert(1)</script>"}`)

	threats := DetectThreats(snap)
	if !hasFlag(threats, FlagXSS) {
		t.Errorf("threats = %v, want %s", threats, FlagXSS)
	}
}

// Angle brackets must survive blob serialization for the pattern to see them.
func TestDetectThreats_XSSInHeader(t *testing.T) {
	snap := cleanSnapshot()
	snap.Headers["referer"] = "https://evil.example/<script>alert(1)</script>"

	threats := DetectThreats(snap)
	if !hasFlag(threats, FlagXSS) {
		t.Errorf("threats = %v, want %s", threats, FlagXSS)
	}
}

func TestDetectThreats_PathTraversal(t *testing.T) {
	snap := cleanSnapshot()
	snap.Path = "/api/foo/../../etc/passwd"

	threats := DetectThreats(snap)
	if !hasFlag(threats, FlagPathTraversal) {
		t.Errorf("threats = %v, want %s", threats, FlagPathTraversal)
	}
}

// Traversal only counts in the path, not in the body blob.
func TestDetectThreats_TraversalInBodyIgnored(t *testing.T) {
	snap := cleanSnapshot()
	snap.Body = []byte(`{"note":"see ../docs"}`)

	threats := DetectThreats(snap)
	if hasFlag(threats, FlagPathTraversal) {
		t.Errorf("threats = %v, traversal in body must not flag", threats)
	}
}

func TestDetectThreats_CommandInjection(t *testing.T) {
	snap := cleanSnapshot()
	snap.Body = []byte(`{"input":"; exec /bin/sh"}`)

	threats := DetectThreats(snap)
	if !hasFlag(threats, FlagCommandInjection) {
		t.Errorf("threats = %v, want %s", threats, FlagCommandInjection)
	}
}

func TestDetectThreats_SuspiciousIP(t *testing.T) {
	cases := []struct {
		ip   string
		want bool
	}{
		{"10.0.0.1", true},
		{"192.168.1.5", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"203.0.113.9", false},
	}

	for _, tc := range cases {
		snap := cleanSnapshot()
		snap.IP = tc.ip
		got := hasFlag(DetectThreats(snap), FlagSuspiciousIP)
		if got != tc.want {
			t.Errorf("ip %s: suspicious = %v, want %v", tc.ip, got, tc.want)
		}
	}
}

func TestDetectThreats_SuspiciousUserAgent(t *testing.T) {
	cases := []struct {
		ua   string
		want bool
	}{
		{"curl/8.1.2", true},
		{"python-requests/2.31", true},
		{"Googlebot/2.1", true},
		{"Mozilla/5.0 (Windows NT 10.0) Firefox/115.0", false},
	}

	for _, tc := range cases {
		snap := cleanSnapshot()
		snap.UserAgent = tc.ua
		snap.Headers["user-agent"] = tc.ua
		got := hasFlag(DetectThreats(snap), FlagSuspiciousUserAgent)
		if got != tc.want {
			t.Errorf("ua %q: suspicious = %v, want %v", tc.ua, got, tc.want)
		}
	}
}

// Rules run independently; one request can collect several tags.
func TestDetectThreats_Accumulate(t *testing.T) {
	snap := cleanSnapshot()
	snap.IP = "192.168.1.5"
	snap.UserAgent = "curl/8.1.2"
	snap.Headers["user-agent"] = snap.UserAgent
	snap.Body = []byte(`{"q":"union select <script>"}`)

	threats := DetectThreats(snap)
	for _, want := range []string{FlagSQLInjection, FlagXSS, FlagSuspiciousIP, FlagSuspiciousUserAgent} {
		if !hasFlag(threats, want) {
			t.Errorf("threats = %v, missing %s", threats, want)
		}
	}
}
