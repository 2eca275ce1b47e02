package activity

import "time"

// RequestSnapshot is an immutable capture of the parts of an inbound HTTP
// request the activity subsystem observes. It is taken by the interceptor
// before the handler chain runs and never modified afterwards.
type RequestSnapshot struct {
	Method    string
	Path      string
	IP        string
	UserAgent string

	// Headers holds the first value of every request header, lowercased keys.
	Headers map[string]string
	Query   map[string]string
	Params  map[string]string
	Body    []byte

	RequestID  string
	ReceivedAt time.Time
}

// Actor is a resolved identity for a request; nil means anonymous/guest.
type Actor struct {
	ID   uint
	Name string
}

// Label renders the display label used in generated info texts.
func (a *Actor) Label() string {
	if a == nil {
		return "Visitor"
	}
	return "User (" + a.Name + ")"
}
