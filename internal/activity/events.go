package activity

import (
	"strings"

	"github.com/Adarsha5421/Grainly-final/internal/models"
)

// Static route classification tables, loaded once and never mutated.

// eventTypeByRoute maps exact "METHOD:path" keys to a semantic event type.
var eventTypeByRoute = map[string]models.EventType{
	"POST:/api/auth/login":           models.EventLogin,
	"POST:/api/auth/register":        models.EventRegister,
	"POST:/api/auth/logout":          models.EventLogout,
	"POST:/api/auth/forgot-password": models.EventPasswordReset,
	"POST:/api/auth/reset-password":  models.EventPasswordReset,
	"PUT:/api/users/profile":         models.EventProfileUpdate,
	"POST:/api/bookings":             models.EventBooking,
	"POST:/api/contact":              models.EventContact,
	"GET:/api/pulses":                models.EventAPICall,
	"GET:/api/admin/activity-logs":   models.EventAdminAction,
}

// categoryByPrefix maps path prefixes to a coarse category. Resolution is
// strict longest-prefix-wins so overlapping prefixes stay deterministic.
var categoryByPrefix = map[string]models.Category{
	"/api/auth":     models.CategoryAuth,
	"/api/users":    models.CategoryUser,
	"/api/admin":    models.CategoryAdmin,
	"/api/bookings": models.CategoryBooking,
	"/api/contact":  models.CategoryContact,
	"/api/pulses":   models.CategoryProduct,
	"/api/payment":  models.CategoryPayment,
}

// ClassifyEvent resolves the event type by exact METHOD:path lookup
// (unmatched routes are API_CALL) and the category by longest matching
// path prefix (no match is SYSTEM).
func ClassifyEvent(method, path string) (models.EventType, models.Category) {
	eventType, ok := eventTypeByRoute[method+":"+path]
	if !ok {
		eventType = models.EventAPICall
	}

	category := models.CategorySystem
	matched := -1
	for prefix, cat := range categoryByPrefix {
		if strings.HasPrefix(path, prefix) && len(prefix) > matched {
			category = cat
			matched = len(prefix)
		}
	}

	return eventType, category
}

// InfoText builds the human-readable summary for a classified request.
// actorLabel is "User (name)" for a resolved identity, "Visitor" otherwise.
// passwordChange switches the PROFILE_UPDATE template to the password wording.
func InfoText(eventType models.EventType, actorLabel, path string, passwordChange bool) string {
	switch eventType {
	case models.EventLogin:
		return actorLabel + " logged in"
	case models.EventLogout:
		return actorLabel + " logged out"
	case models.EventRegister:
		return actorLabel + " registered"
	case models.EventPasswordReset:
		return actorLabel + " requested password reset"
	case models.EventProfileUpdate:
		if passwordChange {
			return actorLabel + " changed password"
		}
		return actorLabel + " updated profile"
	case models.EventBooking:
		return actorLabel + " created a booking"
	case models.EventContact:
		return actorLabel + " submitted a contact form"
	case models.EventAdminAction:
		return actorLabel + " performed admin action"
	default:
		return actorLabel + " accessed " + path
	}
}
