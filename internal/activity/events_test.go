package activity

import (
	"testing"

	"github.com/Adarsha5421/Grainly-final/internal/models"
)

func TestClassifyEvent_ExactRoutes(t *testing.T) {
	cases := []struct {
		method, path string
		wantEvent    models.EventType
		wantCategory models.Category
	}{
		{"POST", "/api/auth/login", models.EventLogin, models.CategoryAuth},
		{"POST", "/api/auth/register", models.EventRegister, models.CategoryAuth},
		{"POST", "/api/auth/logout", models.EventLogout, models.CategoryAuth},
		{"POST", "/api/auth/forgot-password", models.EventPasswordReset, models.CategoryAuth},
		{"PUT", "/api/users/profile", models.EventProfileUpdate, models.CategoryUser},
		{"POST", "/api/bookings", models.EventBooking, models.CategoryBooking},
		{"POST", "/api/contact", models.EventContact, models.CategoryContact},
		{"GET", "/api/pulses", models.EventAPICall, models.CategoryProduct},
	}

	for _, tc := range cases {
		event, category := ClassifyEvent(tc.method, tc.path)
		if event != tc.wantEvent || category != tc.wantCategory {
			t.Errorf("ClassifyEvent(%s, %s) = (%s, %s), want (%s, %s)",
				tc.method, tc.path, event, category, tc.wantEvent, tc.wantCategory)
		}
	}
}

func TestClassifyEvent_UnmappedRoute(t *testing.T) {
	event, category := ClassifyEvent("GET", "/api/unknown/thing")
	if event != models.EventAPICall {
		t.Errorf("event = %s, want %s", event, models.EventAPICall)
	}
	if category != models.CategorySystem {
		t.Errorf("category = %s, want %s", category, models.CategorySystem)
	}
}

// GET on a mapped POST route must not inherit the POST classification.
func TestClassifyEvent_MethodMatters(t *testing.T) {
	event, _ := ClassifyEvent("GET", "/api/auth/login")
	if event != models.EventAPICall {
		t.Errorf("event = %s, want %s", event, models.EventAPICall)
	}
}

func TestClassifyEvent_CategoryByPrefix(t *testing.T) {
	_, category := ClassifyEvent("GET", "/api/pulses/42")
	if category != models.CategoryProduct {
		t.Errorf("category = %s, want %s", category, models.CategoryProduct)
	}
	_, category = ClassifyEvent("DELETE", "/api/admin/activity-logs/cleanup")
	if category != models.CategoryAdmin {
		t.Errorf("category = %s, want %s", category, models.CategoryAdmin)
	}
}

func TestInfoText(t *testing.T) {
	cases := []struct {
		event          models.EventType
		label          string
		passwordChange bool
		want           string
	}{
		{models.EventLogin, "User (Alice)", false, "User (Alice) logged in"},
		{models.EventContact, "Visitor", false, "Visitor submitted a contact form"},
		{models.EventProfileUpdate, "User (Alice)", false, "User (Alice) updated profile"},
		{models.EventProfileUpdate, "User (Alice)", true, "User (Alice) changed password"},
		{models.EventPasswordReset, "Visitor", false, "Visitor requested password reset"},
		{models.EventAdminAction, "User (root)", false, "User (root) performed admin action"},
	}

	for _, tc := range cases {
		got := InfoText(tc.event, tc.label, "/whatever", tc.passwordChange)
		if got != tc.want {
			t.Errorf("InfoText(%s) = %q, want %q", tc.event, got, tc.want)
		}
	}
}

func TestInfoText_DefaultMentionsPath(t *testing.T) {
	got := InfoText(models.EventAPICall, "Visitor", "/api/pulses", false)
	if got != "Visitor accessed /api/pulses" {
		t.Errorf("InfoText = %q", got)
	}
}
