package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category is the coarse subsystem an activity record belongs to.
type Category string

const (
	CategoryAuth     Category = "AUTH"
	CategoryUser     Category = "USER"
	CategoryAdmin    Category = "ADMIN"
	CategorySecurity Category = "SECURITY"
	CategoryPayment  Category = "PAYMENT"
	CategoryProduct  Category = "PRODUCT"
	CategoryBooking  Category = "BOOKING"
	CategoryContact  Category = "CONTACT"
	CategorySystem   Category = "SYSTEM"
	CategoryAPI      Category = "API"
)

// Severity grades an activity record for display and filtering.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// EventType is the fine-grained semantic action behind a request.
type EventType string

const (
	EventLogin         EventType = "LOGIN"
	EventLogout        EventType = "LOGOUT"
	EventRegister      EventType = "REGISTER"
	EventPasswordReset EventType = "PASSWORD_RESET"
	EventProfileUpdate EventType = "PROFILE_UPDATE"
	EventAdminAction   EventType = "ADMIN_ACTION"
	EventSecurityAlert EventType = "SECURITY_ALERT"
	EventPayment       EventType = "PAYMENT"
	EventBooking       EventType = "BOOKING"
	EventContact       EventType = "CONTACT"
	EventAPICall       EventType = "API_CALL"
	EventError         EventType = "ERROR"
	EventSystem        EventType = "SYSTEM"
)

// ThreatLevel is derived from the detected security flags.
type ThreatLevel string

const (
	ThreatNone   ThreatLevel = "NONE"
	ThreatLow    ThreatLevel = "LOW"
	ThreatMedium ThreatLevel = "MEDIUM"
	ThreatHigh   ThreatLevel = "HIGH"
)

// ActivityLog is one immutable audit record for a single observed request
// or an explicitly logged auth/admin/security event. Rows are only ever
// appended and bulk-pruned, never updated.
//
// Every single-field filter combined with recency ordering has a composite
// index so the admin queries stay off full scans.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// user information; UserName is denormalized so the record survives
	// user deletion or rename
	UserID   *uint  `gorm:"index:idx_activity_user_created,priority:1" json:"user_id"`
	UserName string `gorm:"size:64" json:"user_name"`

	// request information
	IP        string `gorm:"size:64;not null;index:idx_activity_ip_created,priority:1" json:"ip"`
	UserAgent string `gorm:"size:512" json:"user_agent"`
	URL       string `gorm:"size:1024;not null" json:"url"`
	Method    string `gorm:"size:16;not null" json:"method"`

	// action details
	Action   string   `gorm:"size:64;not null;default:Request" json:"action"`
	Category Category `gorm:"size:16;not null;default:SYSTEM;index:idx_activity_category_created,priority:1" json:"category"`
	Severity Severity `gorm:"size:16;not null;default:LOW;index:idx_activity_severity_created,priority:1" json:"severity"`

	// event information
	EventType EventType `gorm:"size:32;not null;default:SYSTEM;index:idx_activity_event_created,priority:1" json:"event_type"`

	// security information
	IsSuspicious  bool                        `gorm:"not null;default:false;index:idx_activity_suspicious_created,priority:1" json:"is_suspicious"`
	SecurityFlags datatypes.JSONSlice[string] `json:"security_flags"`
	ThreatLevel   ThreatLevel                 `gorm:"size:8;not null;default:NONE" json:"threat_level"`

	// response information, filled best-effort after the handler chain
	StatusCode   int   `json:"status_code"`
	ResponseTime int64 `json:"response_time"` // milliseconds

	// detailed information
	Info        string            `gorm:"size:512" json:"info"`
	Description string            `gorm:"size:1024" json:"description"`
	Meta        datatypes.JSONMap `json:"meta"`

	// device information derived from the user agent
	Device  string `gorm:"size:16" json:"device"`
	Browser string `gorm:"size:16" json:"browser"`

	CreatedAt time.Time `gorm:"index:idx_activity_created;index:idx_activity_user_created,priority:2;index:idx_activity_category_created,priority:2;index:idx_activity_severity_created,priority:2;index:idx_activity_event_created,priority:2;index:idx_activity_suspicious_created,priority:2;index:idx_activity_ip_created,priority:2" json:"created_at"`
}

// AsSecurityAlert forces the alert shape onto a record: SECURITY category,
// HIGH severity, SECURITY_ALERT event, suspicious with HIGH threat level.
func AsSecurityAlert(l ActivityLog) ActivityLog {
	l.Category = CategorySecurity
	l.Severity = SeverityHigh
	l.EventType = EventSecurityAlert
	l.IsSuspicious = true
	l.ThreatLevel = ThreatHigh
	return l
}

// AsAuthLog forces the AUTH category; the event type defaults to LOGIN
// when the caller did not set one.
func AsAuthLog(l ActivityLog) ActivityLog {
	l.Category = CategoryAuth
	if l.EventType == "" {
		l.EventType = EventLogin
	}
	return l
}

// AsAdminLog forces the ADMIN category with MEDIUM severity.
func AsAdminLog(l ActivityLog) ActivityLog {
	l.Category = CategoryAdmin
	l.Severity = SeverityMedium
	l.EventType = EventAdminAction
	return l
}
