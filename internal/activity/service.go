package activity

import (
	"log/slog"
	"time"

	"github.com/Adarsha5421/Grainly-final/internal/models"
)

// periodWindows are the selectable analytics windows.
var periodWindows = map[string]time.Duration{
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// AnalyticsReport is the time-windowed aggregate bundle for the admin
// dashboard.
type AnalyticsReport struct {
	Period         string        `json:"period"`
	StartDate      time.Time     `json:"start_date"`
	TotalRequests  int64         `json:"total_requests"`
	UniqueUsers    int64         `json:"unique_users"`
	SecurityAlerts int64         `json:"security_alerts"`
	CategoryStats  []BucketCount `json:"category_stats"`
	EventTypeStats []BucketCount `json:"event_type_stats"`
	TopIPs         []BucketCount `json:"top_ips"`
	TopBrowsers    []BucketCount `json:"top_browsers"`
}

// UserSummary aggregates one user's recorded activity.
type UserSummary struct {
	UserID            uint                 `json:"user_id"`
	TotalActions      int64                `json:"total_actions"`
	LastActivity      *models.ActivityLog  `json:"last_activity"`
	CategoryBreakdown []BucketCount        `json:"category_breakdown"`
	FlagBreakdown     []BucketCount        `json:"flag_breakdown"`
	RecentActivity    []models.ActivityLog `json:"recent_activity"`
}

// Service is the read-side facade over the store plus the fire-and-forget
// write entry point used by the interceptor.
type Service struct {
	store  *Store
	logger *slog.Logger
}

func NewService(store *Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Store exposes the underlying store for direct query access.
func (s *Service) Store() *Store {
	return s.store
}

// Submit appends a record in the background. Persistence failures are
// logged and dropped so the observed request is never affected; callers
// must not wait on the write.
func (s *Service) Submit(rec *models.ActivityLog) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("activity log submit panicked", "panic", r)
			}
		}()
		if err := s.store.Append(rec); err != nil {
			s.logger.Error("failed to save activity log",
				"method", rec.Method, "url", rec.URL, "err", err)
		}
	}()
}

// Analytics builds the aggregate bundle for a period in {1h,24h,7d,30d};
// anything else falls back to 24h, matching the admin UI contract.
func (s *Service) Analytics(period string) (*AnalyticsReport, error) {
	window, ok := periodWindows[period]
	if !ok {
		period = "24h"
		window = periodWindows[period]
	}
	start := time.Now().Add(-window)
	f := Filter{Start: &start}

	total, err := s.store.Count(f)
	if err != nil {
		return nil, err
	}
	uniqueUsers, err := s.store.CountDistinctUsers(f)
	if err != nil {
		return nil, err
	}
	suspicious := true
	alerts, err := s.store.Count(Filter{Start: &start, Suspicious: &suspicious})
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GroupCount(f, "category", 0)
	if err != nil {
		return nil, err
	}
	eventTypes, err := s.store.GroupCount(f, "eventType", 0)
	if err != nil {
		return nil, err
	}
	topIPs, err := s.store.GroupCount(f, "ip", 10)
	if err != nil {
		return nil, err
	}
	topBrowsers, err := s.store.GroupCount(f, "browser", 5)
	if err != nil {
		return nil, err
	}

	return &AnalyticsReport{
		Period:         period,
		StartDate:      start,
		TotalRequests:  total,
		UniqueUsers:    uniqueUsers,
		SecurityAlerts: alerts,
		CategoryStats:  categories,
		EventTypeStats: eventTypes,
		TopIPs:         topIPs,
		TopBrowsers:    topBrowsers,
	}, nil
}

// Summary builds the per-user activity digest: totals, last and recent
// activity, category and threat-flag breakdowns.
func (s *Service) Summary(userID uint) (*UserSummary, error) {
	f := Filter{UserID: &userID}

	recent, total, err := s.store.Find(f, "createdAt", true, 0, 10)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GroupCount(f, "category", 0)
	if err != nil {
		return nil, err
	}
	flags, err := s.store.FlagCounts(f)
	if err != nil {
		return nil, err
	}

	summary := &UserSummary{
		UserID:            userID,
		TotalActions:      total,
		CategoryBreakdown: categories,
		FlagBreakdown:     flags,
		RecentActivity:    recent,
	}
	if len(recent) > 0 {
		summary.LastActivity = &recent[0]
	}
	return summary, nil
}

// Prune removes non-suspicious records older than the given number of days
// and reports the count plus the cutoff used. days <= 0 means the default
// 30-day retention.
func (s *Service) Prune(days int) (int64, time.Time, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := s.store.PruneOlderThan(cutoff)
	if err != nil {
		return 0, cutoff, err
	}
	s.logger.Info("pruned activity logs", "deleted", deleted, "cutoff", cutoff)
	return deleted, cutoff, nil
}
