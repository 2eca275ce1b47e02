package activity

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Adarsha5421/Grainly-final/internal/models"

	"gorm.io/gorm"
)

// ErrBadField reports a sort or group field outside the record's column set.
var ErrBadField = errors.New("unsupported field")

// Filter is a conjunction over any subset of the indexed record fields.
// Zero-valued members are ignored.
type Filter struct {
	UserID     *uint
	Category   models.Category
	Severity   models.Severity
	EventType  models.EventType
	Suspicious *bool
	Start      *time.Time
	End        *time.Time
}

// BucketCount is one group in an aggregate breakdown.
type BucketCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// columnsByField whitelists the fields exposed for sorting and grouping,
// keeping caller input out of the generated SQL.
var columnsByField = map[string]string{
	"createdAt":    "created_at",
	"category":     "category",
	"severity":     "severity",
	"eventType":    "event_type",
	"isSuspicious": "is_suspicious",
	"ip":           "ip",
	"method":       "method",
	"url":          "url",
	"device":       "device",
	"browser":      "browser",
	"userName":     "user_name",
	"statusCode":   "status_code",
}

// Store is the append-only persistence layer for activity records. It is
// safe for concurrent appends and reads; SQLite WAL plus the connection
// pool handle the interleaving.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Append persists one record. Callers on the request path must not let an
// error here reach the response; the interceptor submits through
// Service.Submit which logs and drops failures.
func (s *Store) Append(rec *models.ActivityLog) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

func (s *Store) scope(f Filter) *gorm.DB {
	q := s.db.Model(&models.ActivityLog{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.Suspicious != nil {
		q = q.Where("is_suspicious = ?", *f.Suspicious)
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	return q
}

// Find returns one page of records matching the filter plus the total
// match count. sortBy must be a whitelisted field name.
func (s *Store) Find(f Filter, sortBy string, descending bool, offset, limit int) ([]models.ActivityLog, int64, error) {
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := columnsByField[sortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrBadField, sortBy)
	}
	// id tiebreaker keeps pages disjoint when the sort key repeats
	order := column + " ASC, id ASC"
	if descending {
		order = column + " DESC, id DESC"
	}

	base := s.scope(f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}

	var logs []models.ActivityLog
	if err := base.
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("find activity logs: %w", err)
	}

	return logs, total, nil
}

// Count returns the number of records matching the filter.
func (s *Store) Count(f Filter) (int64, error) {
	var n int64
	if err := s.scope(f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return n, nil
}

// CountDistinctUsers counts distinct non-anonymous actors in the filter window.
func (s *Store) CountDistinctUsers(f Filter) (int64, error) {
	var n int64
	err := s.scope(f).
		Where("user_id IS NOT NULL").
		Distinct("user_id").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count distinct users: %w", err)
	}
	return n, nil
}

// GroupCount aggregates matching records by a whitelisted field, most
// frequent first. limit <= 0 returns all groups.
func (s *Store) GroupCount(f Filter, field string, limit int) ([]BucketCount, error) {
	column, ok := columnsByField[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBadField, field)
	}

	q := s.scope(f).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var buckets []BucketCount
	if err := q.Scan(&buckets).Error; err != nil {
		return nil, fmt.Errorf("group activity logs by %s: %w", column, err)
	}
	return buckets, nil
}

// FlagCounts tallies individual threat tags across suspicious records in
// the filter window. Flags live in a JSON column, so the unwind happens in
// Go over the (indexed) suspicious subset.
func (s *Store) FlagCounts(f Filter) ([]BucketCount, error) {
	suspicious := true
	f.Suspicious = &suspicious

	var logs []models.ActivityLog
	if err := s.scope(f).Select("security_flags").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load security flags: %w", err)
	}

	counts := map[string]int64{}
	for _, l := range logs {
		for _, flag := range l.SecurityFlags {
			counts[flag]++
		}
	}

	buckets := make([]BucketCount, 0, len(counts))
	for flag, n := range counts {
		buckets = append(buckets, BucketCount{Key: flag, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets, nil
}

// PruneOlderThan bulk-deletes non-suspicious records created before the
// cutoff. Suspicious records are retained regardless of age.
func (s *Store) PruneOlderThan(cutoff time.Time) (int64, error) {
	res := s.db.Where("created_at < ? AND is_suspicious = ?", cutoff, false).
		Delete(&models.ActivityLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune activity logs: %w", res.Error)
	}
	return res.RowsAffected, nil
}
