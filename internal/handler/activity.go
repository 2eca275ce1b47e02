package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Adarsha5421/Grainly-final/internal/activity"
	"github.com/Adarsha5421/Grainly-final/internal/config"
	"github.com/Adarsha5421/Grainly-final/internal/models"
	"github.com/Adarsha5421/Grainly-final/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ActivityHandler serves the admin-only activity log query, analytics,
// export and retention endpoints. Unlike the logging path, these surface
// their errors: querying the logs is the admin's primary action here.
type ActivityHandler struct {
	Svc *activity.Service
	Cfg config.ActivityConfig
}

func NewActivityHandler(svc *activity.Service, cfg config.ActivityConfig) *ActivityHandler {
	return &ActivityHandler{Svc: svc, Cfg: cfg}
}

// exportColumns is the fixed CSV/XLSX column order.
var exportColumns = []string{
	"timestamp", "user", "ip", "action", "category", "severity", "eventType",
	"url", "method", "info", "isSuspicious", "securityFlags", "device", "browser",
}

// ListLogs returns a filtered, sorted page of activity records.
//
// GET /api/admin/activity-logs?user=&category=&severity=&eventType=
//
//	&isSuspicious=&startDate=&endDate=&page=&limit=&sortBy=&sortOrder=
func (h *ActivityHandler) ListLogs(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	page, limit, ok := h.parsePagination(c, h.Cfg.PageSize)
	if !ok {
		return
	}

	sortBy := c.DefaultQuery("sortBy", "createdAt")
	descending := c.DefaultQuery("sortOrder", "desc") != "asc"

	logs, total, err := h.Svc.Store().Find(filter, sortBy, descending, (page-1)*limit, limit)
	if err != nil {
		if errors.Is(err, activity.ErrBadField) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch activity logs")
		return
	}

	util.Success(c, util.Response{
		"logs":       logs,
		"pagination": paginationInfo(page, limit, total),
	})
}

// SecurityAlerts lists suspicious SECURITY records, newest first.
//
// GET /api/admin/security-alerts?page=&limit=
func (h *ActivityHandler) SecurityAlerts(c *gin.Context) {
	page, limit, ok := h.parsePagination(c, h.Cfg.AlertPageSize)
	if !ok {
		return
	}

	suspicious := true
	filter := activity.Filter{
		Category:   models.CategorySecurity,
		Suspicious: &suspicious,
	}

	alerts, total, err := h.Svc.Store().Find(filter, "createdAt", true, (page-1)*limit, limit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch security alerts")
		return
	}

	util.Success(c, util.Response{
		"alerts":     alerts,
		"pagination": paginationInfo(page, limit, total),
	})
}

// Analytics returns the aggregate bundle for a period in {1h,24h,7d,30d}.
//
// GET /api/admin/activity-analytics?period=24h
func (h *ActivityHandler) Analytics(c *gin.Context) {
	report, err := h.Svc.Analytics(c.DefaultQuery("period", "24h"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch activity analytics")
		return
	}
	util.Success(c, util.Response{"analytics": report})
}

// UserSummary returns the per-user activity digest.
//
// GET /api/admin/users/:id/activity-summary
func (h *ActivityHandler) UserSummary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user id")
		return
	}

	summary, err := h.Svc.Summary(uint(id))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch user activity summary")
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

// Export streams matching records as a JSON array, quoted CSV or XLSX.
//
// GET /api/admin/activity-logs/export?format=json|csv|xlsx&startDate=&endDate=
func (h *ActivityHandler) Export(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	logs, _, err := h.Svc.Store().Find(filter, "createdAt", true, 0, -1)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to export activity logs")
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		h.exportCSV(c, logs)
	case "xlsx":
		h.exportXLSX(c, logs)
	case "json":
		c.JSON(http.StatusOK, logs)
	default:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format must be json, csv or xlsx")
	}
}

// Cleanup prunes non-suspicious records older than N days (default from
// config). Suspicious records survive regardless of age.
//
// DELETE /api/admin/activity-logs/cleanup?days=30
func (h *ActivityHandler) Cleanup(c *gin.Context) {
	days := h.Cfg.RetentionDays
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "days must be a positive integer")
			return
		}
		days = parsed
	}

	deleted, cutoff, err := h.Svc.Prune(days)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to clear old logs")
		return
	}

	util.Success(c, util.Response{
		"message":      fmt.Sprintf("Cleared %d old logs", deleted),
		"deletedCount": deleted,
		"cutoffDate":   cutoff,
	})
}

func (h *ActivityHandler) exportCSV(c *gin.Context, logs []models.ActivityLog) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="activity-logs.csv"`)

	var sb strings.Builder
	sb.WriteString(strings.Join(exportColumns, ","))
	sb.WriteByte('\n')
	for i := range logs {
		row := exportRow(&logs[i])
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(csvQuote(v))
		}
		sb.WriteByte('\n')
	}
	c.String(http.StatusOK, sb.String())
}

func (h *ActivityHandler) exportXLSX(c *gin.Context, logs []models.ActivityLog) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	_ = f.SetSheetRow(sheet, "A1", &header)

	for i := range logs {
		row := exportRow(&logs[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &cells)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="activity-logs.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write xlsx")
	}
}

func exportRow(l *models.ActivityLog) []string {
	user := l.UserName
	if user == "" {
		user = "Guest"
	}
	return []string{
		l.CreatedAt.Format(time.RFC3339),
		user,
		l.IP,
		l.Action,
		string(l.Category),
		string(l.Severity),
		string(l.EventType),
		l.URL,
		l.Method,
		l.Info,
		strconv.FormatBool(l.IsSuspicious),
		strings.Join(l.SecurityFlags, ", "),
		l.Device,
		l.Browser,
	}
}

// csvQuote quotes every value, doubling embedded quotes.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// parseFilter builds the store filter from query parameters; on invalid
// input it writes a 400 and returns ok=false.
func (h *ActivityHandler) parseFilter(c *gin.Context) (activity.Filter, bool) {
	var filter activity.Filter

	if userStr := c.Query("user"); userStr != "" {
		id, err := strconv.ParseUint(userStr, 10, 32)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user filter")
			return filter, false
		}
		uid := uint(id)
		filter.UserID = &uid
	}
	filter.Category = models.Category(c.Query("category"))
	filter.Severity = models.Severity(c.Query("severity"))
	filter.EventType = models.EventType(c.Query("eventType"))

	if susStr := c.Query("isSuspicious"); susStr != "" {
		sus, err := strconv.ParseBool(susStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "isSuspicious must be true or false")
			return filter, false
		}
		filter.Suspicious = &sus
	}

	if startStr := c.Query("startDate"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid startDate")
			return filter, false
		}
		filter.Start = &start
	}
	if endStr := c.Query("endDate"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid endDate")
			return filter, false
		}
		filter.End = &end
	}

	return filter, true
}

func (h *ActivityHandler) parsePagination(c *gin.Context, defaultLimit int) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "page must be a positive integer")
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit must be a positive integer")
		return 0, 0, false
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit, true
}

func paginationInfo(page, limit int, total int64) gin.H {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
