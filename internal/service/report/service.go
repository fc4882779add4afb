package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/metrics"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/storage"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var archiveNameRegex = regexp.MustCompile(`^attendance_\d{4}-\d{2}-\d{2}_\d{4}-\d{2}-\d{2}\.xlsx$`)

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
	logRepo      attendance.LogRepository
	calendarRepo calendar.CalendarRepository
	fileStorage  storage.FileStorage
	reportCache  cache.ReportCache
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	logRepo attendance.LogRepository,
	calendarRepo calendar.CalendarRepository,
	fileStorage storage.FileStorage,
	reportCache cache.ReportCache,
	m *metrics.Metrics,
) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		logRepo:      logRepo,
		calendarRepo: calendarRepo,
		fileStorage:  fileStorage,
		reportCache:  reportCache,
		metrics:      m,
		now:          time.Now,
	}
}

// GenerateAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(s.now()); err != nil {
		return report.AttendanceReport{}, err
	}
	return s.generate(ctx, req)
}

func (s *ReportServiceImpl) generate(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	key := cacheKey(req)
	var cached report.AttendanceReport
	gen, hit, err := s.reportCache.Get(ctx, key, &cached)
	cacheable := err == nil
	if err != nil {
		slog.Warn("report cache lookup failed", "error", err)
	}
	s.metrics.ObserveCacheLookup(hit)
	if hit {
		return cached, nil
	}

	started := time.Now()
	result, err := s.reconcile(ctx, req)
	s.metrics.ObserveReport(err, time.Since(started))
	if err != nil {
		return report.AttendanceReport{}, err
	}

	start, end := req.Range()
	for _, a := range result.Anomalies {
		slog.Warn("multiple shifts apply on one day, using the newest",
			"person_id", a.PersonID,
			"date", utils.FormatDate(a.Date),
			"shift_ids", a.ShiftIDs,
		)
	}
	s.metrics.ObserveAnomalies(len(result.Anomalies))

	out := report.AttendanceReport{
		StartDate:   utils.FormatDate(start),
		EndDate:     utils.FormatDate(end),
		GeneratedAt: s.now().Format(time.RFC3339),
		Summary:     make([]report.EmployeeSummaryResponse, 0, len(result.Summary)),
		Breakdown:   make([]report.DailyBreakdownResponse, 0, len(result.Breakdown)),
	}
	for _, sum := range result.Summary {
		out.Summary = append(out.Summary, report.ToSummaryResponse(sum))
	}
	for _, row := range result.Breakdown {
		out.Breakdown = append(out.Breakdown, report.ToBreakdownResponse(row))
	}

	if cacheable {
		// Stored under the generation read before fetching; a write that
		// landed meanwhile has already moved readers past it.
		if err := s.reportCache.Set(ctx, gen, key, out); err != nil {
			slog.Warn("report cache store failed", "error", err)
		}
	}
	return out, nil
}

// reconcile loads the snapshot concurrently and runs the engine. Logs are
// fetched one day past the range so overnight shifts find their clock-out.
func (s *ReportServiceImpl) reconcile(ctx context.Context, req report.AttendanceReportRequest) (report.ReconcileResult, error) {
	start, end := req.Range()

	var (
		employees []employee.Employee
		shifts    []shift.Shift
		logs      []attendance.LogEntry
		days      []calendar.DayType
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gCtx, employee.EmployeeFilter{
			Department: req.Department,
			Name:       strings.TrimSpace(req.Name),
			ExactName:  true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		shifts, err = s.shiftRepo.ListForRange(gCtx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.logRepo.FetchLogs(gCtx, start, utils.NextDay(end))
		return err
	})
	g.Go(func() error {
		var err error
		days, err = s.calendarRepo.List(gCtx, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.ReconcileResult{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	onboarded := employees[:0]
	for _, e := range employees {
		if e.IsOnboarded() {
			onboarded = append(onboarded, e)
		}
	}

	return Reconcile(report.ReconcileInput{
		Start:     start,
		End:       end,
		Employees: onboarded,
		Shifts:    shifts,
		Logs:      logs,
		Calendar:  days,
	}), nil
}

// ExportAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.ExportedFile, error) {
	if err := req.Validate(s.now()); err != nil {
		return report.ExportedFile{}, err
	}

	generated, err := s.generate(ctx, req)
	if err != nil {
		return report.ExportedFile{}, err
	}

	content, err := renderWorkbook(generated)
	if err != nil {
		return report.ExportedFile{}, fmt.Errorf("%w: %w", report.ErrExportFailed, err)
	}

	return report.ExportedFile{
		Filename:    archiveName(generated.StartDate, generated.EndDate),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}

// ArchiveWeeklyReport implements report.ReportService.
func (s *ReportServiceImpl) ArchiveWeeklyReport(ctx context.Context, now time.Time) (string, error) {
	start, end := utils.PreviousWeek(now)
	key := report.ArchivePrefix + archiveName(utils.FormatDate(start), utils.FormatDate(end))

	exists, err := s.fileStorage.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check archive %s: %w", key, err)
	}
	if exists {
		slog.Debug("weekly report already archived", "path", key)
		return key, nil
	}

	req := report.AttendanceReportRequest{StartDate: utils.FormatDate(start), EndDate: utils.FormatDate(end)}
	file, err := s.ExportAttendanceReport(ctx, req)
	if err != nil {
		return "", err
	}

	stored, err := s.fileStorage.Upload(ctx, bytes.NewReader(file.Content), key, file.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload archive %s: %w", key, err)
	}

	slog.Info("weekly report archived", "path", stored, "start_date", req.StartDate, "end_date", req.EndDate)
	return stored, nil
}

// ListArchivedReports implements report.ReportService.
func (s *ReportServiceImpl) ListArchivedReports(ctx context.Context) ([]report.ArchivedReportResponse, error) {
	keys, err := s.fileStorage.List(ctx, report.ArchivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := path.Base(k)
		if archiveNameRegex.MatchString(name) {
			names = append(names, name)
		}
	}
	// Names embed ISO dates, so lexical order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	out := make([]report.ArchivedReportResponse, 0, len(names))
	for _, n := range names {
		out = append(out, report.ArchivedReportResponse{Name: n})
	}
	return out, nil
}

// DownloadArchivedReport implements report.ReportService.
func (s *ReportServiceImpl) DownloadArchivedReport(ctx context.Context, name string) (report.ExportedFile, error) {
	if !archiveNameRegex.MatchString(name) {
		return report.ExportedFile{}, report.ErrInvalidArchiveName
	}

	rc, err := s.fileStorage.Download(ctx, report.ArchivePrefix+name)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return report.ExportedFile{}, report.ErrArchiveNotFound
		}
		return report.ExportedFile{}, fmt.Errorf("failed to download archive %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return report.ExportedFile{}, fmt.Errorf("failed to read archive %s: %w", name, err)
	}

	return report.ExportedFile{
		Filename:    name,
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}

func cacheKey(req report.AttendanceReportRequest) string {
	start, end := req.Range()
	return fmt.Sprintf("attendance:%s:%s:%s:%s",
		utils.FormatDate(start),
		utils.FormatDate(end),
		req.Department,
		strings.ToLower(strings.TrimSpace(req.Name)),
	)
}

func archiveName(start, end string) string {
	return fmt.Sprintf("attendance_%s_%s.xlsx", start, end)
}
