package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
)

const archiveJobName = "archive_weekly_attendance_report"

// ReportJobs archives last week's attendance workbook once the configured
// weekday and hour have passed. Archiving is idempotent, so the hourly tick
// may fire several times in the window.
type ReportJobs struct {
	reportService report.ReportService
	weekday       time.Weekday
	hour          int
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, weekday time.Weekday, hour int) *ReportJobs {
	return &ReportJobs{
		reportService: reportService,
		weekday:       weekday,
		hour:          hour,
		now:           time.Now,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(archiveJobName, 1*time.Hour, 10*time.Minute, j.ArchiveWeeklyReport)
}

func (j *ReportJobs) ArchiveWeeklyReport(ctx context.Context) error {
	now := j.now()
	if now.Weekday() != j.weekday || now.Hour() < j.hour {
		return nil
	}

	key, err := j.reportService.ArchiveWeeklyReport(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to archive weekly report: %w", err)
	}

	slog.Info("Cron: weekly attendance report archived", "key", key)
	return nil
}
