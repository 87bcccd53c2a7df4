package services

import (
	"log"
	"time"

	"smartbill/internal/models"
	"smartbill/internal/repo"
)

// Notifier delivers the daily sales summary. The transport (mail gateway,
// webhook, ...) lives behind this boundary; the core only hands over the data.
type Notifier interface {
	SendDailySummary(recipient string, summary *DailySummary) error
}

// LogNotifier writes the summary to the process log. Default when no real
// transport is configured.
type LogNotifier struct{}

func (LogNotifier) SendDailySummary(recipient string, summary *DailySummary) error {
	log.Printf("daily sales summary %s: total=%s invoices=%d recipient=%s",
		summary.Date, summary.Total.StringFixed(2), len(summary.Invoices), recipient)
	return nil
}

// SummaryJob is the cron job that assembles and delivers the daily summary.
// The recipient comes from the settings table and may be empty; the summary
// is still produced and logged so the day's numbers are never lost.
type SummaryJob struct {
	Reports  *ReportService
	Settings *repo.SettingRepo
	Notifier Notifier
}

func (j *SummaryJob) Run() {
	summary, err := j.Reports.DailySummary(time.Now())
	if err != nil {
		log.Printf("daily summary failed: %v", err)
		return
	}
	recipient, err := j.Settings.Get(models.SettingSalesSummaryEmail)
	if err != nil {
		log.Printf("daily summary recipient lookup failed: %v", err)
	}
	if err := j.Notifier.SendDailySummary(recipient, summary); err != nil {
		log.Printf("daily summary delivery failed: %v", err)
	}
}
