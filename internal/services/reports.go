package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"smartbill/internal/models"
)

// ReportService aggregates already-persisted invoices for the dashboard and
// the daily sales summary. It never mutates catalog or invoice state.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{DB: db} }

type DashboardStats struct {
	Clients  int64           `json:"clients"`
	Products int64           `json:"products"`
	Invoices int64           `json:"invoices"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Stats returns entity counts and the all-time revenue (sum of invoice totals).
func (s *ReportService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{Revenue: decimal.Zero}
	if err := s.DB.Model(&models.Client{}).Count(&stats.Clients).Error; err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	if err := s.DB.Model(&models.Product{}).Count(&stats.Products).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	var invoices []models.Invoice
	if err := s.DB.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	stats.Invoices = int64(len(invoices))
	for _, inv := range invoices {
		stats.Revenue = stats.Revenue.Add(inv.Total)
	}
	return stats, nil
}

type DaySales struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// SalesByDay buckets invoice totals per calendar day and returns the most
// recent days with sales, oldest first, capped at the given count.
func (s *ReportService) SalesByDay(days int) ([]DaySales, error) {
	if days <= 0 {
		days = 7
	}
	var invoices []models.Invoice
	if err := s.DB.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	byDay := map[string]decimal.Decimal{}
	for _, inv := range invoices {
		day := inv.Date.Format("2006-01-02")
		byDay[day] = byDay[day].Add(inv.Total)
	}
	out := make([]DaySales, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, DaySales{Date: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > days {
		out = out[len(out)-days:]
	}
	return out, nil
}

type DailySummary struct {
	Date     string          `json:"date"`
	Total    decimal.Decimal `json:"total"`
	Invoices []InvoiceLine   `json:"invoices"`
}

type InvoiceLine struct {
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// DailySummary collects the invoices dated on the given day.
func (s *ReportService) DailySummary(day time.Time) (*DailySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var invoices []models.Invoice
	if err := s.DB.Where("date >= ? AND date < ?", start, end).Order("id").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("load invoices for %s: %w", start.Format("2006-01-02"), err)
	}
	summary := &DailySummary{Date: start.Format("2006-01-02"), Total: decimal.Zero}
	for _, inv := range invoices {
		summary.Total = summary.Total.Add(inv.Total)
		summary.Invoices = append(summary.Invoices, InvoiceLine{Number: inv.Number, Total: inv.Total})
	}
	return summary, nil
}
