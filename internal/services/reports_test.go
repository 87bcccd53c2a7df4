package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"smartbill/internal/models"
	"smartbill/internal/repo"
)

func TestStatsCountsAndRevenue(t *testing.T) {
	db := setupTestDB(t)
	client, a, _ := seedCatalog(t, db)
	svc := NewBillingService(db)
	reports := NewReportService(db)

	empty, err := reports.Stats()
	require.NoError(t, err)
	require.EqualValues(t, 1, empty.Clients)
	require.EqualValues(t, 2, empty.Products)
	require.Zero(t, empty.Invoices)
	requireDecimal(t, "0", empty.Revenue)

	_, err = svc.CreateInvoice(client.ID, []LineRequest{{ProductID: a.ID, Quantity: 2}})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(client.ID, []LineRequest{{ProductID: a.ID, Quantity: 1}})
	require.NoError(t, err)

	stats, err := reports.Stats()
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.Invoices)
	requireDecimal(t, "300", stats.Revenue)
}

func TestSalesByDayBucketsAndCaps(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReportService(db)

	now := time.Now()
	for i := 0; i < 10; i++ {
		inv := models.Invoice{
			Number:   fmt.Sprintf("INV-TEST-%04d", i+1),
			ClientID: 1,
			Total:    decimal.NewFromInt(int64(10 * (i + 1))),
			GST:      decimal.Zero,
			Date:     now.AddDate(0, 0, -i),
		}
		require.NoError(t, db.Create(&inv).Error)
	}

	sales, err := reports.SalesByDay(7)
	require.NoError(t, err)
	require.Len(t, sales, 7)
	// Oldest first, most recent day last.
	require.Equal(t, now.Format("2006-01-02"), sales[len(sales)-1].Date)
	requireDecimal(t, "10", sales[len(sales)-1].Total)
	for i := 1; i < len(sales); i++ {
		require.Less(t, sales[i-1].Date, sales[i].Date)
	}
}

func TestDailySummaryCollectsTodayOnly(t *testing.T) {
	db := setupTestDB(t)
	client, a, _ := seedCatalog(t, db)
	svc := NewBillingService(db)
	reports := NewReportService(db)

	_, err := svc.CreateInvoice(client.ID, []LineRequest{{ProductID: a.ID, Quantity: 2}})
	require.NoError(t, err)
	old := models.Invoice{Number: "INV-2020-0001", ClientID: client.ID, Total: decimal.NewFromInt(77), GST: decimal.Zero, Date: time.Now().AddDate(0, 0, -3)}
	require.NoError(t, db.Create(&old).Error)

	summary, err := reports.DailySummary(time.Now())
	require.NoError(t, err)
	require.Len(t, summary.Invoices, 1)
	requireDecimal(t, "200", summary.Total)
	require.Equal(t, time.Now().Format("2006-01-02"), summary.Date)
}

type captureNotifier struct {
	recipient string
	summary   *DailySummary
}

func (c *captureNotifier) SendDailySummary(recipient string, summary *DailySummary) error {
	c.recipient = recipient
	c.summary = summary
	return nil
}

func TestSummaryJobDeliversWithConfiguredRecipient(t *testing.T) {
	db := setupTestDB(t)
	client, a, _ := seedCatalog(t, db)
	svc := NewBillingService(db)
	settings := repo.NewSettingRepo(db)
	require.NoError(t, settings.Put(models.SettingSalesSummaryEmail, "shop@example.com"))
	_, err := svc.CreateInvoice(client.ID, []LineRequest{{ProductID: a.ID, Quantity: 1}})
	require.NoError(t, err)

	sink := &captureNotifier{}
	job := &SummaryJob{Reports: NewReportService(db), Settings: settings, Notifier: sink}
	job.Run()

	require.Equal(t, "shop@example.com", sink.recipient)
	require.NotNil(t, sink.summary)
	requireDecimal(t, "100", sink.summary.Total)
}
