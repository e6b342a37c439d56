package stub

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/status"
)

// Stats aggregates the home-page counters from the current transaction
// set. Paid revenue counts on the transaction's creation day.
func (s *Store) Stats() apiclient.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	revenueToday := decimal.Zero
	revenueYesterday := decimal.Zero
	newToday := 0
	processing := 0
	for _, tx := range s.transactions {
		day := tx.CreatedAt.Format("2006-01-02")
		if tx.PaymentStatus == status.PaymentPaid {
			switch day {
			case today:
				revenueToday = revenueToday.Add(tx.FinalTotalPrice)
			case yesterday:
				revenueYesterday = revenueYesterday.Add(tx.FinalTotalPrice)
			}
		}
		if day == today && tx.LaundryStatus == status.LaundryNew {
			newToday++
		}
		if tx.LaundryStatus == status.LaundryProcessing {
			processing++
		}
	}

	changePercent := 0.0
	if revenueYesterday.Sign() > 0 {
		diff := revenueToday.Sub(revenueYesterday).Div(revenueYesterday)
		changePercent, _ = diff.Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	processingPct := 0.0
	if n := len(s.transactions); n > 0 {
		processingPct = float64(processing) / float64(n) * 100
	}

	return apiclient.DashboardStats{
		TotalRevenueToday:     revenueToday,
		RevenueChangePercent:  changePercent,
		NewOrdersToday:        newToday,
		TotalCustomers:        len(s.customers),
		TotalProcessingOrders: processing,
		ProcessingPercentage:  processingPct,
	}
}

// Charts builds the three home-page series: revenue per day over the last
// week, order counts per day, and quantity per package.
func (s *Store) Charts() apiclient.DashboardCharts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	days := make([]string, 7)
	revenue := make([]float64, 7)
	orders := make([]float64, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6).Format("2006-01-02")
		days[i] = day
		index[day] = i
	}

	perPackage := make(map[string]decimal.Decimal)
	for _, tx := range s.transactions {
		day := tx.CreatedAt.Format("2006-01-02")
		if i, ok := index[day]; ok {
			orders[i]++
			if tx.PaymentStatus == status.PaymentPaid {
				v, _ := tx.FinalTotalPrice.Float64()
				revenue[i] += v
			}
		}
		for _, d := range tx.Details {
			perPackage[d.Package.Name] = perPackage[d.Package.Name].Add(d.QtyWeight)
		}
	}

	var pkgLabels []string
	for name := range perPackage {
		pkgLabels = append(pkgLabels, name)
	}
	// Stable label order keeps the chart deterministic across calls.
	sort.Strings(pkgLabels)
	pkgValues := make([]float64, len(pkgLabels))
	for i, name := range pkgLabels {
		pkgValues[i], _ = perPackage[name].Float64()
	}

	return apiclient.DashboardCharts{
		DailyRevenue: apiclient.ChartSeries{Labels: days, Values: revenue},
		WeeklyOrders: apiclient.ChartSeries{Labels: days, Values: orders},
		TopPackages:  apiclient.ChartSeries{Labels: pkgLabels, Values: pkgValues},
	}
}
