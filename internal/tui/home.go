package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/money"
	"github.com/laundromat-id/adminctl/internal/stale"
	"github.com/laundromat-id/adminctl/internal/status"
)

type homeModel struct {
	api   *apiclient.Client
	guard *stale.Guard

	loading bool
	alert   string

	stats      *apiclient.DashboardStats
	charts     *apiclient.DashboardCharts
	inProcess  []apiclient.Transaction
	activities []apiclient.Transaction
}

type homeLoadedMsg struct {
	ticket     uint64
	stats      *apiclient.DashboardStats
	charts     *apiclient.DashboardCharts
	inProcess  []apiclient.Transaction
	activities []apiclient.Transaction
	err        error
}

func newHome(api *apiclient.Client, guard *stale.Guard) *homeModel {
	return &homeModel{api: api, guard: guard, loading: true}
}

func (m *homeModel) capturing() bool { return false }

func (m *homeModel) Init() tea.Cmd {
	api := m.api
	ticket := m.guard.Next()
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := api.DashboardStats(ctx)
		if err != nil {
			return homeLoadedMsg{ticket: ticket, err: err}
		}
		charts, err := api.DashboardCharts(ctx)
		if err != nil {
			return homeLoadedMsg{ticket: ticket, err: err}
		}
		inProcess, _, err := api.ListTransactions(ctx, apiclient.TxListParams{
			Limit:    5,
			StatusIn: []status.Laundry{status.LaundryNew, status.LaundryProcessing},
		})
		if err != nil {
			return homeLoadedMsg{ticket: ticket, err: err}
		}
		activities, _, err := api.ListTransactions(ctx, apiclient.TxListParams{Limit: 4})
		if err != nil {
			return homeLoadedMsg{ticket: ticket, err: err}
		}
		return homeLoadedMsg{
			ticket:     ticket,
			stats:      stats,
			charts:     charts,
			inProcess:  inProcess,
			activities: activities,
		}
	}
}

func (m *homeModel) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		if !m.guard.Latest(msg.ticket) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal memuat data dashboard.")
			return m, cmd
		}
		m.stats = msg.stats
		m.charts = msg.charts
		m.inProcess = msg.inProcess
		m.activities = msg.activities
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if !m.loading {
				m.loading = true
				m.alert = ""
				return m, m.Init()
			}
		case "esc":
			m.alert = ""
		}
	}
	return m, nil
}

func progressBar(weight int) string {
	const width = 20
	filled := weight * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m *homeModel) View() string {
	b := &strings.Builder{}
	if m.loading {
		fmt.Fprintln(b, "  Memuat data dashboard...")
		return b.String()
	}
	if m.alert != "" {
		fmt.Fprintf(b, "  ! %s (esc tutup)\n\n", m.alert)
	}
	if m.stats != nil {
		s := m.stats
		fmt.Fprintln(b, "  Ringkasan Hari Ini")
		fmt.Fprintf(b, "   Pendapatan       : %s (%+.1f%% vs kemarin)\n",
			money.FormatRupiah(s.TotalRevenueToday), s.RevenueChangePercent)
		fmt.Fprintf(b, "   Order Baru       : %d\n", s.NewOrdersToday)
		fmt.Fprintf(b, "   Total Pelanggan  : %d\n", s.TotalCustomers)
		fmt.Fprintf(b, "   Sedang Diproses  : %d (%.0f%% dari total order)\n",
			s.TotalProcessingOrders, s.ProcessingPercentage)
		fmt.Fprintln(b)
	}
	if len(m.inProcess) > 0 {
		fmt.Fprintln(b, "  Order Dalam Proses")
		for _, tx := range m.inProcess {
			p := tx.LaundryStatus.Progress()
			service, weight := "N/A", ""
			if len(tx.Details) > 0 {
				service = tx.Details[0].Package.Name
				weight = fmt.Sprintf("%s %s", tx.Details[0].QtyWeight.String(), tx.Details[0].Package.Unit)
			}
			fmt.Fprintf(b, "   %-18s %-16s %-14s %-8s %s %3d%% %s\n",
				tx.InvoiceCode, tx.Customer.Name, service, weight, progressBar(p.Weight), p.Weight, p.Text)
		}
		fmt.Fprintln(b)
	}
	if len(m.activities) > 0 {
		fmt.Fprintln(b, "  Aktivitas Terakhir")
		for _, tx := range m.activities {
			fmt.Fprintf(b, "   %s  Order #%s — %s\n",
				tx.CreatedAt.Format("15:04"), tx.InvoiceCode, tx.LaundryStatus.Progress().Text)
		}
		fmt.Fprintln(b)
	}
	if m.charts != nil {
		fmt.Fprintln(b, "  Pendapatan 7 Hari")
		for i, label := range m.charts.DailyRevenue.Labels {
			if i < len(m.charts.DailyRevenue.Values) {
				fmt.Fprintf(b, "   %s  %s\n", label,
					money.FormatRupiah(money.FromRupiah(int64(m.charts.DailyRevenue.Values[i]))))
			}
		}
	}
	fmt.Fprintln(b, "\n  r muat ulang")
	return b.String()
}
