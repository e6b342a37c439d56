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

// menuKind is which transition menu is open over the table.
type menuKind int

const (
	menuClosed menuKind = iota
	menuLaundry
	menuPayment
)

type historiesModel struct {
	api   *apiclient.Client
	limit int
	guard *stale.Guard

	loading bool
	busy    bool
	alert   string

	rows []apiclient.Transaction
	meta apiclient.ListMeta
	page int
	row  int

	menu     menuKind
	detail   *apiclient.Transaction
	showMore bool
}

type txPageMsg struct {
	ticket uint64
	rows   []apiclient.Transaction
	meta   apiclient.ListMeta
	err    error
}

type txDetailMsg struct {
	tx  *apiclient.Transaction
	err error
}

type txMutatedMsg struct {
	id      int64
	laundry *status.Laundry
	payment *status.Payment
	err     error
}

func newHistories(api *apiclient.Client, limit int, guard *stale.Guard) *historiesModel {
	return &historiesModel{api: api, limit: limit, guard: guard, page: 1, loading: true}
}

func (m *historiesModel) capturing() bool { return false }

func (m *historiesModel) Init() tea.Cmd {
	return m.load()
}

func (m *historiesModel) load() tea.Cmd {
	api, page, limit := m.api, m.page, m.limit
	ticket := m.guard.Next()
	return func() tea.Msg {
		rows, meta, err := api.ListTransactions(context.Background(), apiclient.TxListParams{
			Page: page, Limit: limit,
		})
		return txPageMsg{ticket: ticket, rows: rows, meta: meta, err: err}
	}
}

func (m *historiesModel) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txPageMsg:
		if !m.guard.Latest(msg.ticket) {
			// A newer load is in flight; this response is stale.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal mengambil data riwayat.")
			return m, cmd
		}
		m.rows = msg.rows
		m.meta = msg.meta
		if m.row >= len(m.rows) {
			m.row = 0
		}
		return m, nil

	case txDetailMsg:
		m.busy = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal mengambil detail transaksi.")
			return m, cmd
		}
		m.detail = msg.tx
		return m, nil

	case txMutatedMsg:
		m.busy = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal mengupdate status.")
			return m, cmd
		}
		// Optimistic single-field patch; the next page change or refresh
		// reconciles with the server.
		for i := range m.rows {
			if m.rows[i].ID == msg.id {
				if msg.laundry != nil {
					m.rows[i].LaundryStatus = *msg.laundry
				}
				if msg.payment != nil {
					m.rows[i].PaymentStatus = *msg.payment
				}
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			if msg.String() == "esc" || msg.String() == "enter" {
				m.detail = nil
			}
			return m, nil
		}
		if m.menu != menuClosed {
			return m.updateMenu(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *historiesModel) updateMenu(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	if msg.String() == "esc" {
		m.menu = menuClosed
		return m, nil
	}
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '9' || m.busy || m.row >= len(m.rows) {
		return m, nil
	}
	idx := int(key[0] - '1')
	tx := m.rows[m.row]
	api := m.api

	switch m.menu {
	case menuLaundry:
		targets := status.LaundryTransitions(tx.LaundryStatus)
		if idx >= len(targets) {
			return m, nil
		}
		target := targets[idx]
		m.menu = menuClosed
		m.busy = true
		return m, func() tea.Msg {
			_, err := api.UpdateLaundryStatus(context.Background(), tx.ID, target)
			return txMutatedMsg{id: tx.ID, laundry: &target, err: err}
		}
	case menuPayment:
		targets := status.PaymentTransitions(tx.PaymentStatus)
		if idx >= len(targets) {
			return m, nil
		}
		target := targets[idx]
		m.menu = menuClosed
		m.busy = true
		return m, func() tea.Msg {
			_, err := api.UpdatePaymentStatus(context.Background(), tx.ID, target)
			return txMutatedMsg{id: tx.ID, payment: &target, err: err}
		}
	}
	return m, nil
}

func (m *historiesModel) updateTable(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.row > 0 {
			m.row--
		}
	case "down":
		if m.row < len(m.rows)-1 {
			m.row++
		}
	case "left":
		if m.page > 1 && !m.loading {
			m.page--
			m.loading = true
			return m, m.load()
		}
	case "right":
		if m.page < m.meta.LastPage && !m.loading {
			m.page++
			m.loading = true
			return m, m.load()
		}
	case "r":
		if !m.loading {
			m.loading = true
			m.alert = ""
			return m, m.load()
		}
	case "s":
		if m.row < len(m.rows) {
			m.menu = menuLaundry
		}
	case "b":
		if m.row < len(m.rows) {
			m.menu = menuPayment
		}
	case "enter":
		if m.busy || m.row >= len(m.rows) {
			return m, nil
		}
		id := m.rows[m.row].ID
		api := m.api
		m.busy = true
		return m, func() tea.Msg {
			tx, err := api.GetTransaction(context.Background(), id)
			return txDetailMsg{tx: tx, err: err}
		}
	case "esc":
		m.alert = ""
	}
	return m, nil
}

func (m *historiesModel) View() string {
	b := &strings.Builder{}
	if m.detail != nil {
		return m.viewDetail()
	}
	fmt.Fprintln(b, "  Riwayat Transaksi")
	if m.loading {
		fmt.Fprintln(b, "   Memuat...")
		return b.String()
	}
	if m.alert != "" {
		fmt.Fprintf(b, "   ! %s (esc tutup)\n", m.alert)
	}
	fmt.Fprintf(b, "   %-18s %-16s %-14s %-12s %s\n", "Invoice", "Pelanggan", "Cucian", "Bayar", "Total")
	for i, tx := range m.rows {
		marker := " "
		if i == m.row {
			marker = ">"
		}
		fmt.Fprintf(b, "  %s %-18s %-16s %-14s %-12s %s\n",
			marker, tx.InvoiceCode, tx.Customer.Name,
			tx.LaundryStatus.Chip().Label, tx.PaymentStatus.Chip().Label,
			money.FormatRupiah(tx.FinalTotalPrice))
	}
	if len(m.rows) == 0 {
		fmt.Fprintln(b, "   (belum ada transaksi)")
	}
	fmt.Fprintf(b, "\n   Hal %d/%d · %d-%d dari %d\n",
		m.page, m.meta.LastPage, m.meta.From, m.meta.To, m.meta.Total)

	if m.menu != menuClosed && m.row < len(m.rows) {
		tx := m.rows[m.row]
		fmt.Fprintln(b)
		switch m.menu {
		case menuLaundry:
			fmt.Fprintf(b, "   Ubah status cucian %s:\n", tx.InvoiceCode)
			for i, t := range status.LaundryTransitions(tx.LaundryStatus) {
				fmt.Fprintf(b, "    %d. %s\n", i+1, t.Chip().Label)
			}
		case menuPayment:
			fmt.Fprintf(b, "   Ubah status bayar %s:\n", tx.InvoiceCode)
			for i, t := range status.PaymentTransitions(tx.PaymentStatus) {
				fmt.Fprintf(b, "    %d. %s\n", i+1, t.Chip().Label)
			}
		}
		fmt.Fprintln(b, "    esc batal")
	}

	fmt.Fprintln(b, "\n  ←/→ halaman · enter detail · s status cucian · b status bayar · r muat ulang")
	return b.String()
}

func (m *historiesModel) viewDetail() string {
	tx := m.detail
	b := &strings.Builder{}
	fmt.Fprintf(b, "  Detail %s\n", tx.InvoiceCode)
	fmt.Fprintf(b, "   Pelanggan : %s (%s)\n", tx.Customer.Name, tx.Customer.Phone)
	fmt.Fprintf(b, "   Kasir     : %s\n", tx.Cashier.Name)
	fmt.Fprintf(b, "   Masuk     : %s · Estimasi selesai: %s\n", tx.DropOffDate, tx.EstimatedDoneDate)
	fmt.Fprintf(b, "   Cucian    : %s · Bayar: %s\n",
		tx.LaundryStatus.Chip().Label, tx.PaymentStatus.Chip().Label)
	fmt.Fprintln(b)
	for _, d := range tx.Details {
		fmt.Fprintf(b, "   %-20s %8s %-4s × %-10s = %s\n",
			d.Package.Name, d.QtyWeight.String(), d.Package.Unit,
			money.FormatRupiah(d.PricePerUnit), money.FormatRupiah(d.Subtotal))
	}
	fmt.Fprintln(b)
	fmt.Fprintf(b, "   Subtotal    : %s\n", money.FormatRupiah(tx.SubtotalBeforeDiscount))
	fmt.Fprintf(b, "   Diskon      : %s\n", money.FormatRupiah(tx.DiscountAmount))
	fmt.Fprintf(b, "   Total Akhir : %s\n", money.FormatRupiah(tx.FinalTotalPrice))
	fmt.Fprintln(b, "\n  esc kembali")
	return b.String()
}
