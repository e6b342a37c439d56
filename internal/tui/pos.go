package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/money"
	"github.com/laundromat-id/adminctl/internal/order"
	"github.com/laundromat-id/adminctl/internal/stale"
	"github.com/laundromat-id/adminctl/internal/status"
)

// editTarget says which value the numeric buffer is being typed into.
type editTarget int

const (
	editNone editTarget = iota
	editQuantity
	editDiscount
	editDate
)

type posModel struct {
	api   *apiclient.Client
	guard *stale.Guard

	loading bool
	busy    bool
	alert   string
	notice  string

	master *apiclient.MasterData
	draft  *order.Draft

	row       int // selected line item
	customer  int // index into master.Customers
	pkgChoice []int

	edit   editTarget
	buffer string
}

type masterLoadedMsg struct {
	ticket uint64
	master *apiclient.MasterData
	err    error
}

type submittedMsg struct {
	invoiceCode string
	err         error
}

func newPOS(api *apiclient.Client, guard *stale.Guard) *posModel {
	return &posModel{api: api, guard: guard, loading: true}
}

func (m *posModel) capturing() bool { return m.edit != editNone }

func (m *posModel) Init() tea.Cmd {
	api := m.api
	ticket := m.guard.Next()
	return func() tea.Msg {
		master, err := api.TransactionCreateData(context.Background())
		return masterLoadedMsg{ticket: ticket, master: master, err: err}
	}
}

func (m *posModel) reset() {
	m.draft = order.NewDraft(time.Now())
	m.row = 0
	m.customer = 0
	m.pkgChoice = []int{-1}
	if m.master != nil && len(m.master.Customers) > 0 {
		m.draft.CustomerID = m.master.Customers[0].ID
	}
}

func (m *posModel) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case masterLoadedMsg:
		if !m.guard.Latest(msg.ticket) {
			// A load fired by an earlier page visit; applying it would
			// reset the draft the cashier is working on.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal memuat data pelanggan dan layanan.")
			return m, cmd
		}
		m.master = msg.master
		m.reset()
		return m, nil

	case submittedMsg:
		m.busy = false
		if msg.err != nil {
			// Draft stays untouched so the cashier can retry.
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal menyimpan transaksi. Cek data dan koneksi API.")
			return m, cmd
		}
		m.notice = fmt.Sprintf("Transaksi %s berhasil dibuat!", msg.invoiceCode)
		m.reset()
		return m, nil

	case tea.KeyMsg:
		if m.master == nil {
			return m, nil
		}
		if m.edit != editNone {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *posModel) updateEditing(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value, err := decimal.NewFromString(strings.TrimSpace(m.buffer))
		if err != nil {
			value = decimal.Zero
		}
		switch m.edit {
		case editQuantity:
			m.draft.SetQuantity(m.row, value)
		case editDiscount:
			m.draft.SetDiscount(value)
		case editDate:
			if day, derr := time.Parse("2006-01-02", strings.TrimSpace(m.buffer)); derr == nil {
				m.draft.DropOffDate = day
			} else {
				m.alert = "Format tanggal harus YYYY-MM-DD."
			}
		}
		m.draft.Totals()
		m.edit = editNone
		m.buffer = ""
	case "esc":
		m.edit = editNone
		m.buffer = ""
	default:
		switch msg.Type {
		case tea.KeyBackspace:
			if len(m.buffer) > 0 {
				m.buffer = m.buffer[:len(m.buffer)-1]
			}
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				if (r >= '0' && r <= '9') || r == '.' || (r == '-' && m.edit == editDate) {
					m.buffer += string(r)
				}
			}
		}
	}
	return m, nil
}

func (m *posModel) updateBrowsing(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.row > 0 {
			m.row--
		}
	case "down":
		if m.row < len(m.draft.Items)-1 {
			m.row++
		}
	case "a":
		m.draft.AddItem()
		m.pkgChoice = append(m.pkgChoice, -1)
		m.row = len(m.draft.Items) - 1
	case "x":
		if len(m.draft.Items) > 1 {
			m.draft.RemoveItem(m.row)
			m.pkgChoice = append(m.pkgChoice[:m.row], m.pkgChoice[m.row+1:]...)
			if m.row >= len(m.draft.Items) {
				m.row = len(m.draft.Items) - 1
			}
			m.draft.Totals()
		}
	case "p":
		// Cycle the selected row through the available packages; picking
		// one copies its current price and unit onto the line.
		if n := len(m.master.Packages); n > 0 {
			m.pkgChoice[m.row] = (m.pkgChoice[m.row] + 1) % n
			pkg := m.master.Packages[m.pkgChoice[m.row]]
			m.draft.SelectPackage(m.row, order.PackageInfo{
				ID:                pkg.ID,
				Name:              pkg.Name,
				Unit:              pkg.Unit,
				Price:             pkg.Price,
				EstimatedDuration: pkg.EstimatedDuration,
			})
			m.draft.Totals()
		}
	case "c":
		if n := len(m.master.Customers); n > 0 {
			m.customer = (m.customer + 1) % n
			m.draft.CustomerID = m.master.Customers[m.customer].ID
		}
	case "w":
		m.edit = editQuantity
		m.buffer = ""
	case "d":
		m.edit = editDiscount
		m.buffer = ""
	case "t":
		m.edit = editDate
		m.buffer = ""
	case "b":
		if m.draft.PaymentStatus == status.PaymentPending {
			m.draft.PaymentStatus = status.PaymentPaid
		} else {
			m.draft.PaymentStatus = status.PaymentPending
		}
	case "esc":
		m.alert = ""
		m.notice = ""
	case "enter":
		if m.busy {
			return m, nil
		}
		if err := m.draft.Validate(); err != nil {
			m.alert = err.Error()
			return m, nil
		}
		user := m.master.CurrentUserID
		payload := m.draft.Payload(user)
		m.busy = true
		m.alert = ""
		m.notice = ""
		api := m.api
		return m, func() tea.Msg {
			code, err := api.CreateTransaction(context.Background(), payload)
			return submittedMsg{invoiceCode: code, err: err}
		}
	}
	return m, nil
}

func (m *posModel) customerName() string {
	if m.master == nil || m.customer >= len(m.master.Customers) {
		return "-"
	}
	return m.master.Customers[m.customer].Name
}

func (m *posModel) packageName(row int) string {
	if m.pkgChoice[row] < 0 {
		return "(pilih paket)"
	}
	return m.master.Packages[m.pkgChoice[row]].Name
}

func (m *posModel) View() string {
	b := &strings.Builder{}
	if m.loading {
		fmt.Fprintln(b, "  Memuat data master...")
		return b.String()
	}
	if m.master == nil {
		if m.alert != "" {
			fmt.Fprintf(b, "  ! %s\n", m.alert)
		}
		return b.String()
	}

	t := m.draft.Totals()
	fmt.Fprintln(b, "  Transaksi Baru")
	fmt.Fprintf(b, "   Pelanggan : %s (c ganti)\n", m.customerName())
	fmt.Fprintf(b, "   Tanggal   : %s (t ganti)\n", m.draft.DropOffDate.Format("2006-01-02"))
	fmt.Fprintf(b, "   Bayar     : %s (b ganti)\n", m.draft.PaymentStatus.Chip().Label)
	fmt.Fprintln(b)
	fmt.Fprintln(b, "   Item Layanan")
	for i, it := range m.draft.Items {
		marker := " "
		if i == m.row {
			marker = ">"
		}
		fmt.Fprintf(b, "   %s %-20s %8s %-4s × %-10s = %s\n",
			marker, m.packageName(i), it.Quantity.String(), it.Unit,
			money.FormatRupiah(it.UnitPrice), money.FormatRupiah(it.Subtotal()))
	}
	fmt.Fprintln(b)
	fmt.Fprintf(b, "   Subtotal    : %s\n", money.FormatRupiah(t.Subtotal))
	fmt.Fprintf(b, "   Diskon      : %s\n", money.FormatRupiah(t.Discount))
	fmt.Fprintf(b, "   Total Akhir : %s\n", money.FormatRupiah(t.FinalTotal))

	switch m.edit {
	case editQuantity:
		fmt.Fprintf(b, "\n   Qty baris %d: %s_\n", m.row+1, m.buffer)
	case editDiscount:
		fmt.Fprintf(b, "\n   Diskon: %s_\n", m.buffer)
	case editDate:
		fmt.Fprintf(b, "\n   Tanggal (YYYY-MM-DD): %s_\n", m.buffer)
	}

	if m.busy {
		fmt.Fprintln(b, "\n   Menyimpan transaksi...")
	}
	if m.alert != "" {
		fmt.Fprintf(b, "\n   ! %s (esc tutup)\n", m.alert)
	}
	if m.notice != "" {
		fmt.Fprintf(b, "\n   ✓ %s (esc tutup)\n", m.notice)
	}
	fmt.Fprintln(b, "\n  a tambah item · x hapus · p paket · w qty · d diskon · t tanggal · enter simpan")
	return b.String()
}
