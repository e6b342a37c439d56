package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/money"
	"github.com/laundromat-id/adminctl/internal/stale"
)

type packagesModel struct {
	api   *apiclient.Client
	limit int
	guard *stale.Guard

	loading bool
	busy    bool
	alert   string
	notice  string

	rows   []apiclient.Package
	meta   apiclient.ListMeta
	page   int
	search string
	row    int

	mode   formMode
	editID int64
	fields []field
	focus  int
}

type packagePageMsg struct {
	ticket uint64
	rows   []apiclient.Package
	meta   apiclient.ListMeta
	err    error
}

type packageSavedMsg struct {
	notice string
	err    error
}

func newPackages(api *apiclient.Client, limit int, guard *stale.Guard) *packagesModel {
	return &packagesModel{api: api, limit: limit, guard: guard, page: 1, loading: true}
}

func (m *packagesModel) capturing() bool {
	return m.mode == formCreate || m.mode == formEdit || m.mode == formSearch
}

func (m *packagesModel) Init() tea.Cmd {
	return m.load()
}

func (m *packagesModel) load() tea.Cmd {
	api := m.api
	params := apiclient.ListParams{Search: m.search, Page: m.page, Limit: m.limit}
	ticket := m.guard.Next()
	return func() tea.Msg {
		rows, meta, err := api.ListPackages(context.Background(), params)
		return packagePageMsg{ticket: ticket, rows: rows, meta: meta, err: err}
	}
}

func (m *packagesModel) openForm(mode formMode, prefill *apiclient.Package) {
	m.mode = mode
	m.focus = 0
	m.fields = []field{
		{label: "Nama", focused: true},
		{label: "Satuan (kg/pcs)"},
		{label: "Harga"},
		{label: "Estimasi (hari)"},
	}
	if prefill != nil {
		m.editID = prefill.ID
		m.fields[0].value = prefill.Name
		m.fields[1].value = prefill.Unit
		m.fields[2].value = prefill.Price.String()
		m.fields[3].value = strconv.Itoa(prefill.EstimatedDuration)
	}
}

func (m *packagesModel) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case packagePageMsg:
		if !m.guard.Latest(msg.ticket) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal memuat data paket.")
			return m, cmd
		}
		m.rows = msg.rows
		m.meta = msg.meta
		if m.row >= len(m.rows) {
			m.row = 0
		}
		return m, nil

	case packageSavedMsg:
		m.busy = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal menyimpan paket.")
			return m, cmd
		}
		m.notice = msg.notice
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		switch m.mode {
		case formCreate, formEdit:
			return m.updateForm(msg)
		case formSearch:
			return m.updateSearch(msg)
		case formConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *packagesModel) updateForm(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = formNone
	case "tab", "down":
		m.fields[m.focus].focused = false
		m.focus = (m.focus + 1) % len(m.fields)
		m.fields[m.focus].focused = true
	case "enter":
		if m.busy {
			return m, nil
		}
		price, err := decimal.NewFromString(strings.TrimSpace(m.fields[2].value))
		if err != nil || price.Sign() <= 0 {
			m.alert = "Harga paket tidak valid."
			return m, nil
		}
		duration, _ := strconv.Atoi(strings.TrimSpace(m.fields[3].value))
		if duration < 1 {
			duration = 1
		}
		in := apiclient.PackageInput{
			Name:              strings.TrimSpace(m.fields[0].value),
			Unit:              strings.TrimSpace(m.fields[1].value),
			Price:             price,
			EstimatedDuration: duration,
		}
		if in.Name == "" || in.Unit == "" {
			m.alert = "Nama dan satuan paket wajib diisi."
			return m, nil
		}
		mode, id, api := m.mode, m.editID, m.api
		m.mode = formNone
		m.busy = true
		m.alert = ""
		return m, func() tea.Msg {
			var err error
			notice := fmt.Sprintf("Paket %q berhasil disimpan!", in.Name)
			if mode == formEdit {
				err = api.UpdatePackage(context.Background(), id, in)
			} else {
				err = api.CreatePackage(context.Background(), in)
			}
			return packageSavedMsg{notice: notice, err: err}
		}
	default:
		m.fields[m.focus].handleKey(msg)
	}
	return m, nil
}

func (m *packagesModel) updateSearch(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = formNone
	case "enter":
		m.mode = formNone
		m.search = strings.TrimSpace(m.fields[0].value)
		m.page = 1
		m.loading = true
		return m, m.load()
	default:
		m.fields[0].handleKey(msg)
	}
	return m, nil
}

func (m *packagesModel) updateConfirm(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.busy || m.row >= len(m.rows) {
			return m, nil
		}
		p := m.rows[m.row]
		api := m.api
		m.mode = formNone
		m.busy = true
		return m, func() tea.Msg {
			err := api.DeletePackage(context.Background(), p.ID)
			return packageSavedMsg{notice: fmt.Sprintf("Paket %q berhasil dihapus!", p.Name), err: err}
		}
	case "n", "esc":
		m.mode = formNone
	}
	return m, nil
}

func (m *packagesModel) updateTable(msg tea.KeyMsg) (pageModel, tea.Cmd) {
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
	case "/":
		m.mode = formSearch
		m.fields = []field{{label: "Cari", value: m.search, focused: true}}
	case "a":
		m.openForm(formCreate, nil)
	case "e":
		if m.row < len(m.rows) {
			p := m.rows[m.row]
			m.openForm(formEdit, &p)
		}
	case "x":
		if m.row < len(m.rows) {
			m.mode = formConfirmDelete
		}
	case "r":
		if !m.loading {
			m.loading = true
			m.alert = ""
			return m, m.load()
		}
	case "esc":
		m.alert = ""
		m.notice = ""
	}
	return m, nil
}

func (m *packagesModel) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "  Paket Layanan")
	if m.search != "" {
		fmt.Fprintf(b, "   Filter: %q\n", m.search)
	}
	if m.loading {
		fmt.Fprintln(b, "   Memuat...")
		return b.String()
	}
	if m.alert != "" {
		fmt.Fprintf(b, "   ! %s (esc tutup)\n", m.alert)
	}
	if m.notice != "" {
		fmt.Fprintf(b, "   ✓ %s (esc tutup)\n", m.notice)
	}

	switch m.mode {
	case formCreate, formEdit:
		title := "Tambah Paket"
		if m.mode == formEdit {
			title = "Ubah Paket"
		}
		fmt.Fprintf(b, "\n   %s\n", title)
		for _, f := range m.fields {
			fmt.Fprintf(b, "   %s\n", f.view())
		}
		fmt.Fprintln(b, "\n   tab pindah kolom · enter simpan · esc batal")
		return b.String()
	case formSearch:
		fmt.Fprintf(b, "\n   %s\n", m.fields[0].view())
		fmt.Fprintln(b, "\n   enter cari · esc batal")
		return b.String()
	case formConfirmDelete:
		if m.row < len(m.rows) {
			fmt.Fprintf(b, "\n   Yakin ingin menghapus paket %q? Ini mungkin akan mempengaruhi data transaksi lama. (y/n)\n",
				m.rows[m.row].Name)
		}
		return b.String()
	}

	fmt.Fprintf(b, "   %-20s %-6s %-14s %s\n", "Nama", "Satuan", "Harga", "Estimasi")
	for i, p := range m.rows {
		marker := " "
		if i == m.row {
			marker = ">"
		}
		fmt.Fprintf(b, "  %s %-20s %-6s %-14s %d Hari\n",
			marker, p.Name, p.Unit, money.FormatRupiah(p.Price), p.EstimatedDuration)
	}
	if len(m.rows) == 0 {
		fmt.Fprintln(b, "   (tidak ada paket)")
	}
	fmt.Fprintf(b, "\n   Hal %d/%d · %d-%d dari %d\n",
		m.page, m.meta.LastPage, m.meta.From, m.meta.To, m.meta.Total)
	fmt.Fprintln(b, "\n  / cari · a tambah · e ubah · x hapus · ←/→ halaman · r muat ulang")
	return b.String()
}
