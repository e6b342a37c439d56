package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/stale"
)

// formMode says what the open form will do with its values on save.
type formMode int

const (
	formNone formMode = iota
	formCreate
	formEdit
	formSearch
	formConfirmDelete
)

type customersModel struct {
	api   *apiclient.Client
	limit int
	guard *stale.Guard

	loading bool
	busy    bool
	alert   string
	notice  string

	rows   []apiclient.Customer
	meta   apiclient.ListMeta
	page   int
	search string
	row    int

	mode   formMode
	editID int64
	fields []field
	focus  int
}

type customerPageMsg struct {
	ticket uint64
	rows   []apiclient.Customer
	meta   apiclient.ListMeta
	err    error
}

type customerSavedMsg struct {
	notice string
	err    error
}

func newCustomers(api *apiclient.Client, limit int, guard *stale.Guard) *customersModel {
	return &customersModel{api: api, limit: limit, guard: guard, page: 1, loading: true}
}

func (m *customersModel) capturing() bool {
	return m.mode == formCreate || m.mode == formEdit || m.mode == formSearch
}

func (m *customersModel) Init() tea.Cmd {
	return m.load()
}

func (m *customersModel) load() tea.Cmd {
	api := m.api
	params := apiclient.ListParams{Search: m.search, Page: m.page, Limit: m.limit}
	ticket := m.guard.Next()
	return func() tea.Msg {
		rows, meta, err := api.ListCustomers(context.Background(), params)
		return customerPageMsg{ticket: ticket, rows: rows, meta: meta, err: err}
	}
}

func (m *customersModel) openForm(mode formMode, prefill *apiclient.Customer) {
	m.mode = mode
	m.focus = 0
	m.fields = []field{
		{label: "Nama", focused: true},
		{label: "Telepon"},
		{label: "Alamat"},
	}
	if prefill != nil {
		m.editID = prefill.ID
		m.fields[0].value = prefill.Name
		m.fields[1].value = prefill.Phone
		m.fields[2].value = prefill.Address
	}
}

func (m *customersModel) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case customerPageMsg:
		if !m.guard.Latest(msg.ticket) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal memuat data pelanggan.")
			return m, cmd
		}
		m.rows = msg.rows
		m.meta = msg.meta
		if m.row >= len(m.rows) {
			m.row = 0
		}
		return m, nil

	case customerSavedMsg:
		m.busy = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.alert, cmd = pageError(msg.err, "Gagal menyimpan pelanggan.")
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

func (m *customersModel) updateForm(msg tea.KeyMsg) (pageModel, tea.Cmd) {
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
		in := apiclient.CustomerInput{
			Name:    strings.TrimSpace(m.fields[0].value),
			Phone:   strings.TrimSpace(m.fields[1].value),
			Address: strings.TrimSpace(m.fields[2].value),
		}
		if in.Name == "" {
			m.alert = "Nama pelanggan wajib diisi."
			return m, nil
		}
		mode, id, api := m.mode, m.editID, m.api
		m.mode = formNone
		m.busy = true
		m.alert = ""
		return m, func() tea.Msg {
			var err error
			notice := fmt.Sprintf("Pelanggan %s berhasil disimpan!", in.Name)
			if mode == formEdit {
				err = api.UpdateCustomer(context.Background(), id, in)
			} else {
				err = api.CreateCustomer(context.Background(), in)
			}
			return customerSavedMsg{notice: notice, err: err}
		}
	default:
		m.fields[m.focus].handleKey(msg)
	}
	return m, nil
}

func (m *customersModel) updateSearch(msg tea.KeyMsg) (pageModel, tea.Cmd) {
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

func (m *customersModel) updateConfirm(msg tea.KeyMsg) (pageModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.busy || m.row >= len(m.rows) {
			return m, nil
		}
		c := m.rows[m.row]
		api := m.api
		m.mode = formNone
		m.busy = true
		return m, func() tea.Msg {
			err := api.DeleteCustomer(context.Background(), c.ID)
			return customerSavedMsg{notice: fmt.Sprintf("Pelanggan %s berhasil dihapus!", c.Name), err: err}
		}
	case "n", "esc":
		m.mode = formNone
	}
	return m, nil
}

func (m *customersModel) updateTable(msg tea.KeyMsg) (pageModel, tea.Cmd) {
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
		m.openForm(formSearch, nil)
		m.fields = []field{{label: "Cari", value: m.search, focused: true}}
	case "a":
		m.openForm(formCreate, nil)
	case "e":
		if m.row < len(m.rows) {
			c := m.rows[m.row]
			m.openForm(formEdit, &c)
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

func (m *customersModel) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "  Pelanggan")
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
		title := "Tambah Pelanggan"
		if m.mode == formEdit {
			title = "Ubah Pelanggan"
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
			fmt.Fprintf(b, "\n   Yakin ingin menghapus pelanggan %s? (y/n)\n", m.rows[m.row].Name)
		}
		return b.String()
	}

	fmt.Fprintf(b, "   %-20s %-16s %s\n", "Nama", "Telepon", "Alamat")
	for i, c := range m.rows {
		marker := " "
		if i == m.row {
			marker = ">"
		}
		fmt.Fprintf(b, "  %s %-20s %-16s %s\n", marker, c.Name, c.Phone, c.Address)
	}
	if len(m.rows) == 0 {
		fmt.Fprintln(b, "   (tidak ada pelanggan)")
	}
	fmt.Fprintf(b, "\n   Hal %d/%d · %d-%d dari %d\n",
		m.page, m.meta.LastPage, m.meta.From, m.meta.To, m.meta.Total)
	fmt.Fprintln(b, "\n  / cari · a tambah · e ubah · x hapus · ←/→ halaman · r muat ulang")
	return b.String()
}
