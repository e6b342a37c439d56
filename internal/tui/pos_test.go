package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/stale"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testMaster() *apiclient.MasterData {
	return &apiclient.MasterData{
		Customers: []apiclient.Customer{
			{ID: 1, Name: "Budi Santoso"},
			{ID: 2, Name: "Siti Rahma"},
		},
		Packages: []apiclient.Package{
			{ID: 10, Name: "Cuci Kering", Unit: "kg", Price: decimal.NewFromInt(7000), EstimatedDuration: 2},
			{ID: 11, Name: "Express", Unit: "kg", Price: decimal.NewFromInt(15000), EstimatedDuration: 1},
		},
		CurrentUserID: 1,
	}
}

func loadedPOS() *posModel {
	m := newPOS(nil, &stale.Guard{})
	var page pageModel
	page, _ = m.Update(masterLoadedMsg{ticket: m.guard.Next(), master: testMaster()})
	return page.(*posModel)
}

func typeKeys(t *testing.T, m *posModel, keys ...string) *posModel {
	t.Helper()
	for _, k := range keys {
		page, _ := m.Update(key(k))
		m = page.(*posModel)
	}
	return m
}

func TestPOSBuildsDraftFromKeys(t *testing.T) {
	m := loadedPOS()
	require.NotNil(t, m.draft)
	assert.Equal(t, int64(1), m.draft.CustomerID, "first customer preselected")

	// Pick the first package, type a quantity of 3, then add a second
	// line priced with the second package.
	m = typeKeys(t, m, "p", "w", "3")
	page, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)

	m = typeKeys(t, m, "a", "p", "p", "w", "1")
	page, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)

	m = typeKeys(t, m, "d", "5000")
	page, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)

	got := m.draft.Totals()
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(36000)), "subtotal %s", got.Subtotal)
	assert.True(t, got.FinalTotal.Equal(decimal.NewFromInt(31000)), "final %s", got.FinalTotal)
	require.NoError(t, m.draft.Validate())
}

func TestPOSSubmitBlockedShowsReason(t *testing.T) {
	m := loadedPOS()

	// No package selected yet: enter must not fire a request.
	page, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.NotEmpty(t, m.alert)
}

func TestPOSFailedSubmitKeepsDraft(t *testing.T) {
	m := loadedPOS()
	m = typeKeys(t, m, "p", "w", "2")
	page, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)
	draft := m.draft

	page, _ = m.Update(submittedMsg{err: &apiclient.APIError{Status: 502, Message: "server sibuk"}})
	m = page.(*posModel)
	assert.Same(t, draft, m.draft, "draft preserved for retry")
	assert.Equal(t, "server sibuk", m.alert)
}

func TestPOSEditsDropOffDate(t *testing.T) {
	m := loadedPOS()
	m = typeKeys(t, m, "t", "2026-09-05")
	page, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)
	assert.Equal(t, "2026-09-05", m.draft.DropOffDate.Format("2006-01-02"))
	assert.Empty(t, m.alert)
}

func TestPOSRejectsMalformedDropOffDate(t *testing.T) {
	m := loadedPOS()
	before := m.draft.DropOffDate
	m = typeKeys(t, m, "t", "99")
	page, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)
	assert.True(t, m.draft.DropOffDate.Equal(before), "date keeps its old value")
	assert.Equal(t, "Format tanggal harus YYYY-MM-DD.", m.alert)
}

func TestPOSSuccessfulSubmitResetsForm(t *testing.T) {
	m := loadedPOS()
	m = typeKeys(t, m, "p", "w", "2")
	page, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)

	page, _ = m.Update(submittedMsg{invoiceCode: "INV-20260901-0001"})
	m = page.(*posModel)
	assert.Contains(t, m.notice, "INV-20260901-0001")
	assert.Len(t, m.draft.Items, 1)
	assert.True(t, m.draft.Totals().Subtotal.IsZero())
}

func TestPOSDiscardsStaleMasterData(t *testing.T) {
	guard := &stale.Guard{}
	abandoned := guard.Next() // load fired by a previous visit to the page

	m := newPOS(nil, guard)
	page, _ := m.Update(masterLoadedMsg{ticket: guard.Next(), master: testMaster()})
	m = page.(*posModel)
	m = typeKeys(t, m, "p", "w", "3")
	page, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = page.(*posModel)
	want := m.draft.Totals().Subtotal

	page, _ = m.Update(masterLoadedMsg{ticket: abandoned, master: testMaster()})
	m = page.(*posModel)
	got := m.draft.Totals().Subtotal
	assert.True(t, got.Equal(want), "late master-data load must not wipe the draft; got %s, want %s", got, want)
}

func TestHomeDiscardsStaleLoads(t *testing.T) {
	guard := &stale.Guard{}
	abandoned := guard.Next()

	m := newHome(nil, guard)
	fresh := &apiclient.DashboardStats{NewOrdersToday: 7}
	page, _ := m.Update(homeLoadedMsg{ticket: guard.Next(), stats: fresh})
	m = page.(*homeModel)

	page, _ = m.Update(homeLoadedMsg{ticket: abandoned, stats: &apiclient.DashboardStats{NewOrdersToday: 1}})
	m = page.(*homeModel)
	require.NotNil(t, m.stats)
	assert.Equal(t, 7, m.stats.NewOrdersToday, "superseded dashboard load must be dropped")
}

func TestHistoriesDiscardsStaleResponses(t *testing.T) {
	m := newHistories(nil, 15, &stale.Guard{})

	first := m.guard.Next()
	second := m.guard.Next()

	page, _ := m.Update(txPageMsg{ticket: first, rows: []apiclient.Transaction{{ID: 1}}})
	m = page.(*historiesModel)
	assert.Empty(t, m.rows, "superseded response must be dropped")

	page, _ = m.Update(txPageMsg{ticket: second, rows: []apiclient.Transaction{{ID: 2}}})
	m = page.(*historiesModel)
	require.Len(t, m.rows, 1)
	assert.Equal(t, int64(2), m.rows[0].ID)
}

func TestProgressBarWidth(t *testing.T) {
	assert.Equal(t, "[#####---------------]", progressBar(25))
	assert.Equal(t, "[####################]", progressBar(100))
	assert.Equal(t, "[--------------------]", progressBar(0))
}
