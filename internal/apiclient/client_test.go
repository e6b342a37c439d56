package apiclient_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/order"
	"github.com/laundromat-id/adminctl/internal/status"
	"github.com/laundromat-id/adminctl/internal/stub"
)

// newTestClient spins up the in-memory stub and a client pointed at it.
func newTestClient(t *testing.T) *apiclient.Client {
	t.Helper()
	router := stub.NewRouter(stub.NewHandler(stub.NewStore()))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: server.URL + "/api/v1"})
	require.NoError(t, err)
	return client
}

func login(t *testing.T, client *apiclient.Client) *apiclient.User {
	t.Helper()
	user, err := client.Login(context.Background(), "admin@laundromat.id", "admin123")
	require.NoError(t, err)
	return user
}

func TestLoginAndMe(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Me(ctx)
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))

	user := login(t, client)
	assert.Equal(t, "admin@laundromat.id", user.Email)

	// The session cookie carries the credentials from here on.
	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Login(context.Background(), "admin@laundromat.id", "wrong")
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Equal(t, "email atau password salah",
		apiclient.Message(err, "fallback"), "server message must surface verbatim")
}

func TestCustomerCRUDAndSearch(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	login(t, client)

	require.NoError(t, client.CreateCustomer(ctx, apiclient.CustomerInput{
		Name: "Dewi Lestari", Phone: "0811111111", Address: "Jl. Mawar No. 1",
	}))

	customers, meta, err := client.ListCustomers(ctx, apiclient.ListParams{Search: "dewi"})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, 1, meta.LastPage)

	id := customers[0].ID
	require.NoError(t, client.UpdateCustomer(ctx, id, apiclient.CustomerInput{
		Name: "Dewi Lestari", Phone: "0822222222", Address: "Jl. Mawar No. 1",
	}))
	customers, _, err = client.ListCustomers(ctx, apiclient.ListParams{Search: "dewi"})
	require.NoError(t, err)
	assert.Equal(t, "0822222222", customers[0].Phone)

	require.NoError(t, client.DeleteCustomer(ctx, id))
	customers, _, err = client.ListCustomers(ctx, apiclient.ListParams{Search: "dewi"})
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestListPagination(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	login(t, client)

	// Seed data has 3 customers; page size 2 gives 2 pages.
	page1, meta, err := client.ListCustomers(ctx, apiclient.ListParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.LastPage)
	assert.Equal(t, 1, meta.From)
	assert.Equal(t, 2, meta.To)

	page2, meta, err := client.ListCustomers(ctx, apiclient.ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.Equal(t, 3, meta.From)
	assert.Equal(t, 3, meta.To)
}

func submitDraft(t *testing.T, client *apiclient.Client, master *apiclient.MasterData) string {
	t.Helper()
	draft := order.NewDraft(time.Now())
	draft.CustomerID = master.Customers[0].ID
	pkg := master.Packages[0]
	draft.SelectPackage(0, order.PackageInfo{
		ID: pkg.ID, Name: pkg.Name, Unit: pkg.Unit,
		Price: pkg.Price, EstimatedDuration: pkg.EstimatedDuration,
	})
	draft.SetQuantity(0, decimal.NewFromInt(3))
	require.NoError(t, draft.Validate())

	code, err := client.CreateTransaction(context.Background(), draft.Payload(master.CurrentUserID))
	require.NoError(t, err)
	return code
}

func TestTransactionLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	user := login(t, client)

	master, err := client.TransactionCreateData(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, master.CurrentUserID)
	require.NotEmpty(t, master.Customers)
	require.NotEmpty(t, master.Packages)

	code := submitDraft(t, client, master)
	assert.Regexp(t, `^INV-\d{8}-0001$`, code)

	txs, meta, err := client.ListTransactions(ctx, apiclient.TxListParams{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 1, meta.Total)

	tx := txs[0]
	assert.Equal(t, code, tx.InvoiceCode)
	assert.Equal(t, status.LaundryNew, tx.LaundryStatus)
	assert.Equal(t, status.PaymentPending, tx.PaymentStatus)
	// Server recomputes totals from the items: 3 kg × 7000.
	assert.True(t, tx.FinalTotalPrice.Equal(decimal.NewFromInt(21000)), "final %s", tx.FinalTotalPrice)

	got, err := client.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Cashier.Name)
	require.Len(t, got.Details, 1)

	updated, err := client.UpdateLaundryStatus(ctx, tx.ID, status.LaundryProcessing)
	require.NoError(t, err)
	assert.Equal(t, status.LaundryProcessing, updated.LaundryStatus)

	updated, err = client.UpdatePaymentStatus(ctx, tx.ID, status.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, status.PaymentPaid, updated.PaymentStatus)

	_, err = client.UpdateLaundryStatus(ctx, tx.ID, status.Laundry("archived"))
	assert.Error(t, err, "stub rejects values outside the enumeration")
}

func TestStatusFilterOnList(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	login(t, client)

	master, err := client.TransactionCreateData(ctx)
	require.NoError(t, err)
	submitDraft(t, client, master)
	code := submitDraft(t, client, master)

	txs, _, err := client.ListTransactions(ctx, apiclient.TxListParams{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		if tx.InvoiceCode == code {
			_, err = client.UpdateLaundryStatus(ctx, tx.ID, status.LaundryDone)
			require.NoError(t, err)
		}
	}

	active, _, err := client.ListTransactions(ctx, apiclient.TxListParams{
		StatusIn: []status.Laundry{status.LaundryNew, status.LaundryProcessing},
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.NotEqual(t, code, active[0].InvoiceCode)
}

func TestDashboardEndpoints(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	login(t, client)

	master, err := client.TransactionCreateData(ctx)
	require.NoError(t, err)
	submitDraft(t, client, master)

	stats, err := client.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCustomers)
	assert.Equal(t, 1, stats.NewOrdersToday)

	charts, err := client.DashboardCharts(ctx)
	require.NoError(t, err)
	assert.Len(t, charts.DailyRevenue.Labels, 7)
	assert.Len(t, charts.WeeklyOrders.Values, 7)
	assert.NotEmpty(t, charts.TopPackages.Labels)
}

func TestProtectedEndpointsNeedSession(t *testing.T) {
	client := newTestClient(t)

	_, _, err := client.ListCustomers(context.Background(), apiclient.ListParams{})
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
}
