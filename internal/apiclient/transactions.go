package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/order"
	"github.com/laundromat-id/adminctl/internal/status"
)

// Transaction is the server's read-only projection of a committed order.
// The client never authors one directly; it submits an order.Payload and
// gets these back.
type Transaction struct {
	ID                     int64               `json:"id"`
	InvoiceCode            string              `json:"invoice_code"`
	Customer               Customer            `json:"customer"`
	Cashier                User                `json:"cashier"`
	LaundryStatus          status.Laundry      `json:"laundry_status"`
	PaymentStatus          status.Payment      `json:"payment_status"`
	DropOffDate            string              `json:"drop_off_date"`
	EstimatedDoneDate      string              `json:"estimated_done_date"`
	SubtotalBeforeDiscount decimal.Decimal     `json:"subtotal_before_discount"`
	DiscountAmount         decimal.Decimal     `json:"discount_amount"`
	FinalTotalPrice        decimal.Decimal     `json:"final_total_price"`
	Details                []TransactionDetail `json:"details"`
	CreatedAt              time.Time           `json:"createdAt"`
}

type TransactionDetail struct {
	Package      Package         `json:"package"`
	QtyWeight    decimal.Decimal `json:"qty_weight"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// MasterData is the bundle the POS form needs before it can open.
type MasterData struct {
	Customers     []Customer `json:"customers"`
	Packages      []Package  `json:"packages"`
	CurrentUserID int64      `json:"currentUserId"`
}

type TxListParams struct {
	Page     int
	Limit    int
	StatusIn []status.Laundry
}

func (p TxListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	for _, s := range p.StatusIn {
		q.Add("status_in", string(s))
	}
	return q
}

func (c *Client) TransactionCreateData(ctx context.Context) (*MasterData, error) {
	var env struct {
		Data MasterData `json:"data"`
	}
	if err := c.get(ctx, "/transaction/create-data", nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreateTransaction submits a draft payload and returns the invoice code
// the server assigned.
func (c *Client) CreateTransaction(ctx context.Context, p order.Payload) (string, error) {
	var out struct {
		InvoiceCode string `json:"invoiceCode"`
	}
	if err := c.post(ctx, "/transaction", p, &out); err != nil {
		return "", err
	}
	return out.InvoiceCode, nil
}

func (c *Client) ListTransactions(ctx context.Context, p TxListParams) ([]Transaction, ListMeta, error) {
	var out struct {
		Data []Transaction `json:"data"`
		Meta ListMeta      `json:"meta"`
	}
	if err := c.get(ctx, "/transaction", p.query(), &out); err != nil {
		return nil, ListMeta{}, err
	}
	return out.Data, out.Meta, nil
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	var env struct {
		Data Transaction `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/transaction/%d", id), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateLaundryStatus moves the physical workflow stage. The returned
// transaction is the server's updated record.
func (c *Client) UpdateLaundryStatus(ctx context.Context, id int64, s status.Laundry) (*Transaction, error) {
	var env struct {
		Data Transaction `json:"data"`
	}
	body := map[string]string{"status": string(s)}
	if err := c.put(ctx, fmt.Sprintf("/transaction/status/%d", id), body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, id int64, s status.Payment) (*Transaction, error) {
	var env struct {
		Data Transaction `json:"data"`
	}
	body := map[string]string{"payment_status": string(s)}
	if err := c.put(ctx, fmt.Sprintf("/transaction/payment/%d", id), body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
