package order

import (
	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/status"
)

// Payload is the body POSTed to /transaction. Totals are included for the
// server to cross-check; the server remains the source of truth and
// assigns the invoice code.
type Payload struct {
	CustomerID             int64           `json:"customer_id"`
	DropOffDate            string          `json:"drop_off_date"`
	SubtotalBeforeDiscount decimal.Decimal `json:"subtotal_before_discount"`
	DiscountAmount         decimal.Decimal `json:"discount_amount"`
	FinalTotalPrice        decimal.Decimal `json:"final_total_price"`
	MaxDuration            int             `json:"max_duration"`
	PaymentStatus          status.Payment  `json:"payment_status"`
	UserID                 int64           `json:"user_id"`
	Items                  []PayloadItem   `json:"items"`
}

type PayloadItem struct {
	PackageID    int64           `json:"package_id"`
	QtyWeight    decimal.Decimal `json:"qty_weight"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Payload builds the submission body from a validated draft. Lines with
// no package or zero quantity are filtered out rather than sent.
func (d *Draft) Payload(userID int64) Payload {
	t := d.Totals()
	items := make([]PayloadItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.PackageID == 0 || it.Quantity.Sign() <= 0 {
			continue
		}
		items = append(items, PayloadItem{
			PackageID:    it.PackageID,
			QtyWeight:    it.Quantity,
			PricePerUnit: it.UnitPrice,
			Subtotal:     it.Subtotal(),
		})
	}
	return Payload{
		CustomerID:             d.CustomerID,
		DropOffDate:            d.DropOffDate.Format("2006-01-02"),
		SubtotalBeforeDiscount: t.Subtotal,
		DiscountAmount:         t.Discount,
		FinalTotalPrice:        t.FinalTotal,
		MaxDuration:            d.MaxDuration(),
		PaymentStatus:          d.PaymentStatus,
		UserID:                 userID,
		Items:                  items,
	}
}
