// Package order implements the client-local draft of a point-of-sale
// transaction: line-item pricing, total aggregation and the validation
// gate that guards submission. Everything here is pure and synchronous;
// the draft never talks to the network and is discarded once submitted.
package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/money"
	"github.com/laundromat-id/adminctl/internal/status"
)

// PackageInfo is the slice of a service package the draft needs at
// selection time. Price and unit are copied onto the line item and are
// not re-fetched afterwards.
type PackageInfo struct {
	ID                int64
	Name              string
	Unit              string
	Price             decimal.Decimal
	EstimatedDuration int
}

type LineItem struct {
	PackageID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Unit      string

	// duration of the selected package, carried for the max_duration
	// field of the submission payload
	duration int
}

// Subtotal is always unitPrice × quantity, never edited independently.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// Draft is an uncommitted transaction owned by the active form session.
type Draft struct {
	CustomerID    int64
	DropOffDate   time.Time
	PaymentStatus status.Payment
	Items         []LineItem

	discount decimal.Decimal
}

// Totals is the derived view recomputed after every mutation.
type Totals struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	FinalTotal decimal.Decimal
}

// NewDraft starts an empty draft: today's drop-off date, payment pending,
// one unspecified line item.
func NewDraft(now time.Time) *Draft {
	return &Draft{
		DropOffDate:   now,
		PaymentStatus: status.PaymentPending,
		Items:         []LineItem{{}},
	}
}

func (d *Draft) AddItem() {
	d.Items = append(d.Items, LineItem{})
}

// RemoveItem drops the item at index i. The form always keeps at least
// one row, matching the minimum the validation gate requires.
func (d *Draft) RemoveItem(i int) {
	if len(d.Items) <= 1 || i < 0 || i >= len(d.Items) {
		return
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
}

// SelectPackage applies the pricing rule for a package change: the
// chosen package's current price and unit replace the item's copies and
// the subtotal follows from the recompute.
func (d *Draft) SelectPackage(i int, pkg PackageInfo) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	it := &d.Items[i]
	it.PackageID = pkg.ID
	it.UnitPrice = pkg.Price
	it.Unit = pkg.Unit
	it.duration = pkg.EstimatedDuration
}

// SetQuantity applies the pricing rule for a quantity change: anything
// below the 0.01 minimum is coerced to zero so a degenerate line cannot
// carry a price with no effect.
func (d *Draft) SetQuantity(i int, qty decimal.Decimal) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	if qty.LessThan(money.MinQuantity) {
		qty = decimal.Zero
	}
	d.Items[i].Quantity = qty
}

// SetDiscount stores a non-negative discount. Clamping against the
// subtotal happens in Totals, where the current subtotal is known.
func (d *Draft) SetDiscount(amount decimal.Decimal) {
	if amount.Sign() < 0 {
		amount = decimal.Zero
	}
	d.discount = amount
}

func (d *Draft) Discount() decimal.Decimal {
	return d.discount
}

// Totals recomputes the derived amounts. The discount is clamped down to
// the subtotal (and written back, so the form field shows the clamped
// value); the final total is floored at zero.
func (d *Draft) Totals() Totals {
	subtotal := decimal.Zero
	for _, it := range d.Items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	if d.discount.GreaterThan(subtotal) {
		d.discount = subtotal
	}
	final := subtotal.Sub(d.discount)
	if final.Sign() < 0 {
		final = decimal.Zero
	}
	return Totals{Subtotal: subtotal, Discount: d.discount, FinalTotal: final}
}

// MaxDuration is the longest estimated duration among the selected
// packages, in days, never below one. The server uses it to derive the
// promised pick-up date.
func (d *Draft) MaxDuration() int {
	max := 1
	for _, it := range d.Items {
		if it.PackageID != 0 && it.duration > max {
			max = it.duration
		}
	}
	return max
}

var (
	errNoCustomer     = errors.New("pilih pelanggan terlebih dahulu")
	errIncompleteItem = errors.New("lengkapi minimal satu item layanan (paket dipilih, qty ≥ 0.01)")
	errDiscountTooBig = errors.New("diskon tidak boleh melebihi subtotal")
	errZeroTotal      = errors.New("total akhir harus lebih dari nol")
)

// Validate is the submission gate. It returns nil when the draft may be
// submitted, otherwise a single human-readable reason. It never submits
// partially: the first failing rule wins.
func (d *Draft) Validate() error {
	if d.CustomerID == 0 {
		return errNoCustomer
	}
	if len(d.Items) == 0 {
		return errIncompleteItem
	}
	for _, it := range d.Items {
		if it.PackageID == 0 || it.Quantity.LessThan(money.MinQuantity) {
			return errIncompleteItem
		}
	}
	t := d.Totals()
	if t.Discount.GreaterThan(t.Subtotal) {
		return errDiscountTooBig
	}
	if t.FinalTotal.Sign() <= 0 {
		return errZeroTotal
	}
	return nil
}
