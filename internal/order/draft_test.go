package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cuciKering = PackageInfo{ID: 1, Name: "Cuci Kering", Unit: "kg", Price: decimal.NewFromInt(7000), EstimatedDuration: 2}
	express    = PackageInfo{ID: 3, Name: "Express 1 Hari", Unit: "pcs", Price: decimal.NewFromInt(15000), EstimatedDuration: 1}
)

func newTestDraft() *Draft {
	return NewDraft(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
}

func TestTotalsScenario(t *testing.T) {
	d := newTestDraft()
	d.CustomerID = 1
	d.SelectPackage(0, cuciKering)
	d.SetQuantity(0, decimal.NewFromInt(3))
	d.AddItem()
	d.SelectPackage(1, express)
	d.SetQuantity(1, decimal.NewFromInt(1))
	d.SetDiscount(decimal.NewFromInt(5000))

	got := d.Totals()
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(36000)), "subtotal %s", got.Subtotal)
	assert.True(t, got.Discount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, got.FinalTotal.Equal(decimal.NewFromInt(31000)), "finalTotal %s", got.FinalTotal)
	require.NoError(t, d.Validate())
}

func TestSubtotalOrderIndependent(t *testing.T) {
	build := func(first, second PackageInfo) decimal.Decimal {
		d := newTestDraft()
		d.SelectPackage(0, first)
		d.SetQuantity(0, decimal.NewFromInt(3))
		d.AddItem()
		d.SelectPackage(1, second)
		d.SetQuantity(1, decimal.NewFromInt(3))
		return d.Totals().Subtotal
	}
	assert.True(t, build(cuciKering, express).Equal(build(express, cuciKering)))
}

func TestDiscountClampedToSubtotal(t *testing.T) {
	d := newTestDraft()
	d.SelectPackage(0, cuciKering)
	d.SetQuantity(0, decimal.NewFromInt(3))
	d.AddItem()
	d.SelectPackage(1, express)
	d.SetQuantity(1, decimal.NewFromInt(1))
	d.SetDiscount(decimal.NewFromInt(50000))

	got := d.Totals()
	assert.True(t, got.Discount.Equal(decimal.NewFromInt(36000)), "discount %s", got.Discount)
	assert.True(t, got.FinalTotal.IsZero(), "finalTotal %s", got.FinalTotal)
	// The clamped value is written back to the draft.
	assert.True(t, d.Discount().Equal(decimal.NewFromInt(36000)))
}

func TestNegativeDiscountCoercedToZero(t *testing.T) {
	d := newTestDraft()
	d.SetDiscount(decimal.NewFromInt(-100))
	assert.True(t, d.Discount().IsZero())
}

func TestTinyQuantityCoercedToZero(t *testing.T) {
	d := newTestDraft()
	d.SelectPackage(0, cuciKering)
	d.SetQuantity(0, decimal.NewFromFloat(0.009))

	assert.True(t, d.Items[0].Quantity.IsZero())
	assert.True(t, d.Totals().Subtotal.IsZero(), "zero-quantity line must contribute nothing")
}

func TestSubtotalNeverEditedIndependently(t *testing.T) {
	d := newTestDraft()
	d.SelectPackage(0, cuciKering)
	d.SetQuantity(0, decimal.NewFromFloat(2.5))
	assert.True(t, d.Items[0].Subtotal().Equal(decimal.NewFromInt(17500)))

	// Re-selecting a package reprices the same quantity.
	d.SelectPackage(0, express)
	assert.True(t, d.Items[0].Subtotal().Equal(decimal.NewFromInt(37500)))
	assert.Equal(t, "pcs", d.Items[0].Unit)
}

func TestValidateGate(t *testing.T) {
	t.Run("no customer", func(t *testing.T) {
		d := newTestDraft()
		d.SelectPackage(0, cuciKering)
		d.SetQuantity(0, decimal.NewFromInt(1))
		assert.Error(t, d.Validate())
	})

	t.Run("item without package", func(t *testing.T) {
		d := newTestDraft()
		d.CustomerID = 1
		d.SetQuantity(0, decimal.NewFromInt(1))
		assert.Error(t, d.Validate())
	})

	t.Run("quantity below minimum", func(t *testing.T) {
		d := newTestDraft()
		d.CustomerID = 1
		d.SelectPackage(0, cuciKering)
		d.SetQuantity(0, decimal.NewFromFloat(0.005))
		assert.Error(t, d.Validate())
	})

	t.Run("zero final total", func(t *testing.T) {
		d := newTestDraft()
		d.CustomerID = 1
		d.SelectPackage(0, cuciKering)
		d.SetQuantity(0, decimal.NewFromInt(1))
		d.SetDiscount(decimal.NewFromInt(7000))
		assert.Error(t, d.Validate())
	})

	t.Run("second incomplete item blocks", func(t *testing.T) {
		d := newTestDraft()
		d.CustomerID = 1
		d.SelectPackage(0, cuciKering)
		d.SetQuantity(0, decimal.NewFromInt(1))
		d.AddItem()
		assert.Error(t, d.Validate())
	})
}

func TestPayload(t *testing.T) {
	d := newTestDraft()
	d.CustomerID = 2
	d.SelectPackage(0, cuciKering)
	d.SetQuantity(0, decimal.NewFromInt(3))
	d.AddItem()
	d.SelectPackage(1, express)
	d.SetQuantity(1, decimal.NewFromInt(1))
	d.SetDiscount(decimal.NewFromInt(5000))

	p := d.Payload(7)
	assert.Equal(t, int64(2), p.CustomerID)
	assert.Equal(t, "2026-09-01", p.DropOffDate)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, 2, p.MaxDuration, "longest estimated duration wins")
	assert.Len(t, p.Items, 2)
	assert.True(t, p.FinalTotalPrice.Equal(decimal.NewFromInt(31000)))
}

func TestPayloadFiltersEmptyLines(t *testing.T) {
	d := newTestDraft()
	d.CustomerID = 1
	d.SelectPackage(0, cuciKering)
	d.SetQuantity(0, decimal.NewFromInt(2))
	d.AddItem() // left unspecified

	p := d.Payload(1)
	assert.Len(t, p.Items, 1)
}

func TestRemoveItemKeepsOne(t *testing.T) {
	d := newTestDraft()
	d.RemoveItem(0)
	assert.Len(t, d.Items, 1)

	d.AddItem()
	d.RemoveItem(0)
	assert.Len(t, d.Items, 1)
}
