package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaundryChips(t *testing.T) {
	tests := []struct {
		in    Laundry
		color string
		label string
	}{
		{LaundryNew, "blue", "Baru Masuk"},
		{LaundryProcessing, "orange", "Diproses"},
		{LaundryDone, "green", "Selesai Cuci"},
		{LaundryTaken, "red", "Sudah Diambil"},
	}
	for _, tt := range tests {
		got := tt.in.Chip()
		assert.Equal(t, tt.color, got.Color, string(tt.in))
		assert.Equal(t, tt.label, got.Label, string(tt.in))
	}
}

func TestLaundryProgressWeights(t *testing.T) {
	assert.Equal(t, 25, LaundryNew.Progress().Weight)
	assert.Equal(t, 60, LaundryProcessing.Progress().Weight)
	assert.Equal(t, 95, LaundryDone.Progress().Weight)
	assert.Equal(t, 100, LaundryTaken.Progress().Weight)
	assert.Equal(t, "Order Baru", LaundryNew.Progress().Text)
}

func TestUnknownStatusPassesThrough(t *testing.T) {
	got := Laundry("archived").Chip()
	assert.Equal(t, "archived", got.Label)
	assert.Equal(t, "gray", got.Color)

	p := Laundry("archived").Progress()
	assert.Equal(t, 0, p.Weight)
	assert.Equal(t, "Unknown", p.Text)
}

func TestPaymentChips(t *testing.T) {
	assert.Equal(t, Chip{Color: "red", Label: "Belum Bayar"}, PaymentPending.Chip())
	assert.Equal(t, Chip{Color: "green", Label: "Lunas"}, PaymentPaid.Chip())
	assert.Equal(t, Chip{Color: "gray", Label: "refunded"}, Payment("refunded").Chip())
}

func TestTransitionsRequireKnownCurrent(t *testing.T) {
	assert.ElementsMatch(t,
		[]Laundry{LaundryProcessing, LaundryDone, LaundryTaken},
		LaundryTransitions(LaundryNew))
	assert.Empty(t, LaundryTransitions(Laundry("archived")),
		"unrecognized current value must not offer targets")

	assert.Equal(t, []Payment{PaymentPaid}, PaymentTransitions(PaymentPending))
	assert.Empty(t, PaymentTransitions(Payment("refunded")))
}
