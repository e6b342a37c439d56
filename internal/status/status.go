// Package status models the two independent workflow enumerations a
// transaction carries: the physical laundry progress and the payment state.
// The display mappings keep unknown values visible instead of failing, so a
// newer server taxonomy degrades to a gray chip rather than an error.
package status

type Laundry string

const (
	LaundryNew        Laundry = "new"
	LaundryProcessing Laundry = "processing"
	LaundryDone       Laundry = "done"
	LaundryTaken      Laundry = "taken"
)

type Payment string

const (
	PaymentPending Payment = "pending"
	PaymentPaid    Payment = "paid"
)

// Chip is the label/color pair a status renders as in tables.
type Chip struct {
	Color string
	Label string
}

// Progress is the home-page rendition of a laundry status: a bar weight
// plus a shorter caption. Weights are presentation values, not
// business-meaningful percentages.
type Progress struct {
	Weight int
	Text   string
	Color  string
}

func (l Laundry) Chip() Chip {
	switch l {
	case LaundryNew:
		return Chip{Color: "blue", Label: "Baru Masuk"}
	case LaundryProcessing:
		return Chip{Color: "orange", Label: "Diproses"}
	case LaundryDone:
		return Chip{Color: "green", Label: "Selesai Cuci"}
	case LaundryTaken:
		return Chip{Color: "red", Label: "Sudah Diambil"}
	default:
		return Chip{Color: "gray", Label: string(l)}
	}
}

func (l Laundry) Progress() Progress {
	switch l {
	case LaundryNew:
		return Progress{Weight: 25, Text: "Order Baru", Color: "blue"}
	case LaundryProcessing:
		return Progress{Weight: 60, Text: "Sedang Cuci", Color: "orange"}
	case LaundryDone:
		return Progress{Weight: 95, Text: "Siap Ambil", Color: "green"}
	case LaundryTaken:
		return Progress{Weight: 100, Text: "Sudah Diambil", Color: "gray"}
	default:
		return Progress{Weight: 0, Text: "Unknown", Color: "gray"}
	}
}

func (l Laundry) Known() bool {
	switch l {
	case LaundryNew, LaundryProcessing, LaundryDone, LaundryTaken:
		return true
	}
	return false
}

func (p Payment) Chip() Chip {
	switch p {
	case PaymentPending:
		return Chip{Color: "red", Label: "Belum Bayar"}
	case PaymentPaid:
		return Chip{Color: "green", Label: "Lunas"}
	default:
		return Chip{Color: "gray", Label: string(p)}
	}
}

func (p Payment) Known() bool {
	return p == PaymentPending || p == PaymentPaid
}

// AllLaundry lists the recognized laundry stages in workflow order.
func AllLaundry() []Laundry {
	return []Laundry{LaundryNew, LaundryProcessing, LaundryDone, LaundryTaken}
}

func AllPayment() []Payment {
	return []Payment{PaymentPending, PaymentPaid}
}

// LaundryTransitions returns the targets offered for a current value.
// A value outside the recognized enumeration gets no targets: it still
// renders as a pass-through chip, but the client will not offer to move a
// record it does not understand.
func LaundryTransitions(current Laundry) []Laundry {
	if !current.Known() {
		return nil
	}
	var out []Laundry
	for _, l := range AllLaundry() {
		if l != current {
			out = append(out, l)
		}
	}
	return out
}

func PaymentTransitions(current Payment) []Payment {
	if !current.Known() {
		return nil
	}
	var out []Payment
	for _, p := range AllPayment() {
		if p != current {
			out = append(out, p)
		}
	}
	return out
}
