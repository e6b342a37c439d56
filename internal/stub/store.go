// Package stub is an in-memory implementation of the laundromat server's
// REST surface, intended for local development and the client's
// end-to-end tests only. It keeps the same wire shapes as the hosted API
// but none of its durability.
package stub

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/order"
	"github.com/laundromat-id/adminctl/internal/status"
)

type account struct {
	user     apiclient.User
	password string
}

type Store struct {
	mu sync.RWMutex

	accounts []account
	sessions map[string]int64 // token -> user id

	customers    []apiclient.Customer
	packages     []apiclient.Package
	transactions []apiclient.Transaction

	nextCustomerID int64
	nextPackageID  int64
	nextTxID       int64
	invoiceSeq     map[string]int // yyyymmdd -> last sequence

	now func() time.Time
}

func NewStore() *Store {
	s := &Store{
		sessions:       make(map[string]int64),
		invoiceSeq:     make(map[string]int),
		nextCustomerID: 1,
		nextPackageID:  1,
		nextTxID:       1,
		now:            time.Now,
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	s.accounts = []account{
		{
			user:     apiclient.User{ID: 1, Name: "Admin Laundromat", Email: "admin@laundromat.id", Role: "admin"},
			password: "admin123",
		},
		{
			user:     apiclient.User{ID: 2, Name: "Kasir Satu", Email: "kasir@laundromat.id", Role: "cashier"},
			password: "kasir123",
		},
	}

	now := s.now()
	for _, c := range []apiclient.CustomerInput{
		{Name: "Budi Santoso", Phone: "081234567890", Address: "Jl. Melati No. 3"},
		{Name: "Siti Rahma", Phone: "081298765432", Address: "Jl. Kenanga No. 12"},
		{Name: "Andi Wijaya", Phone: "085612345678", Address: "Jl. Anggrek No. 7"},
	} {
		s.customers = append(s.customers, apiclient.Customer{
			ID: s.nextCustomerID, Name: c.Name, Phone: c.Phone, Address: c.Address, CreatedAt: now,
		})
		s.nextCustomerID++
	}

	for _, p := range []apiclient.PackageInput{
		{Name: "Cuci Kering", Unit: "kg", Price: decimal.NewFromInt(7000), EstimatedDuration: 2},
		{Name: "Cuci Setrika", Unit: "kg", Price: decimal.NewFromInt(10000), EstimatedDuration: 3},
		{Name: "Express 1 Hari", Unit: "kg", Price: decimal.NewFromInt(15000), EstimatedDuration: 1},
		{Name: "Bed Cover", Unit: "pcs", Price: decimal.NewFromInt(25000), EstimatedDuration: 3},
	} {
		s.packages = append(s.packages, apiclient.Package{
			ID: s.nextPackageID, Name: p.Name, Unit: p.Unit,
			Price: p.Price, EstimatedDuration: p.EstimatedDuration, CreatedAt: now,
		})
		s.nextPackageID++
	}
}

// Authenticate checks credentials and opens a session, returning the
// token for the session cookie.
func (s *Store) Authenticate(email, password string) (apiclient.User, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, email) && a.password == password {
			token := uuid.NewString()
			s.sessions[token] = a.user.ID
			return a.user, token, true
		}
	}
	return apiclient.User{}, "", false
}

func (s *Store) UserByToken(token string) (apiclient.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	if !ok {
		return apiclient.User{}, false
	}
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return apiclient.User{}, false
}

func (s *Store) CloseSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// paginate computes the meta block and the slice bounds for one page.
func paginate(total, page, limit int) (apiclient.ListMeta, int, int) {
	if limit <= 0 {
		limit = 15
	}
	if page <= 0 {
		page = 1
	}
	lastPage := (total + limit - 1) / limit
	if lastPage == 0 {
		lastPage = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	meta := apiclient.ListMeta{Total: total, LastPage: lastPage}
	if start < end {
		meta.From = start + 1
		meta.To = end
	}
	return meta, start, end
}

func (s *Store) Customers(search string, page, limit int) ([]apiclient.Customer, apiclient.ListMeta) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]apiclient.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if search == "" ||
			strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) ||
			strings.Contains(c.Phone, search) {
			filtered = append(filtered, c)
		}
	}
	meta, start, end := paginate(len(filtered), page, limit)
	return filtered[start:end], meta
}

func (s *Store) CreateCustomer(in apiclient.CustomerInput) apiclient.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := apiclient.Customer{
		ID: s.nextCustomerID, Name: in.Name, Phone: in.Phone, Address: in.Address,
		CreatedAt: s.now(),
	}
	s.nextCustomerID++
	s.customers = append(s.customers, c)
	return c
}

func (s *Store) UpdateCustomer(id int64, in apiclient.CustomerInput) (apiclient.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers[i].Name = in.Name
			s.customers[i].Phone = in.Phone
			s.customers[i].Address = in.Address
			return s.customers[i], true
		}
	}
	return apiclient.Customer{}, false
}

func (s *Store) DeleteCustomer(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Packages(search string, page, limit int) ([]apiclient.Package, apiclient.ListMeta) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]apiclient.Package, 0, len(s.packages))
	for _, p := range s.packages {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			filtered = append(filtered, p)
		}
	}
	meta, start, end := paginate(len(filtered), page, limit)
	return filtered[start:end], meta
}

func (s *Store) CreatePackage(in apiclient.PackageInput) apiclient.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := apiclient.Package{
		ID: s.nextPackageID, Name: in.Name, Unit: in.Unit,
		Price: in.Price, EstimatedDuration: in.EstimatedDuration,
		CreatedAt: s.now(),
	}
	s.nextPackageID++
	s.packages = append(s.packages, p)
	return p
}

func (s *Store) UpdatePackage(id int64, in apiclient.PackageInput) (apiclient.Package, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			s.packages[i].Name = in.Name
			s.packages[i].Unit = in.Unit
			s.packages[i].Price = in.Price
			s.packages[i].EstimatedDuration = in.EstimatedDuration
			return s.packages[i], true
		}
	}
	return apiclient.Package{}, false
}

func (s *Store) DeletePackage(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			s.packages = append(s.packages[:i], s.packages[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) MasterData(currentUserID int64) apiclient.MasterData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return apiclient.MasterData{
		Customers:     append([]apiclient.Customer(nil), s.customers...),
		Packages:      append([]apiclient.Package(nil), s.packages...),
		CurrentUserID: currentUserID,
	}
}

func (s *Store) customerByID(id int64) (apiclient.Customer, bool) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return apiclient.Customer{}, false
}

func (s *Store) packageByID(id int64) (apiclient.Package, bool) {
	for _, p := range s.packages {
		if p.ID == id {
			return p, true
		}
	}
	return apiclient.Package{}, false
}

// CreateTransaction persists a submitted draft. The server is the source
// of truth: totals are recomputed here from the items rather than trusted
// from the payload, and the invoice code is assigned per day.
func (s *Store) CreateTransaction(p order.Payload, cashier apiclient.User) (apiclient.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cust, ok := s.customerByID(p.CustomerID)
	if !ok {
		return apiclient.Transaction{}, fmt.Errorf("pelanggan %d tidak ditemukan", p.CustomerID)
	}
	if len(p.Items) == 0 {
		return apiclient.Transaction{}, fmt.Errorf("transaksi tanpa item tidak valid")
	}

	dropOff, err := time.Parse("2006-01-02", p.DropOffDate)
	if err != nil {
		dropOff = s.now()
	}

	subtotal := decimal.Zero
	details := make([]apiclient.TransactionDetail, 0, len(p.Items))
	for _, it := range p.Items {
		pkg, ok := s.packageByID(it.PackageID)
		if !ok {
			return apiclient.Transaction{}, fmt.Errorf("paket %d tidak ditemukan", it.PackageID)
		}
		line := it.PricePerUnit.Mul(it.QtyWeight)
		subtotal = subtotal.Add(line)
		details = append(details, apiclient.TransactionDetail{
			Package:      pkg,
			QtyWeight:    it.QtyWeight,
			PricePerUnit: it.PricePerUnit,
			Subtotal:     line,
		})
	}

	discount := p.DiscountAmount
	if discount.Sign() < 0 {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	final := subtotal.Sub(discount)

	day := s.now().Format("20060102")
	s.invoiceSeq[day]++
	invoice := fmt.Sprintf("INV-%s-%04d", day, s.invoiceSeq[day])

	maxDuration := p.MaxDuration
	if maxDuration < 1 {
		maxDuration = 1
	}

	tx := apiclient.Transaction{
		ID:                     s.nextTxID,
		InvoiceCode:            invoice,
		Customer:               cust,
		Cashier:                cashier,
		LaundryStatus:          status.LaundryNew,
		PaymentStatus:          p.PaymentStatus,
		DropOffDate:            dropOff.Format("2006-01-02"),
		EstimatedDoneDate:      dropOff.AddDate(0, 0, maxDuration).Format("2006-01-02"),
		SubtotalBeforeDiscount: subtotal,
		DiscountAmount:         discount,
		FinalTotalPrice:        final,
		Details:                details,
		CreatedAt:              s.now(),
	}
	s.nextTxID++
	s.transactions = append(s.transactions, tx)
	return tx, nil
}

// Transactions lists newest first, optionally filtered to a set of
// laundry statuses.
func (s *Store) Transactions(page, limit int, statusIn []status.Laundry) ([]apiclient.Transaction, apiclient.ListMeta) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]apiclient.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if len(statusIn) > 0 {
			match := false
			for _, st := range statusIn {
				if tx.LaundryStatus == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		filtered = append(filtered, tx)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	meta, start, end := paginate(len(filtered), page, limit)
	return filtered[start:end], meta
}

func (s *Store) Transaction(id int64) (apiclient.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return apiclient.Transaction{}, false
}

func (s *Store) UpdateLaundryStatus(id int64, st status.Laundry) (apiclient.Transaction, error) {
	if !st.Known() {
		return apiclient.Transaction{}, fmt.Errorf("status cucian %q tidak dikenal", st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions[i].LaundryStatus = st
			return s.transactions[i], nil
		}
	}
	return apiclient.Transaction{}, fmt.Errorf("transaksi %d tidak ditemukan", id)
}

func (s *Store) UpdatePaymentStatus(id int64, st status.Payment) (apiclient.Transaction, error) {
	if !st.Known() {
		return apiclient.Transaction{}, fmt.Errorf("status pembayaran %q tidak dikenal", st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions[i].PaymentStatus = st
			return s.transactions[i], nil
		}
	}
	return apiclient.Transaction{}, fmt.Errorf("transaksi %d tidak ditemukan", id)
}
