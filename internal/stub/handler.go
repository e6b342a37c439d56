package stub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/order"
	"github.com/laundromat-id/adminctl/internal/status"
)

const sessionCookie = "laundromat_session"

type ctxKey string

const userKey ctxKey = "user"

// Handler serves the REST surface against the in-memory store.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// requireAuth resolves the session cookie into a user or answers 401.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "sesi tidak ditemukan, silakan login")
			return
		}
		user, ok := h.store.UserByToken(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "sesi kedaluwarsa, silakan login ulang")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) apiclient.User {
	user, _ := r.Context().Value(userKey).(apiclient.User)
	return user
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body tidak valid")
		return
	}
	user, token, ok := h.store.Authenticate(req.Email, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "email atau password salah")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	slog.InfoContext(r.Context(), "login", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": currentUser(r)})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.store.CloseSession(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "berhasil logout"})
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, meta := h.store.Customers(q.Get("search"), intQuery(q.Get("page")), intQuery(q.Get("limit")))
	writeJSON(w, http.StatusOK, listResponse{Data: data, Meta: meta})
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in apiclient.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeError(w, http.StatusBadRequest, "nama pelanggan wajib diisi")
		return
	}
	c := h.store.CreateCustomer(in)
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in apiclient.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeError(w, http.StatusBadRequest, "nama pelanggan wajib diisi")
		return
	}
	c, found := h.store.UpdateCustomer(id, in)
	if !found {
		writeError(w, http.StatusNotFound, "pelanggan tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !h.store.DeleteCustomer(id) {
		writeError(w, http.StatusNotFound, "pelanggan tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "pelanggan berhasil dihapus"})
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, meta := h.store.Packages(q.Get("search"), intQuery(q.Get("page")), intQuery(q.Get("limit")))
	writeJSON(w, http.StatusOK, listResponse{Data: data, Meta: meta})
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var in apiclient.PackageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Price.Sign() <= 0 {
		writeError(w, http.StatusBadRequest, "nama dan harga paket wajib diisi")
		return
	}
	p := h.store.CreatePackage(in)
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in apiclient.PackageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Price.Sign() <= 0 {
		writeError(w, http.StatusBadRequest, "nama dan harga paket wajib diisi")
		return
	}
	p, found := h.store.UpdatePackage(id, in)
	if !found {
		writeError(w, http.StatusNotFound, "paket tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !h.store.DeletePackage(id) {
		writeError(w, http.StatusNotFound, "paket tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "paket berhasil dihapus"})
}

func (h *Handler) TransactionCreateData(w http.ResponseWriter, r *http.Request) {
	data := h.store.MasterData(currentUser(r).ID)
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var p order.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "body tidak valid")
		return
	}
	tx, err := h.store.CreateTransaction(p, currentUser(r))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "transaction created",
		"invoice_code", tx.InvoiceCode, "customer_id", tx.Customer.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"invoiceCode": tx.InvoiceCode})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var statusIn []status.Laundry
	for _, s := range q["status_in"] {
		statusIn = append(statusIn, status.Laundry(s))
	}
	data, meta := h.store.Transactions(intQuery(q.Get("page")), intQuery(q.Get("limit")), statusIn)
	writeJSON(w, http.StatusOK, listResponse{Data: data, Meta: meta})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tx, found := h.store.Transaction(id)
	if !found {
		writeError(w, http.StatusNotFound, "transaksi tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": tx})
}

func (h *Handler) UpdateLaundryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status status.Laundry `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body tidak valid")
		return
	}
	tx, err := h.store.UpdateLaundryStatus(id, req.Status)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": tx})
}

func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		PaymentStatus status.Payment `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body tidak valid")
		return
	}
	tx, err := h.store.UpdatePaymentStatus(id, req.PaymentStatus)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": tx})
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.store.Stats()})
}

func (h *Handler) DashboardCharts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": h.store.Charts()})
}

type listResponse struct {
	Data any                `json:"data"`
	Meta apiclient.ListMeta `json:"meta"`
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id tidak valid")
		return 0, false
	}
	return id, true
}

func intQuery(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}
