package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

type stubUserRepo struct {
	user      *domain.User
	userErr   error
	addresses []domain.ShippingAddress
	addrErr   error
}

func (s *stubUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubUserRepo) ListAddresses(_ context.Context, _ int64) ([]domain.ShippingAddress, error) {
	return s.addresses, s.addrErr
}

func (s *stubUserRepo) BeginErasure(_ context.Context) (userrepo.ErasureTx, error) {
	return nil, nil
}

type stubOrderRepo struct {
	orders []domain.Order
	err    error
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ int64) ([]domain.Order, error) {
	return s.orders, s.err
}

func testRouter(users *stubUserRepo, orders *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, Deps{UserRepo: users, OrderRepo: orders})
}

func TestGetUser_ExposesErasureState(t *testing.T) {
	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tag := "anon_0123456789ab"
	repo := &stubUserRepo{user: &domain.User{
		ID:             7,
		FirstName:      tag,
		Status:         domain.UserStatusErased,
		AnonymizedTime: &when,
		AnonTag:        &tag,
	}}
	router := testRouter(repo, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status  string `json:"status"`
		AnonTag string `json:"anonTag"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != domain.UserStatusErased || body.AnonTag != tag {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetUser_NotFound(t *testing.T) {
	router := testRouter(&stubUserRepo{userErr: domain.ErrNotFound}, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/users/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetUser_InvalidID(t *testing.T) {
	router := testRouter(&stubUserRepo{}, &stubOrderRepo{})

	for _, path := range []string{"/users/abc", "/users/-3", "/users/0"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestListAddresses_EmptyIsArray(t *testing.T) {
	repo := &stubUserRepo{user: &domain.User{ID: 1, Status: domain.UserStatusActive}}
	router := testRouter(repo, &stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/users/1/addresses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Addresses []domain.ShippingAddress `json:"addresses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Addresses == nil {
		t.Fatalf("expected empty array, got null: %s", rec.Body.String())
	}
}

func TestListOrders_KeepsFinancialFields(t *testing.T) {
	repo := &stubUserRepo{user: &domain.User{ID: 1, Status: domain.UserStatusErased}}
	orders := &stubOrderRepo{orders: []domain.Order{{
		ID:             3,
		UserID:         1,
		TotalCostCents: 4999,
		IsPaid:         true,
		Payments:       []domain.Payment{{ID: 9, OrderID: 3, Last4: "4242", PSPRef: "psp_123", AmountCents: 4999}},
	}}}
	router := testRouter(repo, orders)

	req := httptest.NewRequest(http.MethodGet, "/users/1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Orders) != 1 || body.Orders[0].TotalCostCents != 4999 {
		t.Fatalf("unexpected orders %s", rec.Body.String())
	}
	if len(body.Orders[0].Payments) != 1 || body.Orders[0].Payments[0].Last4 != "4242" {
		t.Fatalf("expected payment reference fields, got %s", rec.Body.String())
	}
}
