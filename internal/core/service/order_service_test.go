package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

type stubServiceRepo struct {
	services map[string]*domain.Service
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[string]*domain.Service)}
}

func (r *stubServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	if svc.ID == "" {
		svc.ID = "svc_1"
	}
	clone := *svc
	r.services[svc.ID] = &clone
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) List(_ context.Context) ([]domain.Service, error) {
	out := make([]domain.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func TestOrderService_PlaceOrder_SnapshotsCommission(t *testing.T) {
	services := newStubServiceRepo()
	orders := &stubOrderRepo{}
	commission := &stubCommissionRepo{}
	admin := newAdminService(commission, newStubCardRepo(), orders)
	svc := NewOrderService(orders, services, admin, zerolog.Nop())

	_ = services.Create(context.Background(), &domain.Service{
		ID:       "svc_1",
		TailorID: "tailor_1",
		Price:    199.99,
	})
	if _, err := admin.UpdateCommissionRate(context.Background(), 15, "admin_1"); err != nil {
		t.Fatalf("update rate failed: %v", err)
	}

	order, err := svc.PlaceOrder(context.Background(), "svc_1", "client_1")
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if order.Amount != 199.99 {
		t.Fatalf("expected amount 199.99, got %v", order.Amount)
	}
	if order.Commission != 30.00 {
		t.Fatalf("expected commission 30.00, got %v", order.Commission)
	}
	if order.TailorID != "tailor_1" {
		t.Fatalf("expected tailor snapshot, got %q", order.TailorID)
	}
	if order.Status != domain.OrderPlaced {
		t.Fatalf("expected PLACED, got %s", order.Status)
	}

	// A later rate change must not affect the stored snapshot.
	if _, err := admin.UpdateCommissionRate(context.Background(), 30, "admin_1"); err != nil {
		t.Fatalf("update rate failed: %v", err)
	}
	listed, err := svc.ListOrders(context.Background(), "client_1")
	if err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].Commission != 30.00 {
		t.Fatalf("snapshot changed: %+v", listed)
	}
}

func TestOrderService_PlaceOrder_DefaultRate(t *testing.T) {
	services := newStubServiceRepo()
	orders := &stubOrderRepo{}
	admin := newAdminService(&stubCommissionRepo{}, newStubCardRepo(), orders)
	svc := NewOrderService(orders, services, admin, zerolog.Nop())

	_ = services.Create(context.Background(), &domain.Service{ID: "svc_1", Price: 100})

	order, err := svc.PlaceOrder(context.Background(), "svc_1", "client_1")
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if order.Commission != 10 {
		t.Fatalf("expected default 10%% commission, got %v", order.Commission)
	}
}

func TestOrderService_PlaceOrder_UnknownService(t *testing.T) {
	orders := &stubOrderRepo{}
	admin := newAdminService(&stubCommissionRepo{}, newStubCardRepo(), orders)
	svc := NewOrderService(orders, newStubServiceRepo(), admin, zerolog.Nop())

	if _, err := svc.PlaceOrder(context.Background(), "missing", "client_1"); err == nil {
		t.Fatalf("expected error for unknown service")
	}
}
