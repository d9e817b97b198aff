package commands_test

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// memoryStore keeps snapshots so every read returns a fresh aggregate, the
// way a database does. Writes are buffered per unit of work until Commit.
type memoryStore struct {
	mu          sync.Mutex
	couriers    map[string]courier.Snapshot
	orders      map[string]order.Snapshot
	transitions []services.Transition
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		couriers: map[string]courier.Snapshot{},
		orders:   map[string]order.Snapshot{},
	}
}

func (s *memoryStore) putCourier(c *courier.Courier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.couriers[c.ID().String()] = c.Snapshot()
}

func (s *memoryStore) putOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o.Snapshot()
}

func (s *memoryStore) courier(id kernel.UUID) courier.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couriers[id.String()]
}

func (s *memoryStore) order(id kernel.UUID) order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id.String()]
}

func (s *memoryStore) ledger() []services.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]services.Transition(nil), s.transitions...)
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

type memoryUoW struct {
	store       *memoryStore
	couriers    []courier.Snapshot
	orders      []order.Snapshot
	transitions []services.Transition
}

func (u *memoryUoW) Begin(context.Context) error { return nil }

func (u *memoryUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, c := range u.couriers {
		u.store.couriers[c.ID.String()] = c
	}
	for _, o := range u.orders {
		u.store.orders[o.ID.String()] = o
	}
	u.store.transitions = append(u.store.transitions, u.transitions...)
	u.couriers, u.orders, u.transitions = nil, nil, nil
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	u.couriers, u.orders, u.transitions = nil, nil, nil
	return nil
}

func (u *memoryUoW) CourierRepository() ports.CourierRepository { return memoryCourierRepo{u} }

func (u *memoryUoW) OrderRepository() ports.OrderRepository { return memoryOrderRepo{u} }

func (u *memoryUoW) StatusLedgerRepository() ports.StatusLedgerRepository { return memoryLedgerRepo{u} }

type memoryCourierRepo struct{ uow *memoryUoW }

func (r memoryCourierRepo) Add(_ context.Context, c *courier.Courier) error {
	r.uow.couriers = append(r.uow.couriers, c.Snapshot())
	return nil
}

func (r memoryCourierRepo) Update(ctx context.Context, c *courier.Courier) error {
	return r.Add(ctx, c)
}

func (r memoryCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	r.uow.store.mu.Lock()
	s, ok := r.uow.store.couriers[id.String()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierID", id)
	}
	return courier.RestoreCourier(s)
}

func (r memoryCourierRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	return r.Get(ctx, id)
}

func (r memoryCourierRepo) ListAvailable(context.Context) ([]*courier.Courier, error) {
	return nil, nil
}

type memoryOrderRepo struct{ uow *memoryUoW }

func (r memoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.orders = append(r.uow.orders, o.Snapshot())
	return nil
}

func (r memoryOrderRepo) Update(ctx context.Context, o *order.Order) error {
	return r.Add(ctx, o)
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.uow.store.mu.Lock()
	s, ok := r.uow.store.orders[id.String()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return order.RestoreOrder(s)
}

func (r memoryOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memoryOrderRepo) ListDispatchable(context.Context, int) ([]*order.Order, error) {
	return nil, nil
}

type memoryLedgerRepo struct{ uow *memoryUoW }

func (r memoryLedgerRepo) Append(_ context.Context, t services.Transition) error {
	r.uow.transitions = append(r.uow.transitions, t)
	return nil
}

func (r memoryLedgerRepo) ListByOrder(_ context.Context, orderID kernel.UUID) ([]services.Transition, error) {
	var transitions []services.Transition
	for _, t := range r.uow.store.ledger() {
		if t.OrderID.IsEqual(orderID) {
			transitions = append(transitions, t)
		}
	}
	return transitions, nil
}

type nopObserver struct{}

func (nopObserver) AssignmentFinished(error, time.Duration) {}

func (nopObserver) CandidatesRanked(int, time.Duration) {}

func (nopObserver) StatusTransitioned(services.Transition) {}

type nopPublisher struct{}

func (nopPublisher) PublishOrderStatusChanged(context.Context, services.Transition) error { return nil }

type memoryCourierUoWs struct{ store *memoryStore }

func (f memoryCourierUoWs) Create() commands.CourierUoW {
	return &memoryUoW{store: f.store}
}

type memoryOrderUoWs struct{ store *memoryStore }

func (f memoryOrderUoWs) Create() commands.OrderUoW {
	return &memoryUoW{store: f.store}
}
