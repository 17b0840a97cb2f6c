package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"
	"github.com/asquebay/order-dashboard/internal/repository/cache"

	"github.com/shopspring/decimal"
)

var errBackendDown = errors.New("connection refused")

// fakeFetcher отдаёт фикстуры вместо бэкенда и считает запросы за отдельными сущностями
type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int

	orders       []model.Order
	ordersErr    error
	members      []model.Member
	membersErr   error
	vendors      []model.Member
	groups       []model.Group
	vendorOrders map[string][]model.Order
	vendorErrs   map[string]error
	memberByID   map[string]model.Member
	materialByID map[string]model.Material
}

func (f *fakeFetcher) count(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[key]++
}

func (f *fakeFetcher) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeFetcher) Orders(context.Context) ([]model.Order, error) {
	f.count("orders")
	return f.orders, f.ordersErr
}

func (f *fakeFetcher) OrdersByVendor(_ context.Context, vendorID string) ([]model.Order, error) {
	f.count("vendor_orders:" + vendorID)
	if err := f.vendorErrs[vendorID]; err != nil {
		return nil, err
	}
	return append([]model.Order(nil), f.vendorOrders[vendorID]...), nil
}

func (f *fakeFetcher) Members(context.Context) ([]model.Member, error) {
	f.count("members")
	return f.members, f.membersErr
}

func (f *fakeFetcher) ActiveMembers(context.Context) ([]model.Member, error) {
	f.count("active_members")
	return f.vendors, nil
}

func (f *fakeFetcher) Groups(context.Context) ([]model.Group, error) {
	f.count("groups")
	return f.groups, nil
}

func (f *fakeFetcher) Member(_ context.Context, id string) (model.Member, error) {
	f.count("member:" + id)
	if m, ok := f.memberByID[id]; ok {
		return m, nil
	}
	return model.Member{}, fmt.Errorf("member %s: %w", id, errBackendDown)
}

func (f *fakeFetcher) Material(_ context.Context, id string) (model.Material, error) {
	f.count("material:" + id)
	if m, ok := f.materialByID[id]; ok {
		return m, nil
	}
	return model.Material{}, fmt.Errorf("material %s: %w", id, errBackendDown)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func at(s string) model.Timestamp {
	ts, err := model.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var (
	dupont  = model.Member{ID: "c1", LastName: "Dupont", FirstName: "Jean", Email: "jean.dupont@acme.fr", Type: model.MemberTypeClient}
	martin  = model.Member{ID: "v1", LastName: "Martin", FirstName: "Lea", Type: model.MemberTypeActive}
	bernard = model.Member{ID: "c2", LastName: "Bernard", FirstName: "Paul", Type: model.MemberTypeClient}
	petit   = model.Member{ID: "v2", LastName: "Petit", FirstName: "Zoe", Type: model.MemberTypeActive}

	perceuse = model.Material{ID: "m1", Brand: "Bosch", Model: "X1", Type: "Perceuse", Price: price(20)}
	scie     = model.Material{ID: "m2", Brand: "Makita", Model: "Y2", Type: "Scie", Price: price(60)}

	o1 = model.Order{
		ID:          "o1",
		ClientID:    "c1",
		VendorID:    "v1",
		OrderedAt:   at("2024-03-05T10:00:00"),
		TotalPrice:  price(100),
		MaterialIDs: []string{"m1", "m1", "m2"},
	}
)

// scenarioFetcher — сценарий из одного заказа o1
func scenarioFetcher() *fakeFetcher {
	return &fakeFetcher{
		orders:  []model.Order{o1},
		members: []model.Member{dupont, martin},
		vendors: []model.Member{martin},
		memberByID: map[string]model.Member{
			"c1": dupont,
			"v1": martin,
		},
		materialByID: map[string]model.Material{
			"m1": perceuse,
			"m2": scie,
		},
	}
}

func newTestResolver(f *fakeFetcher) *Resolver {
	log := discardLogger()
	return NewResolver(f, cache.NewMemberCache(log), cache.NewMaterialCache(log), 0)
}

func newTestOrderService(f *fakeFetcher) *OrderService {
	log := discardLogger()
	return NewOrderService(f, cache.NewMemberCache(log), cache.NewMaterialCache(log), 4, time.UTC, log)
}
