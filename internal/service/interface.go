package service

import (
	"context"

	"github.com/asquebay/order-dashboard/internal/model"
)

// Fetcher определяет контракт для REST API бэкенда
type Fetcher interface {
	Orders(ctx context.Context) ([]model.Order, error)
	OrdersByVendor(ctx context.Context, vendorID string) ([]model.Order, error)
	Members(ctx context.Context) ([]model.Member, error)
	ActiveMembers(ctx context.Context) ([]model.Member, error)
	Groups(ctx context.Context) ([]model.Group, error)
	Member(ctx context.Context, id string) (model.Member, error)
	Material(ctx context.Context, id string) (model.Material, error)
}

// EntityCache определяет контракт для in-memory кэша сущностей по ID
type EntityCache[T any] interface {
	Get(id string) (T, bool)
	Put(id string, entity T)
	LoadAll(entities []T)
	Values() []T
	Resolve(ctx context.Context, id string, fetch func(ctx context.Context, id string) (T, error)) T
}
