package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MaterialLine — строка заказа: материал, количество повторов и подытог
type MaterialLine struct {
	Material model.Material  `json:"material"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ResolvedOrder — заказ вместе с клиентом, продавцом и строками материалов
type ResolvedOrder struct {
	Order  model.Order    `json:"order"`
	Client model.Member   `json:"client"`
	Vendor model.Member   `json:"vendor"`
	Lines  []MaterialLine `json:"lines"`
}

// Summary сворачивает материалы по типу: "2 × Perceuse, 1 × Scie"
func (r ResolvedOrder) Summary() string {
	var types []string
	counts := make(map[string]int)
	for _, line := range r.Lines {
		if _, seen := counts[line.Material.Type]; !seen {
			types = append(types, line.Material.Type)
		}
		counts[line.Material.Type] += line.Quantity
	}

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%d × %s", counts[t], t))
	}
	return strings.Join(parts, ", ")
}

// Resolver разрешает ссылки заказа на участников и материалы через кэши,
// а при промахе загружает их у бэкенда
type Resolver struct {
	fetcher   Fetcher
	members   EntityCache[model.Member]
	materials EntityCache[model.Material]
	// максимум параллельных запросов при Prefetch, 0 — без ограничения
	parallelism int
}

// NewResolver создаёт Resolver поверх общих кэшей
func NewResolver(fetcher Fetcher, members EntityCache[model.Member], materials EntityCache[model.Material], parallelism int) *Resolver {
	return &Resolver{
		fetcher:     fetcher,
		members:     members,
		materials:   materials,
		parallelism: parallelism,
	}
}

// Member возвращает участника по ID (или заглушку, если его не удалось загрузить)
func (r *Resolver) Member(ctx context.Context, id string) model.Member {
	return r.members.Resolve(ctx, id, r.fetcher.Member)
}

// Material возвращает материал по ID (или заглушку)
func (r *Resolver) Material(ctx context.Context, id string) model.Material {
	return r.materials.Resolve(ctx, id, r.fetcher.Material)
}

// LookupMember читает участника только из кэша, без сетевых запросов
func (r *Resolver) LookupMember(id string) (model.Member, bool) {
	return r.members.Get(id)
}

// LookupMaterial читает материал только из кэша, без сетевых запросов
func (r *Resolver) LookupMaterial(id string) (model.Material, bool) {
	return r.materials.Get(id)
}

// ResolveOrder разрешает клиента, продавца и строки материалов одного заказа
// не предполагает, что кэш заполнен: недостающее догружается по требованию
func (r *Resolver) ResolveOrder(ctx context.Context, order model.Order) ResolvedOrder {
	resolved := ResolvedOrder{
		Order:  order,
		Client: r.Member(ctx, order.ClientID),
		Vendor: r.Member(ctx, order.VendorID),
	}

	ids, counts := order.MaterialQuantities()
	resolved.Lines = make([]MaterialLine, 0, len(ids))
	for _, id := range ids {
		material := r.Material(ctx, id)
		quantity := counts[id]
		resolved.Lines = append(resolved.Lines, MaterialLine{
			Material: material,
			Quantity: quantity,
			Subtotal: material.Price.Mul(decimal.NewFromInt(int64(quantity))),
		})
	}

	return resolved
}

// Prefetch параллельно разрешает все различные ID участников и материалов,
// на которые ссылаются заказы, и возвращается, только когда все запросы завершились
// ошибок загрузки не бывает (их заменяют заглушки), возвращается только отмена ctx
func (r *Resolver) Prefetch(ctx context.Context, orders []model.Order) error {
	memberIDs := make(map[string]struct{})
	materialIDs := make(map[string]struct{})
	for _, order := range orders {
		memberIDs[order.ClientID] = struct{}{}
		memberIDs[order.VendorID] = struct{}{}
		for _, id := range order.MaterialIDs {
			materialIDs[id] = struct{}{}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		g.SetLimit(r.parallelism)
	}

	for id := range memberIDs {
		if _, ok := r.members.Get(id); ok {
			continue
		}
		g.Go(func() error {
			r.Member(gctx, id)
			return nil
		})
	}
	for id := range materialIDs {
		if _, ok := r.materials.Get(id); ok {
			continue
		}
		g.Go(func() error {
			r.Material(gctx, id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
