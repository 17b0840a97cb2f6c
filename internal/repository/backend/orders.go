package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/asquebay/order-dashboard/internal/model"
)

// Orders загружает всю коллекцию заказов
// заказы, не прошедшие валидацию, отбрасываются
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	const op = "repository.backend.Orders"

	var orders []model.Order
	if err := c.get(ctx, "/api/commandes", &orders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c.validOrders(orders), nil
}

// OrdersByVendor загружает заказы одного продавца
func (c *Client) OrdersByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	const op = "repository.backend.OrdersByVendor"

	var orders []model.Order
	if err := c.get(ctx, "/api/commandes/search/vendeur/"+url.PathEscape(vendorID), &orders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c.validOrders(orders), nil
}

func (c *Client) validOrders(orders []model.Order) []model.Order {
	valid := orders[:0]
	for _, order := range orders {
		if err := order.Validate(); err != nil {
			// битая запись не должна ломать всю коллекцию, логируем и пропускаем
			c.log.Warn("order validation failed, skipping",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		valid = append(valid, order)
	}
	return valid
}
