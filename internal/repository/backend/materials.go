package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/asquebay/order-dashboard/internal/model"
)

// Material загружает один материал по ID
func (c *Client) Material(ctx context.Context, id string) (model.Material, error) {
	const op = "repository.backend.Material"

	var material model.Material
	if err := c.get(ctx, "/api/materiels/"+url.PathEscape(id), &material); err != nil {
		return model.Material{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := material.Validate(); err != nil {
		return model.Material{}, fmt.Errorf("%s: invalid material %q: %w", op, id, err)
	}
	return material, nil
}
