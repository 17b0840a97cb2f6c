package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/asquebay/order-dashboard/internal/model"
)

// Members загружает всех участников
func (c *Client) Members(ctx context.Context) ([]model.Member, error) {
	const op = "repository.backend.Members"

	var members []model.Member
	if err := c.get(ctx, "/api/membres", &members); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}

// ActiveMembers загружает участников с ролью ACTIF (продавцов)
func (c *Client) ActiveMembers(ctx context.Context) ([]model.Member, error) {
	const op = "repository.backend.ActiveMembers"

	var members []model.Member
	if err := c.get(ctx, "/api/membres/actifs", &members); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}

// Member загружает одного участника по ID
func (c *Client) Member(ctx context.Context, id string) (model.Member, error) {
	const op = "repository.backend.Member"

	var member model.Member
	if err := c.get(ctx, "/api/membres/"+url.PathEscape(id), &member); err != nil {
		return model.Member{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := member.Validate(); err != nil {
		return model.Member{}, fmt.Errorf("%s: invalid member %q: %w", op, id, err)
	}
	return member, nil
}

// Groups загружает группы, дашборду нужно только их количество
func (c *Client) Groups(ctx context.Context) ([]model.Group, error) {
	const op = "repository.backend.Groups"

	var groups []model.Group
	if err := c.get(ctx, "/api/groupes", &groups); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return groups, nil
}
