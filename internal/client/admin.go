package client

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// AdminClient — /api/admin/users (управление пользователями).
type AdminClient struct{ c *Client }

func (a AdminClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := a.c.get(ctx, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (a AdminClient) SetRole(ctx context.Context, userID int64, role models.Role) error {
	in := map[string]models.Role{"role": role}

	return a.c.patch(ctx, fmt.Sprintf("/api/admin/users/%d/role", userID), in, nil)
}

func (a AdminClient) SetActive(ctx context.Context, userID int64, active bool) error {
	in := map[string]bool{"is_active": active}

	return a.c.patch(ctx, fmt.Sprintf("/api/admin/users/%d/active", userID), in, nil)
}

func (a AdminClient) DeleteUser(ctx context.Context, userID int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/api/admin/users/%d", userID))
}
