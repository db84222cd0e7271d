package api

import (
	"context"
	"fmt"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// Categories список категорий услуг
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.get(ctx, "/service_categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}
