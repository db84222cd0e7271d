package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// ModerateListing одобряет или отклоняет объявление от имени админа
func (c *Client) ModerateListing(ctx context.Context, listingID, adminID int64, approve bool, reason string) error {
	action := "reject"
	if approve {
		action = "approve"
	}

	query := url.Values{}
	query.Set("adminId", strconv.FormatInt(adminID, 10))
	query.Set("reason", reason)

	path := fmt.Sprintf("/admin/listings/%d/%s", listingID, action)
	if err := c.post(ctx, path, query, nil, nil); err != nil {
		return fmt.Errorf("moderate listing: %w", err)
	}
	return nil
}

// PendingListings объявления, ждущие модерации
func (c *Client) PendingListings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := c.get(ctx, "/admin/pending/listings", nil, &listings); err != nil {
		return nil, fmt.Errorf("get pending listings: %w", err)
	}
	return listings, nil
}

// ApprovedListings одобренные объявления
func (c *Client) ApprovedListings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := c.get(ctx, "/admin/approved/listings", nil, &listings); err != nil {
		return nil, fmt.Errorf("get approved listings: %w", err)
	}
	return listings, nil
}

// CreateCategory создаёт категорию услуг
func (c *Client) CreateCategory(ctx context.Context, category model.Category) error {
	if err := c.post(ctx, "/admin/create-category", nil, category, nil); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// DeleteCategory удаляет категорию
func (c *Client) DeleteCategory(ctx context.Context, categoryID int64) error {
	path := fmt.Sprintf("/admin/categories/%d", categoryID)
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Users список пользователей для админа
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/admin/users", nil, &users); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

// CategoryStat строка аналитики по категориям или услугам
type CategoryStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TopCategories простая аналитика: самые бронируемые категории
func (c *Client) TopCategories(ctx context.Context) ([]CategoryStat, error) {
	var stats []CategoryStat
	if err := c.get(ctx, "/admin/analytics/top-categories", nil, &stats); err != nil {
		return nil, fmt.Errorf("get top categories: %w", err)
	}
	return stats, nil
}

// TopServices простая аналитика: самые бронируемые услуги
func (c *Client) TopServices(ctx context.Context) ([]CategoryStat, error) {
	var stats []CategoryStat
	if err := c.get(ctx, "/admin/analytics/top-services", nil, &stats); err != nil {
		return nil, fmt.Errorf("get top services: %w", err)
	}
	return stats, nil
}
