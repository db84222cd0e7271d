package api

import (
	"context"
	"fmt"
)

// ProfileUpdate изменяемые поля профиля
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateProfile обновляет профиль пользователя
func (c *Client) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error {
	path := fmt.Sprintf("/user/%d/profile", userID)
	if err := c.put(ctx, path, update, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// LocationUpdate координаты клиента для поиска ближайших услуг
type LocationUpdate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// UpdateLocation сохраняет координаты пользователя на бэкенде
func (c *Client) UpdateLocation(ctx context.Context, userID int64, update LocationUpdate) error {
	path := fmt.Sprintf("/user/%d/location", userID)
	if err := c.put(ctx, path, update, nil); err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}
