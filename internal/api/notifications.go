package api

import (
	"context"
	"fmt"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// Notifications лента уведомлений пользователя
func (c *Client) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	var notifications []model.Notification
	path := fmt.Sprintf("/user/notifications/%d", userID)
	if err := c.get(ctx, path, nil, &notifications); err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead помечает уведомление прочитанным
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	path := fmt.Sprintf("/user/notifications/read/%d", notificationID)
	if err := c.put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
