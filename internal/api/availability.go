package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// ProviderAvailability слоты провайдера на день недели (вид провайдера)
func (c *Client) ProviderAvailability(ctx context.Context, providerID int64, day model.Weekday) ([]string, error) {
	return c.availability(ctx, fmt.Sprintf("/provider/availability/%d", providerID), day)
}

// CustomerAvailability свободные слоты провайдера на день недели (вид клиента)
func (c *Client) CustomerAvailability(ctx context.Context, providerID int64, day model.Weekday) ([]string, error) {
	return c.availability(ctx, fmt.Sprintf("/customer/availability/%d", providerID), day)
}

func (c *Client) availability(ctx context.Context, path string, day model.Weekday) ([]string, error) {
	query := url.Values{}
	query.Set("day", string(day))

	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}

	slots, err := normalizeSlots(raw)
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return slots, nil
}

// SaveAvailability сохраняет набор слотов на день целиком.
// Это полная перезапись, а не merge: последняя запись выигрывает.
func (c *Client) SaveAvailability(ctx context.Context, providerID int64, schedule model.DaySchedule) error {
	path := fmt.Sprintf("/provider/availability/%d", providerID)
	if err := c.post(ctx, path, nil, schedule, nil); err != nil {
		return fmt.Errorf("save availability: %w", err)
	}
	return nil
}

// normalizeSlots приводит ответ к списку слотов. Разные версии бэкенда
// отдают голый массив, объект с массивом timeSlots или объект со строкой
// "09:00 AM,10:00 AM" — воркфлоу дальше видит один канонический вид.
func normalizeSlots(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}

	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return asArray, nil
	}

	var asObject struct {
		TimeSlots json.RawMessage `json:"timeSlots"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return nil, fmt.Errorf("unexpected availability shape: %w", err)
	}
	if len(asObject.TimeSlots) == 0 {
		return []string{}, nil
	}

	var nested []string
	if err := json.Unmarshal(asObject.TimeSlots, &nested); err == nil {
		return nested, nil
	}

	var joined string
	if err := json.Unmarshal(asObject.TimeSlots, &joined); err != nil {
		return nil, fmt.Errorf("unexpected timeSlots shape: %w", err)
	}

	slots := make([]string, 0)
	for _, part := range strings.Split(joined, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			slots = append(slots, trimmed)
		}
	}
	return slots, nil
}
