package model

import (
	"sort"
	"strings"
)

// Notification уведомление пользователя. Создаётся бэкендом при смене
// статуса бронирования, клиент может только пометить его прочитанным.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt Timestamp `json:"createdAt"`
}

// CompletedNotice уведомление о завершённом бронировании. Клик по такому
// уведомлению переводит dashboard на вкладку истории.
func (n *Notification) CompletedNotice() bool {
	return strings.Contains(strings.ToUpper(n.Message), "COMPLETED")
}

// SortNotifications сортирует по createdAt, новые первыми
func SortNotifications(notifications []Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[j].CreatedAt.Before(notifications[i].CreatedAt)
	})
}

// UnreadCount количество непрочитанных
func UnreadCount(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}
