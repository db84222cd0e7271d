package model

import "time"

// Session расшифрованная сессия пользователя. Создаётся при логине или
// восстанавливается из сохранённого токена, живёт до exp из JWT.
type Session struct {
	ChatID      int64     `json:"chat_id"` // Telegram chat, владелец сессии
	UserID      int64     `json:"user_id"` // userId из claims токена
	Role        Role      `json:"role"`
	Token       string    `json:"token"`
	DisplayName string    `json:"display_name"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired проверяет истёк ли токен сессии
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) IsCustomer() bool {
	return s.Role == RoleCustomer
}

func (s *Session) IsProvider() bool {
	return s.Role == RoleProvider
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
