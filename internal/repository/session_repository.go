package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickserve/quickserve_bot/internal/model"
)

// SessionRepository локальное key/value хранилище сессий бота.
// Аналог localStorage браузера: токен плюс пара display полей.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Save сохраняет или перезаписывает сессию чата
func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (chat_id, token, display_name, role, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (chat_id) DO UPDATE
		SET token = EXCLUDED.token,
		    display_name = EXCLUDED.display_name,
		    role = EXCLUDED.role,
		    updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query, session.ChatID, session.Token, session.DisplayName, session.Role)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Get получает сохранённую сессию чата
func (r *SessionRepository) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	query := `
		SELECT chat_id, token, display_name, role, created_at
		FROM sessions
		WHERE chat_id = $1
	`

	var session model.Session
	err := r.pool.QueryRow(ctx, query, chatID).Scan(
		&session.ChatID,
		&session.Token,
		&session.DisplayName,
		&session.Role,
		&session.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &session, nil
}

// Delete удаляет сессию чата
func (r *SessionRepository) Delete(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
