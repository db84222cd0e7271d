package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// Storage персистентное хранилище сессий. В проде это таблица sessions,
// в тестах — map в памяти.
type Storage interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	Delete(ctx context.Context, chatID int64) error
}

// Store владеет сессиями чатов. Остальные слои читают сессию только
// через него и никогда не мутируют её сами.
type Store struct {
	storage Storage
	logger  *zap.Logger

	mu     sync.RWMutex
	active map[int64]*model.Session
}

func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
		active:  make(map[int64]*model.Session),
	}
}

// Restore восстанавливает сессию чата из хранилища. Битый или истёкший
// токен не ошибка: сессия молча очищается и чат считается разлогиненным.
func (s *Store) Restore(ctx context.Context, chatID int64) (*model.Session, error) {
	stored, err := s.storage.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if stored == nil {
		return nil, nil
	}

	session, err := s.decode(chatID, stored.Token, stored.DisplayName)
	if err != nil || session.Expired(time.Now()) {
		s.logger.Info("Dropping stale session",
			zap.Int64("chat_id", chatID),
			zap.Bool("malformed", err != nil),
		)
		if deleteErr := s.storage.Delete(ctx, chatID); deleteErr != nil {
			s.logger.Warn("Failed to clear stale session", zap.Error(deleteErr))
		}
		return nil, nil
	}

	s.mu.Lock()
	s.active[chatID] = session
	s.mu.Unlock()

	return session, nil
}

// Login принимает свежий токен бэкенда, расшифровывает claims и
// сохраняет сессию. Битый токен здесь уже ошибка — бэкенд такого
// присылать не должен.
func (s *Store) Login(ctx context.Context, chatID int64, token, displayName string) (*model.Session, error) {
	session, err := s.decode(chatID, token, displayName)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.storage.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.active[chatID] = session
	s.mu.Unlock()

	s.logger.Info("Session started",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", session.UserID),
		zap.String("role", string(session.Role)),
	)

	return session, nil
}

// Logout очищает сессию чата в памяти и в хранилище
func (s *Store) Logout(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	delete(s.active, chatID)
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info("Session ended", zap.Int64("chat_id", chatID))
	return nil
}

// Get возвращает активную сессию чата, при необходимости восстанавливая
// её из хранилища. nil — чат не залогинен.
func (s *Store) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	s.mu.RLock()
	session, ok := s.active[chatID]
	s.mu.RUnlock()

	if ok {
		if session.Expired(time.Now()) {
			// Токен истёк пока сессия жила в памяти
			if err := s.Logout(ctx, chatID); err != nil {
				s.logger.Warn("Failed to drop expired session", zap.Error(err))
			}
			return nil, nil
		}
		return session, nil
	}

	return s.Restore(ctx, chatID)
}

// ActiveChats список чатов с живыми сессиями (для поллера уведомлений)
func (s *Store) ActiveChats() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]int64, 0, len(s.active))
	for chatID := range s.active {
		chats = append(chats, chatID)
	}
	return chats
}

// decode расшифровывает claims без проверки подписи — секрет знает только
// бэкенд, клиенту токен нужен лишь ради userId, role и exp.
func (s *Store) decode(chatID int64, token, displayName string) (*model.Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	userID, err := claimInt64(claims, "userId")
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("token has no exp claim")
	}

	return &model.Session{
		ChatID:      chatID,
		UserID:      userID,
		Role:        model.ParseRole(role),
		Token:       token,
		DisplayName: displayName,
		ExpiresAt:   exp.Time,
		CreatedAt:   time.Now(),
	}, nil
}

func claimInt64(claims jwt.MapClaims, name string) (int64, error) {
	switch v := claims[name].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		var parsed int64
		if _, err := fmt.Sscan(v, &parsed); err != nil {
			return 0, fmt.Errorf("claim %s is not a number: %w", name, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("token has no %s claim", name)
	}
}
