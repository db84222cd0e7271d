package service

import (
	"context"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// NotificationService лента уведомлений. Каждый тик поллера заменяет
// список целиком и пересчитывает счётчик непрочитанных; пустой ответ
// или ошибка оставляют состояние как было.
type NotificationService struct {
	client *api.Client
	logger *zap.Logger

	mu    sync.Mutex
	feeds map[int64]*feedState // userID -> лента
}

type feedState struct {
	notifications []model.Notification
	unread        int
	loading       bool
}

func NewNotificationService(client *api.Client, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		client: client,
		logger: logger,
		feeds:  make(map[int64]*feedState),
	}
}

// Refresh один тик поллера: перечитать ленту пользователя. Непустой
// ответ заменяет локальный список целиком (новые первыми) и пересчитывает
// unread. Ошибка и пустой ответ состояние не трогают, но снимают флаг
// загрузки.
func (s *NotificationService) Refresh(ctx context.Context, session *model.Session) error {
	s.setLoading(session.UserID, true)
	defer s.setLoading(session.UserID, false)

	ctx = api.WithToken(ctx, session.Token)
	notifications, err := s.client.Notifications(ctx, session.UserID)
	if err != nil {
		s.logger.Warn("Notification refresh failed",
			zap.Int64("user_id", session.UserID),
			zap.Error(err),
		)
		return err
	}

	if len(notifications) == 0 {
		return nil
	}

	model.SortNotifications(notifications)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds[session.UserID] = &feedState{
		notifications: notifications,
		unread:        model.UnreadCount(notifications),
	}

	return nil
}

// Feed текущая лента и счётчик непрочитанных (копия)
func (s *NotificationService) Feed(userID int64) ([]model.Notification, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.feeds[userID]
	if state == nil {
		return nil, 0
	}
	return append([]model.Notification(nil), state.notifications...), state.unread
}

// MarkRead помечает уведомление прочитанным: один сетевой вызов и
// оптимистичный флип локального флага с пересчётом unread.
func (s *NotificationService) MarkRead(ctx context.Context, session *model.Session, notificationID int64) error {
	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.feeds[session.UserID]
	if state == nil {
		return nil
	}

	for i := range state.notifications {
		if state.notifications[i].ID == notificationID {
			state.notifications[i].IsRead = true
			break
		}
	}
	state.unread = model.UnreadCount(state.notifications)

	return nil
}

// Open обрабатывает клик по уведомлению: помечает его прочитанным и
// говорит, надо ли переключить dashboard на вкладку истории (уведомления
// о завершённых бронированиях ведут туда).
func (s *NotificationService) Open(ctx context.Context, session *model.Session, notificationID int64) (gotoHistory bool, err error) {
	s.mu.Lock()
	var clicked *model.Notification
	if state := s.feeds[session.UserID]; state != nil {
		for i := range state.notifications {
			if state.notifications[i].ID == notificationID {
				clicked = &state.notifications[i]
				break
			}
		}
	}
	s.mu.Unlock()

	if err := s.MarkRead(ctx, session, notificationID); err != nil {
		return false, err
	}

	return clicked != nil && clicked.CompletedNotice(), nil
}

// Forget выбрасывает ленту пользователя (logout)
func (s *NotificationService) Forget(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.feeds, userID)
}

func (s *NotificationService) setLoading(userID int64, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.feeds[userID]
	if state == nil {
		state = &feedState{}
		s.feeds[userID] = state
	}
	state.loading = loading
}
