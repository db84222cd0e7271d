package app

import (
	"context"
	"sync"
	"time"

	"github.com/quickserve/quickserve_bot/internal/model"
	"github.com/quickserve/quickserve_bot/internal/service"
	"go.uber.org/zap"
)

// DefaultPollInterval интервал опроса ленты уведомлений
const DefaultPollInterval = 4 * time.Second

// SessionSource источник активных сессий для поллера
type SessionSource interface {
	ActiveChats() []int64
	Get(ctx context.Context, chatID int64) (*model.Session, error)
}

// NotificationPoller фоновый опрос уведомлений. Один тик раз в интервал
// обходит все активные сессии и перечитывает ленту каждой. Рост числа
// непрочитанных между тиками отдаётся в OnUnread, чтобы контроллер мог
// прислать пользователю сообщение.
type NotificationPoller struct {
	sessions      SessionSource
	notifications *service.NotificationService
	interval      time.Duration
	logger        *zap.Logger
	stopChan      chan struct{}

	// OnUnread вызывается из горутины поллера, когда непрочитанных стало больше
	OnUnread func(chatID int64, unread int)

	mu       sync.Mutex
	lastSeen map[int64]int // chatID -> unread на прошлом тике
}

// NewNotificationPoller создаёт новый поллер
func NewNotificationPoller(sessions SessionSource, notifications *service.NotificationService, interval time.Duration, logger *zap.Logger) *NotificationPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &NotificationPoller{
		sessions:      sessions,
		notifications: notifications,
		interval:      interval,
		logger:        logger,
		stopChan:      make(chan struct{}),
		lastSeen:      make(map[int64]int),
	}
}

// Start запускает фоновый опрос
func (p *NotificationPoller) Start(ctx context.Context) {
	p.logger.Info("Starting notification poller", zap.Duration("interval", p.interval))
	go p.run(ctx)
}

// Stop останавливает фоновый опрос
func (p *NotificationPoller) Stop() {
	p.logger.Info("Stopping notification poller")
	close(p.stopChan)
}

func (p *NotificationPoller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick(ctx)
		case <-p.stopChan:
			p.logger.Info("Notification poller stopped")
			return
		case <-ctx.Done():
			p.logger.Info("Notification poller cancelled")
			return
		}
	}
}

// tick один проход по активным сессиям. Ошибка по одной сессии не
// останавливает обход остальных.
func (p *NotificationPoller) tick(ctx context.Context) {
	for _, chatID := range p.sessions.ActiveChats() {
		session, err := p.sessions.Get(ctx, chatID)
		if err != nil || session == nil {
			// Сессия могла истечь между тиками
			continue
		}

		if err := p.notifications.Refresh(ctx, session); err != nil {
			continue
		}

		_, unread := p.notifications.Feed(session.UserID)
		p.notifyIfGrown(chatID, unread)
	}
}

func (p *NotificationPoller) notifyIfGrown(chatID int64, unread int) {
	p.mu.Lock()
	previous, seen := p.lastSeen[chatID]
	p.lastSeen[chatID] = unread
	p.mu.Unlock()

	if seen && unread > previous && p.OnUnread != nil {
		p.OnUnread(chatID, unread)
	}
}
