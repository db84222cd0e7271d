package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/quickserve/quickserve_bot/internal/api"
	"github.com/quickserve/quickserve_bot/internal/model"
	"go.uber.org/zap"
)

// AvailabilityService редактирование расписания провайдера. Переключение
// слотов меняет только локальный черновик; сеть трогает лишь явное
// сохранение, которое перезаписывает набор на день целиком. Параллельные
// правки с разных устройств затирают друг друга — так и задумано,
// последняя запись выигрывает.
type AvailabilityService struct {
	client *api.Client
	logger *zap.Logger

	mu     sync.Mutex
	drafts map[int64]map[model.Weekday][]string // providerID -> day -> черновик
}

func NewAvailabilityService(client *api.Client, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		client: client,
		logger: logger,
		drafts: make(map[int64]map[model.Weekday][]string),
	}
}

// LoadWeekday загружает набор слотов на день недели как черновик
func (s *AvailabilityService) LoadWeekday(ctx context.Context, session *model.Session, day model.Weekday) ([]string, error) {
	ctx = api.WithToken(ctx, session.Token)
	slots, err := s.client.ProviderAvailability(ctx, session.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("load %s availability: %w", day, err)
	}

	s.mu.Lock()
	if s.drafts[session.UserID] == nil {
		s.drafts[session.UserID] = make(map[model.Weekday][]string)
	}
	s.drafts[session.UserID][day] = slots
	s.mu.Unlock()

	return s.Draft(session.UserID, day), nil
}

// Toggle переключает слот в локальном черновике. Слоты берутся только
// из фиксированного меню model.CandidateSlots.
func (s *AvailabilityService) Toggle(providerID int64, day model.Weekday, slot string) ([]string, error) {
	if !model.ContainsSlot(model.CandidateSlots, slot) {
		return nil, fmt.Errorf("unknown slot %q", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drafts[providerID] == nil {
		s.drafts[providerID] = make(map[model.Weekday][]string)
	}
	s.drafts[providerID][day] = model.ToggleSlot(s.drafts[providerID][day], slot)

	return append([]string(nil), s.drafts[providerID][day]...), nil
}

// Draft текущий черновик на день (копия)
func (s *AvailabilityService) Draft(providerID int64, day model.Weekday) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := s.drafts[providerID][day]
	if slots == nil {
		return []string{}
	}
	return append([]string(nil), slots...)
}

// Save отправляет черновик на бэкенд. Полная перезапись набора на день.
func (s *AvailabilityService) Save(ctx context.Context, session *model.Session, day model.Weekday) error {
	schedule := model.DaySchedule{
		Day:       day,
		TimeSlots: s.Draft(session.UserID, day),
	}

	ctx = api.WithToken(ctx, session.Token)
	if err := s.client.SaveAvailability(ctx, session.UserID, schedule); err != nil {
		return err
	}

	s.logger.Info("Availability saved",
		zap.Int64("provider_id", session.UserID),
		zap.String("day", string(day)),
		zap.Int("slots", len(schedule.TimeSlots)),
	)

	return nil
}

// Forget выбрасывает черновики провайдера (logout)
func (s *AvailabilityService) Forget(providerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, providerID)
}
