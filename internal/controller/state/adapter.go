package state

import (
	"github.com/quickserve/quickserve_bot/internal/controller/callbacks/callbacktypes"
)

// Adapter адаптирует Manager под интерфейс callbacktypes.StateManager.
// Пакеты callback'ов не зависят от пакета state напрямую по типам.
type Adapter struct {
	manager *Manager
}

// NewAdapter создаёт адаптер для менеджера состояний
func NewAdapter(manager *Manager) *Adapter {
	return &Adapter{manager: manager}
}

func (a *Adapter) ClearState(chatID int64) {
	a.manager.ClearState(chatID)
}

func (a *Adapter) GetState(chatID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.manager.GetState(chatID))
}

func (a *Adapter) SetState(chatID int64, userState callbacktypes.UserState) {
	a.manager.SetState(chatID, UserState(userState))
}

func (a *Adapter) SetData(chatID int64, key string, value interface{}) {
	a.manager.SetData(chatID, key, value)
}

func (a *Adapter) GetData(chatID int64, key string) (interface{}, bool) {
	return a.manager.GetData(chatID, key)
}

func (a *Adapter) GetAllData(chatID int64) map[string]interface{} {
	return a.manager.GetAllData(chatID)
}
