package model

import (
	"fmt"
	"time"
)

// Weekday ключ расписания. Доступность повторяется еженедельно —
// бэкенд хранит слоты по дню недели, а не по конкретной дате.
type Weekday string

const (
	Sunday    Weekday = "SUNDAY"
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

// weekdayNames индексы совпадают с time.Weekday (0 = Sunday)
var weekdayNames = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// AllWeekdays дни недели в порядке меню (с понедельника)
func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOfDate выводит день недели из даты в формате "2006-01-02".
// Дата трактуется как наивная локальная, без конверсий таймзон.
func WeekdayOfDate(date string) (Weekday, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse booking date %q: %w", date, err)
	}
	return weekdayNames[int(parsed.Weekday())], nil
}

// CandidateSlots фиксированное меню слотов, которые провайдер может
// включать и выключать. Набор закрытый, свои значения вводить нельзя.
var CandidateSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
}

// DaySchedule набор слотов провайдера на один день недели.
// Сохраняется целиком: последняя запись затирает предыдущую.
type DaySchedule struct {
	Day       Weekday  `json:"day"`
	TimeSlots []string `json:"timeSlots"`
}

// ContainsSlot проверяет наличие слота в наборе
func ContainsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// ToggleSlot переключает членство слота в наборе
func ToggleSlot(slots []string, slot string) []string {
	if !ContainsSlot(slots, slot) {
		return append(slots, slot)
	}

	result := make([]string, 0, len(slots))
	for _, s := range slots {
		if s != slot {
			result = append(result, s)
		}
	}
	return result
}
