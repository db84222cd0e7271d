package model

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp время из API. Бэкенд сериализует LocalDateTime без таймзоны
// ("2025-01-15T10:30:00"), но часть эндпоинтов отдаёт RFC3339 — парсим оба.
type Timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Timestamp(time.Time{})
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}

	return fmt.Errorf("parse timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format("2006-01-02T15:04:05") + `"`), nil
}

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) Before(other Timestamp) bool {
	return time.Time(t).Before(time.Time(other))
}
