package model

import (
	"reflect"
	"testing"
)

func TestWeekdayOfDate(t *testing.T) {
	tests := []struct {
		date    string
		want    Weekday
		wantErr bool
	}{
		{"2025-01-13", Monday, false},
		{"2025-01-15", Wednesday, false},
		{"2025-01-19", Sunday, false},
		{"2025-01-22", Wednesday, false}, // неделей позже — тот же день
		{"15-01-2025", "", true},
		{"2025-13-40", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := WeekdayOfDate(tt.date)
		if (err != nil) != tt.wantErr {
			t.Errorf("WeekdayOfDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("WeekdayOfDate(%q) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestWeekdayRepeatsWeekly(t *testing.T) {
	// Расписание еженедельное: даты с шагом в 7 дней всегда дают один ключ
	first, err := WeekdayOfDate("2025-03-04")
	if err != nil {
		t.Fatal(err)
	}
	second, err := WeekdayOfDate("2025-03-11")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("dates one week apart map to %s and %s", first, second)
	}
}

func TestToggleSlot(t *testing.T) {
	slots := []string{"09:00 AM", "11:00 AM"}

	added := ToggleSlot(slots, "10:00 AM")
	if !ContainsSlot(added, "10:00 AM") {
		t.Error("toggle must add a missing slot")
	}

	removed := ToggleSlot(added, "09:00 AM")
	if ContainsSlot(removed, "09:00 AM") {
		t.Error("toggle must remove a present slot")
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 slots after removal, got %d", len(removed))
	}
}

func TestToggleSlotEmpty(t *testing.T) {
	slots := ToggleSlot(nil, "09:00 AM")
	if !reflect.DeepEqual(slots, []string{"09:00 AM"}) {
		t.Errorf("toggle on empty set = %v", slots)
	}
}

func TestAllWeekdays(t *testing.T) {
	days := AllWeekdays()
	if len(days) != 7 {
		t.Fatalf("expected 7 weekdays, got %d", len(days))
	}
	if days[0] != Monday || days[6] != Sunday {
		t.Errorf("menu order must start with Monday and end with Sunday, got %v", days)
	}

	seen := make(map[Weekday]bool)
	for _, day := range days {
		if seen[day] {
			t.Errorf("duplicate weekday %s", day)
		}
		seen[day] = true
	}
}
