package handlers

import (
	"testing"
	"time"
)

func TestBeforeToday(t *testing.T) {
	moscow := time.FixedZone("UTC+3", 3*60*60)
	newYork := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name string
		now  time.Time
		date string
		want bool
	}{
		{
			// 00:30 местного времени: по UTC ещё вчера
			name: "today just after local midnight east of UTC",
			now:  time.Date(2025, 1, 15, 0, 30, 0, 0, moscow),
			date: "2025-01-15",
			want: false,
		},
		{
			// 23:30 местного времени: по UTC уже завтра
			name: "today late evening west of UTC",
			now:  time.Date(2025, 1, 15, 23, 30, 0, 0, newYork),
			date: "2025-01-15",
			want: false,
		},
		{
			name: "yesterday",
			now:  time.Date(2025, 1, 15, 0, 30, 0, 0, moscow),
			date: "2025-01-14",
			want: true,
		},
		{
			name: "tomorrow",
			now:  time.Date(2025, 1, 15, 23, 30, 0, 0, moscow),
			date: "2025-01-16",
			want: false,
		},
		{
			name: "week ago",
			now:  time.Date(2025, 1, 15, 12, 0, 0, 0, newYork),
			date: "2025-01-08",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := time.ParseInLocation("2006-01-02", tt.date, tt.now.Location())
			if err != nil {
				t.Fatalf("parse %s: %v", tt.date, err)
			}
			if got := beforeToday(parsed, tt.now); got != tt.want {
				t.Errorf("beforeToday(%s, now=%s) = %v, want %v",
					tt.date, tt.now.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}
