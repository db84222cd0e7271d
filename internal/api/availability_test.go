package api

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeSlots(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "bare array",
			raw:  `["09:00 AM","10:00 AM"]`,
			want: []string{"09:00 AM", "10:00 AM"},
		},
		{
			name: "object with array",
			raw:  `{"day":"MONDAY","timeSlots":["09:00 AM","11:00 AM"]}`,
			want: []string{"09:00 AM", "11:00 AM"},
		},
		{
			name: "object with comma string",
			raw:  `{"timeSlots":"09:00 AM, 10:00 AM ,11:00 AM"}`,
			want: []string{"09:00 AM", "10:00 AM", "11:00 AM"},
		},
		{
			name: "object without timeSlots",
			raw:  `{"day":"MONDAY"}`,
			want: []string{},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []string{},
		},
		{
			name: "empty raw",
			raw:  ``,
			want: []string{},
		},
		{
			name: "string with empty parts",
			raw:  `{"timeSlots":" , 09:00 AM, "}`,
			want: []string{"09:00 AM"},
		},
		{
			name:    "number is not a valid shape",
			raw:     `42`,
			wantErr: true,
		},
		{
			name:    "timeSlots of wrong type",
			raw:     `{"timeSlots":42}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeSlots(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeSlots(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeSlots(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
