package service

import (
	"testing"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeWrite_TruthTable(t *testing.T) {
	today := time.Date(2025, 12, 15, 9, 30, 0, 0, time.Local)
	now := time.Date(2025, 12, 15, 22, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		dayDate  time.Time
		override bool
		wantErr  error
	}{
		{"same day without override", today, false, nil},
		{"same day with override", today, true, nil},
		{"past day without override", yesterday, false, domain.ErrRetroBlocked},
		{"past day with override", yesterday, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeWrite(tt.dayDate, tt.override, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStateOf_MidnightRollover(t *testing.T) {
	// A day created at 23:59 is current for one more minute and
	// retroactive right after the date rolls over.
	created := time.Date(2025, 12, 15, 23, 59, 0, 0, time.Local)

	assert.Equal(t, DayCurrent, StateOf(created, created.Add(30*time.Second)))
	assert.Equal(t, DayRetroactive, StateOf(created, created.Add(2*time.Minute)))
}

func TestStateOf_NeverStored(t *testing.T) {
	// Same record, different clocks: the state is a function of now.
	date := time.Date(2025, 12, 15, 8, 0, 0, 0, time.Local)

	assert.Equal(t, DayCurrent, StateOf(date, date.Add(12*time.Hour)))
	assert.Equal(t, DayRetroactive, StateOf(date, date.AddDate(0, 0, 3)))
}
