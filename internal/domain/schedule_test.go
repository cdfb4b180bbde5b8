package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ptr"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

func TestWeekdayAtNoon(t *testing.T) {
	// 2024-06-10 - понедельник
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Monday, WeekdayAtNoon(monday))

	// Полночь в зоне с отрицательным смещением не должна уводить в воскресенье
	loc := time.FixedZone("UTC-5", -5*3600)
	mondayMidnight := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, time.Monday, WeekdayAtNoon(mondayMidnight))

	sunday := time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Sunday, WeekdayAtNoon(sunday))
}

func TestHoliday_BlockWindow(t *testing.T) {
	morning := Holiday{BlockingType: BlockingMorning}
	start, end, ok := morning.BlockWindow()
	require.True(t, ok)
	assert.Equal(t, types.TimeString("00:00"), start)
	assert.Equal(t, types.TimeString("12:00"), end)

	afternoon := Holiday{BlockingType: BlockingAfternoon}
	start, end, ok = afternoon.BlockWindow()
	require.True(t, ok)
	assert.Equal(t, types.TimeString("12:00"), start)
	assert.Equal(t, types.TimeString("24:00"), end)

	custom := Holiday{
		BlockingType:    BlockingCustom,
		CustomStartTime: ptr.Ptr(types.TimeString("10:00")),
		CustomEndTime:   ptr.Ptr(types.TimeString("14:00")),
	}
	start, end, ok = custom.BlockWindow()
	require.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), start)
	assert.Equal(t, types.TimeString("14:00"), end)

	// custom без границ не блокирует ничего
	broken := Holiday{BlockingType: BlockingCustom}
	_, _, ok = broken.BlockWindow()
	assert.False(t, ok)

	// full_day обрабатывается вызывающей стороной отдельно
	fullDay := Holiday{BlockingType: BlockingFullDay}
	_, _, ok = fullDay.BlockWindow()
	assert.False(t, ok)
	assert.True(t, fullDay.IsFullDay())
}

func TestAppointment_Occupies(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusScheduled, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, false},
		{StatusCanceled, false},
		{StatusBlocked, true},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.status}
		assert.Equal(t, tt.want, a.Occupies(), "status=%s", tt.status)
	}
}
