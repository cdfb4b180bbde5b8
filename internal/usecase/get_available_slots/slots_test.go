package get_available_slots

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsp(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func occupyingAppointment(start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusScheduled,
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		interval int
		duration int
		want     []types.TimeString
	}{
		{
			name:     "morning shift with half-hour grid",
			start:    "09:00",
			end:      "12:00",
			interval: 30,
			duration: 30,
			want:     []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:     "service longer than grid step",
			start:    "09:00",
			end:      "10:00",
			interval: 15,
			duration: 45,
			want:     []types.TimeString{"09:00", "09:15"},
		},
		{
			name:     "service longer than shift",
			start:    "09:00",
			end:      "09:30",
			interval: 15,
			duration: 60,
			want:     []types.TimeString{},
		},
		{
			name:     "empty shift window",
			start:    "09:00",
			end:      "09:00",
			interval: 30,
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "inverted shift window",
			start:    "18:00",
			end:      "09:00",
			interval: 30,
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "last slot ends exactly at shift end",
			start:    "10:00",
			end:      "11:00",
			interval: 20,
			duration: 20,
			want:     []types.TimeString{"10:00", "10:20", "10:40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateTimeSlots(ts(tt.start), ts(tt.end), tt.interval, tt.duration)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateTimeSlots_StrictlyAscendingNoDuplicates(t *testing.T) {
	got := generateTimeSlots(ts("08:00"), ts("20:00"), 25, 40)

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].IsBefore(got[i]), "slots must be strictly ascending: %s before %s", got[i-1], got[i])
	}
}

func TestFilterSlots_FullDayHolidayShortCircuits(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00"}
	holidays := []*domain.Holiday{
		{BlockingType: domain.BlockingFullDay, IsActive: true},
	}
	appointments := []*domain.Appointment{}

	got := filterSlots(candidates, 30, holidays, appointments, 3)

	assert.Empty(t, got)
}

func TestFilterSlots_MorningBlock(t *testing.T) {
	candidates := generateTimeSlots(ts("09:00"), ts("14:00"), 30, 30)
	holidays := []*domain.Holiday{
		{BlockingType: domain.BlockingMorning, IsActive: true},
	}

	got := filterSlots(candidates, 30, holidays, nil, 3)

	// Слот 11:30-12:00 еще задевает утреннее окно [00:00, 12:00), слот 12:00 - нет
	assert.Equal(t, []types.TimeString{"12:00", "12:30", "13:00", "13:30"}, got)
}

func TestFilterSlots_AfternoonBlock(t *testing.T) {
	candidates := generateTimeSlots(ts("09:00"), ts("14:00"), 30, 30)
	holidays := []*domain.Holiday{
		{BlockingType: domain.BlockingAfternoon, IsActive: true},
	}

	got := filterSlots(candidates, 30, holidays, nil, 3)

	// Последний допустимый слот заканчивается ровно в 12:00 - границы не пересекаются
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, got)
}

func TestFilterSlots_CustomBlock(t *testing.T) {
	candidates := generateTimeSlots(ts("09:00"), ts("13:00"), 30, 30)
	holidays := []*domain.Holiday{
		{
			BlockingType:    domain.BlockingCustom,
			CustomStartTime: tsp("10:00"),
			CustomEndTime:   tsp("11:00"),
			IsActive:        true,
		},
	}

	got := filterSlots(candidates, 30, holidays, nil, 3)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00", "11:30", "12:00", "12:30"}, got)
}

func TestFilterSlots_CustomBlockMissingBoundaryIgnored(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30"}
	holidays := []*domain.Holiday{
		{BlockingType: domain.BlockingCustom, CustomStartTime: tsp("09:00"), IsActive: true},
	}

	got := filterSlots(candidates, 30, holidays, nil, 3)

	assert.Equal(t, candidates, got)
}

func TestFilterSlots_CapacityLimit(t *testing.T) {
	candidates := []types.TimeString{"10:00"}

	// Лимит 2: одна пересекающаяся запись еще оставляет место
	oneBooked := []*domain.Appointment{occupyingAppointment("10:00", 30)}
	got := filterSlots(candidates, 30, nil, oneBooked, 2)
	assert.Equal(t, []types.TimeString{"10:00"}, got)

	// Лимит 2: две пересекающиеся записи исчерпывают слот
	twoBooked := []*domain.Appointment{
		occupyingAppointment("10:00", 30),
		occupyingAppointment("10:15", 30),
	}
	got = filterSlots(candidates, 30, nil, twoBooked, 2)
	assert.Empty(t, got)
}

func TestFilterSlots_SingleAppointmentExcludesOnlyItsSlot(t *testing.T) {
	candidates := generateTimeSlots(ts("09:00"), ts("12:00"), 30, 30)
	appointments := []*domain.Appointment{occupyingAppointment("10:00", 30)}

	got := filterSlots(candidates, 30, nil, appointments, 1)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30", "11:00", "11:30"}, got)
}

func TestFilterSlots_NonOccupyingStatusesIgnored(t *testing.T) {
	candidates := []types.TimeString{"10:00"}
	canceled := occupyingAppointment("10:00", 30)
	canceled.Status = domain.StatusCanceled
	completed := occupyingAppointment("10:00", 30)
	completed.Status = domain.StatusCompleted

	got := filterSlots(candidates, 30, nil, []*domain.Appointment{canceled, completed}, 1)

	assert.Equal(t, []types.TimeString{"10:00"}, got)
}

func TestFilterSlots_BlockedStatusOccupies(t *testing.T) {
	candidates := []types.TimeString{"12:00", "12:30", "13:00"}
	lunch := occupyingAppointment("12:00", 60)
	lunch.Status = domain.StatusBlocked

	got := filterSlots(candidates, 30, nil, []*domain.Appointment{lunch}, 1)

	assert.Equal(t, []types.TimeString{"13:00"}, got)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 string
		want           bool
	}{
		{"partial overlap", "11:30", "12:00", "11:20", "11:40", true},
		{"contained", "10:00", "11:00", "10:15", "10:30", true},
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"touching at end", "11:30", "12:00", "11:00", "11:30", false},
		{"touching at start", "11:30", "12:00", "12:00", "12:30", false},
		{"disjoint", "09:00", "09:30", "15:00", "16:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intervalsOverlap(ts(tt.a1), ts(tt.a2), ts(tt.b1), ts(tt.b2))
			assert.Equal(t, tt.want, got)

			// Пересечение симметрично относительно порядка интервалов
			swapped := intervalsOverlap(ts(tt.b1), ts(tt.b2), ts(tt.a1), ts(tt.a2))
			assert.Equal(t, tt.want, swapped)
		})
	}
}

func TestFilterPastSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00"}

	got := filterPastSlots(slots, ts("10:00"))

	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, got)
}
