package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "simple add", start: "09:00", minutes: 30, want: "09:30"},
		{name: "hour rollover", start: "09:45", minutes: 30, want: "10:15"},
		{name: "exact end of day", start: "23:30", minutes: 30, want: "24:00"},
		{name: "past end of day", start: "23:45", minutes: 30, wantErr: true},
		{name: "negative within day", start: "10:00", minutes: -60, want: "09:00"},
		{name: "invalid value", start: "9am", minutes: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("12:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:45:00")))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2024, 6, 10, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Validate(t *testing.T) {
	_, err := NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("10:60")
	assert.Error(t, err)

	ts, err := NewTimeStringFromString("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), ts)
}
