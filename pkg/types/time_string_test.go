package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:00", want: "08:00"},
		{name: "valid evening", input: "22:30", want: "22:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "missing minutes", input: "08", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:61", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 15, 14, 5, 33, 0, time.UTC)
	assert.Equal(t, TimeString("14:05"), NewTimeString(moment))
}

func TestFromHour(t *testing.T) {
	assert.Equal(t, TimeString("09:00"), FromHour(9))
	assert.Equal(t, TimeString("00:00"), FromHour(0))
	assert.Equal(t, TimeString("23:00"), FromHour(23))
}

func TestTimeString_HourMinute(t *testing.T) {
	ts := TimeString("18:45")
	assert.Equal(t, 18, ts.Hour())
	assert.Equal(t, 45, ts.Minute())
}

func TestTimeString_IsWholeHour(t *testing.T) {
	assert.True(t, TimeString("10:00").IsWholeHour())
	assert.False(t, TimeString("10:30").IsWholeHour())
	assert.False(t, TimeString("bogus").IsWholeHour())
}

func TestTimeString_Comparisons(t *testing.T) {
	open := TimeString("08:00")
	close := TimeString("22:00")

	assert.True(t, open.IsBefore(close))
	assert.True(t, close.IsAfter(open))
	assert.False(t, open.IsBefore(open))
	assert.False(t, open.IsAfter(open))

	// "24:00" ordena depois de qualquer hora do dia
	assert.True(t, TimeString("24:00").IsAfter(close))
}

func TestTimeString_AddHours(t *testing.T) {
	ts := TimeString("20:00")

	got, err := ts.AddHours(2)
	require.NoError(t, err)
	assert.Equal(t, TimeString("22:00"), got)

	// Chegar exatamente na meia-noite vira o marcador de fim de dia
	endOfDay, err := ts.AddHours(4)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), endOfDay)

	// Passar da meia-noite é erro
	_, err = ts.AddHours(5)
	require.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("00:30").AddMinutes(-60)
	require.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("07:00"))
	assert.Equal(t, TimeString("07:00"), ts)

	require.NoError(t, ts.Scan([]byte("19:00")))
	assert.Equal(t, TimeString("19:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	err := ts.Scan(42)
	assert.ErrorIs(t, err, ErrInvalidScanType)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)
}
