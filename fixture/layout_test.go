package fixture

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesForDefaultStart(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "20240502", DayFolderName(DefaultStart))
	assert.Equal(t, "0930.csv", MinuteFileName(DefaultStart))
	assert.Equal(t, "0931.csv", MinuteFileName(DefaultStart.Add(time.Minute)))
	assert.Equal(t, "1009.csv", MinuteFileName(DefaultStart.Add(39*time.Minute)))
	assert.Equal(t, "20240503", DayFolderName(DayStart(DefaultStart, 1)))
	assert.Equal(t, "0930.csv", MinuteFileName(DayStart(DefaultStart, 1)))
}

func TestDayStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base time.Time
		day  int
		want time.Time
	}{
		{
			name: "same day",
			base: DefaultStart,
			day:  0,
			want: DefaultStart,
		},
		{
			name: "month rollover",
			base: DefaultStart,
			day:  29,
			want: time.Date(2024, 5, 31, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "into june",
			base: DefaultStart,
			day:  30,
			want: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "last default day",
			base: DefaultStart,
			day:  DefaultDays - 1,
			want: time.Date(2024, 6, 20, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "seconds dropped",
			base: time.Date(2023, 12, 31, 23, 0, 45, 12, time.UTC),
			day:  1,
			want: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(DayStart(tt.base, tt.day)), "got %s", DayStart(tt.base, tt.day))
		})
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()

	plan := Plan(DefaultStart, DefaultDays, DefaultFilesPerDay)
	require.Len(t, plan, DefaultDays*DefaultFilesPerDay)

	assert.Equal(t, filepath.Join("root", "20240502", "0930.csv"), plan[0].Path("root"))
	assert.Equal(t, "0931.csv", plan[1].Name)
	assert.Equal(t, "1009.csv", plan[39].Name)
	assert.Equal(t, "20240503", plan[40].Dir)
	assert.Equal(t, "0930.csv", plan[40].Name)
	assert.Equal(t, "20240620", plan[len(plan)-1].Dir)
	assert.Equal(t, "1009.csv", plan[len(plan)-1].Name)

	for i, e := range plan {
		day := i / DefaultFilesPerDay
		off := i % DefaultFilesPerDay
		assert.Equal(t, DayFolderName(DayStart(DefaultStart, day)), e.Dir)
		assert.Equal(t, MinuteFileName(DayStart(DefaultStart, day).Add(time.Duration(off)*time.Minute)), e.Name)
	}

	assert.Nil(t, Plan(DefaultStart, 0, 40))
	assert.Nil(t, Plan(DefaultStart, 3, 0))
}
