package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthsElapsed(t *testing.T) {
	tests := []struct {
		name    string
		checkin time.Time
		now     time.Time
		want    int
	}{
		{
			name:    "SameMonthCountsAsOne",
			checkin: date(2024, time.March, 1),
			now:     date(2024, time.March, 20),
			want:    1,
		},
		{
			name:    "ThreeMonthsInclusive",
			checkin: date(2024, time.January, 1),
			now:     date(2024, time.March, 15),
			want:    3,
		},
		{
			name:    "CrossYearSpan",
			checkin: date(2023, time.November, 10),
			now:     date(2024, time.February, 1),
			want:    4,
		},
		{
			name:    "MultiYearSpan",
			checkin: date(2022, time.June, 1),
			now:     date(2024, time.June, 1),
			want:    25,
		},
		{
			name:    "FutureCheckinFloorsAtZero",
			checkin: date(2024, time.May, 1),
			now:     date(2024, time.March, 1),
			want:    0,
		},
		{
			name:    "DayOfMonthIrrelevant",
			checkin: date(2024, time.January, 31),
			now:     date(2024, time.February, 1),
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsElapsed(tt.checkin, tt.now))
		})
	}
}

func TestOutstandingAmount(t *testing.T) {
	tests := []struct {
		name        string
		monthlyRent int64
		months      int
		totalPaid   int64
		want        int64
	}{
		{name: "NoHistoryThreeMonths", monthlyRent: 500000, months: 3, totalPaid: 0, want: 1500000},
		{name: "OnePaymentMade", monthlyRent: 500000, months: 3, totalPaid: 500000, want: 1000000},
		{name: "FullyPaid", monthlyRent: 500000, months: 3, totalPaid: 1500000, want: 0},
		{name: "OverpaidFloorsAtZero", monthlyRent: 500000, months: 3, totalPaid: 2000000, want: 0},
		{name: "CheckinThisMonthOwesOneRent", monthlyRent: 500000, months: 1, totalPaid: 0, want: 500000},
		{name: "ZeroMonths", monthlyRent: 500000, months: 0, totalPaid: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutstandingAmount(tt.monthlyRent, tt.months, tt.totalPaid))
		})
	}
}

// With a fixed payment history, outstanding never decreases as the months
// advance.
func TestOutstandingAmount_Monotonic(t *testing.T) {
	checkin := date(2024, time.January, 1)
	const rent = 500000
	const totalPaid = 1200000

	previous := int64(0)
	for offset := 0; offset < 24; offset++ {
		now := checkin.AddDate(0, offset, 14)
		outstanding := OutstandingAmount(rent, MonthsElapsed(checkin, now), totalPaid)
		assert.GreaterOrEqual(t, outstanding, previous, "outstanding decreased at month offset %d", offset)
		previous = outstanding
	}
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name    string
		checkin time.Time
		now     time.Time
		want    time.Time
	}{
		{
			name:    "AnniversaryNextMonth",
			checkin: date(2024, time.January, 10),
			now:     date(2024, time.March, 5),
			want:    date(2024, time.April, 10),
		},
		{
			name:    "ClampedToShortMonth",
			checkin: date(2024, time.January, 31),
			now:     date(2024, time.January, 15),
			want:    date(2024, time.February, 29),
		},
		{
			name:    "YearRollover",
			checkin: date(2024, time.March, 5),
			now:     date(2024, time.December, 20),
			want:    date(2025, time.January, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDueDate(tt.checkin, tt.now))
		})
	}
}
