package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "Zero", amount: 0, want: "Rp 0"},
		{name: "Thousands", amount: 500000, want: "Rp 500.000"},
		{name: "Millions", amount: 1500000, want: "Rp 1.500.000"},
		{name: "NoGrouping", amount: 750, want: "Rp 750"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "15 Maret 2024", FormatDate(date))
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "Januari 2024", FormatPeriod(1, 2024))
	assert.Equal(t, "Desember 2023", FormatPeriod(12, 2023))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Agustus", MonthName(8))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}

func TestTerbilang(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "Zero", amount: 0, want: "nol"},
		{name: "Ones", amount: 7, want: "tujuh rupiah"},
		{name: "Teens", amount: 11, want: "sebelas rupiah"},
		{name: "Tens", amount: 45, want: "empat puluh lima rupiah"},
		{name: "Hundred", amount: 100, want: "seratus rupiah"},
		{name: "Hundreds", amount: 121, want: "seratus dua puluh satu rupiah"},
		{name: "Thousand", amount: 1000, want: "seribu rupiah"},
		{name: "Thousands", amount: 2500, want: "dua ribu lima ratus rupiah"},
		{name: "TypicalRent", amount: 500000, want: "lima ratus ribu rupiah"},
		{name: "Million", amount: 1000000, want: "satu juta rupiah"},
		{name: "MillionAndChange", amount: 1500000, want: "satu juta lima ratus ribu rupiah"},
		{name: "Billion", amount: 1000000000, want: "satu miliar rupiah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Terbilang(tt.amount))
		})
	}
}
