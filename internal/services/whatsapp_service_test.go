package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	template := "Halo {nama}, pembayaran kamar {kamar} sebesar {jumlah} sudah kami terima. Kwitansi: {kwitansi}"

	got := RenderTemplate(template, map[string]string{
		"nama":     "Budi",
		"kamar":    "A1",
		"jumlah":   "Rp 500.000",
		"kwitansi": "AW2403150042",
	})

	assert.Equal(t, "Halo Budi, pembayaran kamar A1 sebesar Rp 500.000 sudah kami terima. Kwitansi: AW2403150042", got)
}

func TestRenderTemplate_RepeatedAndUnknownPlaceholders(t *testing.T) {
	got := RenderTemplate("{nama} {nama} {tidak_ada}", map[string]string{"nama": "Sari"})

	// Every occurrence is replaced; unknown placeholders pass through.
	assert.Equal(t, "Sari Sari {tidak_ada}", got)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "LeadingZeroBecomesCountryCode", phone: "081234567890", want: "6281234567890"},
		{name: "AlreadyInternational", phone: "6281234567890", want: "6281234567890"},
		{name: "StripsFormatting", phone: "+62 812-3456-7890", want: "6281234567890"},
		{name: "SpacesWithLeadingZero", phone: "0812 3456 789", want: "628123456789"},
		{name: "Empty", phone: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.phone))
		})
	}
}
