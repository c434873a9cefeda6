// Package format holds the locale helpers used on receipts and WhatsApp
// messages: rupiah formatting, Indonesian dates and terbilang (amounts
// spelled out in words).
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatCurrency renders a whole-rupiah amount with id-ID grouping,
// e.g. 1500000 -> "Rp 1.500.000".
func FormatCurrency(amount int64) string {
	return idPrinter.Sprintf("Rp %v", number.Decimal(amount))
}

var monthNames = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name for a 1-based month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// FormatDate renders a date the way receipts show it, e.g. "15 Maret 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(int(t.Month())), t.Year())
}

// FormatPeriod renders a billing period, e.g. "Maret 2024".
func FormatPeriod(month, year int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}

var terbilangOnes = []string{
	"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan",
	"sepuluh", "sebelas", "dua belas", "tiga belas", "empat belas", "lima belas",
	"enam belas", "tujuh belas", "delapan belas", "sembilan belas",
}

var terbilangTens = []string{
	"", "", "dua puluh", "tiga puluh", "empat puluh", "lima puluh",
	"enam puluh", "tujuh puluh", "delapan puluh", "sembilan puluh",
}

func convertHundreds(n int64) string {
	var b strings.Builder

	if n >= 100 {
		hundreds := n / 100
		if hundreds == 1 {
			b.WriteString("seratus ")
		} else {
			b.WriteString(terbilangOnes[hundreds] + " ratus ")
		}
		n %= 100
	}

	if n >= 20 {
		b.WriteString(terbilangTens[n/10])
		if n%10 != 0 {
			b.WriteString(" " + terbilangOnes[n%10])
		}
	} else if n > 0 {
		b.WriteString(terbilangOnes[n])
	}

	return strings.TrimSpace(b.String())
}

// Terbilang spells a rupiah amount out in words for the receipt,
// e.g. 1500000 -> "satu juta lima ratus ribu rupiah".
func Terbilang(num int64) string {
	if num == 0 {
		return "nol"
	}

	var b strings.Builder

	if num >= 1_000_000_000 {
		billions := num / 1_000_000_000
		if billions == 1 {
			b.WriteString("satu miliar ")
		} else {
			b.WriteString(convertHundreds(billions) + " miliar ")
		}
		num %= 1_000_000_000
	}

	if num >= 1_000_000 {
		millions := num / 1_000_000
		if millions == 1 {
			b.WriteString("satu juta ")
		} else {
			b.WriteString(convertHundreds(millions) + " juta ")
		}
		num %= 1_000_000
	}

	if num >= 1000 {
		thousands := num / 1000
		if thousands == 1 {
			b.WriteString("seribu ")
		} else {
			b.WriteString(convertHundreds(thousands) + " ribu ")
		}
		num %= 1000
	}

	if num > 0 {
		b.WriteString(convertHundreds(num))
	}

	return strings.TrimSpace(b.String()) + " rupiah"
}
