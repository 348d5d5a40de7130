package view

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// Number форматирует число по правилам индонезийской локали: 150000 -> "150.000".
func Number(v float64) string {
	if v == math.Trunc(v) {
		return idPrinter.Sprint(number.Decimal(int64(v)))
	}
	return idPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Rupiah форматирует сумму: 150000 -> "Rp 150.000".
func Rupiah(v float64) string {
	return "Rp " + Number(v)
}

// Date форматирует дату как YYYY-MM-DD. Нулевое время даёт пустую строку.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// DateTime форматирует дату и время для таблиц.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
