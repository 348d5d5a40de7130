// Package tracking строит QR-коды для публичной проверки статуса приёмки.
package tracking

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultSize задаёт сторону изображения QR-кода в пикселях.
const DefaultSize = 256

// ErrEmptyCode возвращается, если код приёмки пуст.
var ErrEmptyCode = errors.New("empty tracking code")

// Generator кодирует ссылку на страницу проверки статуса.
type Generator struct {
	PublicURL string
}

// NewGenerator создаёт генератор для публичного адреса дашборда.
func NewGenerator(publicURL string) *Generator {
	return &Generator{PublicURL: strings.TrimRight(publicURL, "/")}
}

// URL возвращает ссылку на проверку статуса по коду.
func (g *Generator) URL(code string) string {
	return g.PublicURL + "/check-status?code=" + url.QueryEscape(code)
}

// PNG возвращает изображение QR-кода со ссылкой на проверку статуса.
func (g *Generator) PNG(code string, size int) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(g.URL(code), qrcode.Medium, size)
}
