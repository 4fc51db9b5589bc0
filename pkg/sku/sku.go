package sku

import (
	"fmt"
	"regexp"
	"strings"
)

// Parts — составляющие внутреннего SKU.
type Parts struct {
	BaseSKU   string
	ColorCode string
	SizeCode  string
	StyleCode string
}

var validSKUPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{2,99}$`)

// GenerateInternalSKU детерминированно собирает внутренний SKU:
// BASE-COLOR-SIZE-STYLE, пустые сегменты опускаются.
// Одинаковый вход всегда даёт одинаковый результат.
func GenerateInternalSKU(base, color, size, style string) string {
	segments := []string{strings.ToUpper(strings.TrimSpace(base))}
	if color != "" {
		segments = append(segments, ColorCode(color))
	}
	if size != "" {
		segments = append(segments, SizeCode(size))
	}
	if style != "" {
		segments = append(segments, shortCode(style))
	}
	return strings.Join(segments, "-")
}

// ParseSKU — эвристическое обращение GenerateInternalSKU по позициям сегментов:
// 2 сегмента -> base+color, 3 -> base+color+size, 4+ -> base сам содержит
// дефисы, последние два сегмента — color+size. Разбор с потерями: гарантии
// обратимости для произвольного входа нет, StyleCode из него не восстанавливается.
func ParseSKU(sku string) (Parts, error) {
	if !IsValidSKU(sku) {
		return Parts{}, fmt.Errorf("invalid sku %q", sku)
	}

	segments := strings.Split(sku, "-")
	switch len(segments) {
	case 1:
		return Parts{BaseSKU: segments[0]}, nil
	case 2:
		return Parts{BaseSKU: segments[0], ColorCode: segments[1]}, nil
	case 3:
		return Parts{BaseSKU: segments[0], ColorCode: segments[1], SizeCode: segments[2]}, nil
	default:
		n := len(segments)
		return Parts{
			BaseSKU:   strings.Join(segments[:n-2], "-"),
			ColorCode: segments[n-2],
			SizeCode:  segments[n-1],
		}, nil
	}
}

// IsValidSKU: латиница/цифры плюс дефис и подчёркивание, длина 3-100,
// первый символ — буква или цифра.
func IsValidSKU(sku string) bool {
	return validSKUPattern.MatchString(sku)
}
