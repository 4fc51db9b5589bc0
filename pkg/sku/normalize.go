package sku

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Канонические размеры апарели. Всё, что не удалось распознать,
// возвращается как есть (trimmed) — нормализация никогда не падает.
var sizeAliases = map[string]string{
	"xs": "XS", "x-small": "XS", "xsmall": "XS", "extra small": "XS", "extra-small": "XS",
	"s": "S", "sm": "S", "small": "S",
	"m": "M", "md": "M", "med": "M", "medium": "M",
	"l": "L", "lg": "L", "large": "L",
	"xl": "XL", "x-large": "XL", "xlarge": "XL", "extra large": "XL", "extra-large": "XL",
	"2xl": "2XL", "xxl": "2XL", "2x": "2XL", "2x-large": "2XL", "2xlarge": "2XL", "2x large": "2XL",
	"3xl": "3XL", "xxxl": "3XL", "3x": "3XL", "3x-large": "3XL", "3xlarge": "3XL",
	"4xl": "4XL", "xxxxl": "4XL", "4x": "4XL", "4x-large": "4XL",
	"5xl": "5XL", "xxxxxl": "5XL", "5x": "5XL", "5x-large": "5XL",
	"os": "OS", "one size": "OS", "onesize": "OS", "one-size": "OS", "osfa": "OS",
	"one size fits all": "OS",
	"ys":                "YS", "youth small": "YS",
	"ym": "YM", "youth medium": "YM",
	"yl": "YL", "youth large": "YL",
	"yxl": "YXL", "youth x-large": "YXL",
}

// Короткие коды размеров для сегментов SKU.
var sizeCodes = map[string]string{
	"XS": "XS", "S": "SM", "M": "MD", "L": "LG", "XL": "XL",
	"2XL": "2X", "3XL": "3X", "4XL": "4X", "5XL": "5X",
	"OS": "OS", "YS": "YS", "YM": "YM", "YL": "YL", "YXL": "YX",
}

var colorAliases = map[string]string{
	"black": "Black", "blk": "Black", "jet black": "Black",
	"white": "White", "wht": "White",
	"navy": "Navy", "navy blue": "Navy", "nvy": "Navy", "midnight navy": "Navy",
	"red": "Red", "true red": "Red",
	"royal": "Royal", "royal blue": "Royal", "roy": "Royal",
	"grey": "Grey", "gray": "Grey", "gry": "Grey",
	"charcoal": "Charcoal", "charcoal grey": "Charcoal", "charcoal gray": "Charcoal",
	"heather grey": "Heather Grey", "heather gray": "Heather Grey",
	"hthr grey": "Heather Grey", "hthr gray": "Heather Grey",
	"athletic heather": "Heather Grey", "grey marle": "Heather Grey",
	"heather navy": "Heather Navy", "hthr navy": "Heather Navy",
	"heather black": "Heather Black", "black heather": "Heather Black",
	"green": "Green", "grn": "Green",
	"forest": "Forest Green", "forest green": "Forest Green",
	"kelly": "Kelly Green", "kelly green": "Kelly Green",
	"blue": "Blue", "light blue": "Light Blue", "lt blue": "Light Blue", "carolina blue": "Light Blue",
	"purple": "Purple", "orange": "Orange", "yellow": "Yellow", "gold": "Gold",
	"pink": "Pink", "light pink": "Light Pink",
	"maroon": "Maroon", "cardinal": "Cardinal",
	"brown": "Brown", "tan": "Tan", "sand": "Sand", "natural": "Natural",
	"olive": "Olive", "military green": "Olive",
}

var colorCodes = map[string]string{
	"Black": "BLK", "White": "WHT", "Navy": "NVY", "Red": "RED", "Royal": "ROY",
	"Grey": "GRY", "Charcoal": "CHR",
	"Heather Grey": "HGY", "Heather Navy": "HNV", "Heather Black": "HBK",
	"Green": "GRN", "Forest Green": "FOR", "Kelly Green": "KLY",
	"Blue": "BLU", "Light Blue": "LBL",
	"Purple": "PUR", "Orange": "ORG", "Yellow": "YLW", "Gold": "GLD",
	"Pink": "PNK", "Light Pink": "LPK",
	"Maroon": "MRN", "Cardinal": "CRD",
	"Brown": "BRN", "Tan": "TAN", "Sand": "SND", "Natural": "NAT", "Olive": "OLV",
}

var titleCaser = cases.Title(language.English)

// NormalizeSize приводит размер поставщика к каноническому коду
// ("Small"/"SM"/"S" -> "S", "2X-Large"/"2X" -> "2XL").
func NormalizeSize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := sizeAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	// Уже канонический ("2XL" и т.п.) тоже проходит через таблицу.
	if _, ok := sizeCodes[strings.ToUpper(trimmed)]; ok {
		return strings.ToUpper(trimmed)
	}
	return trimmed
}

// NormalizeColor приводит цвет к каноническому имени. Неизвестные цвета
// не теряются: возвращаются в Title Case пословно.
func NormalizeColor(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := colorAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return titleCaser.String(strings.ToLower(trimmed))
}

// SizeCode возвращает короткий сегмент SKU для размера (L -> LG).
// Для неизвестных размеров — верхний регистр без спецсимволов, максимум 3 знака.
func SizeCode(size string) string {
	normalized := NormalizeSize(size)
	if code, ok := sizeCodes[normalized]; ok {
		return code
	}
	return shortCode(normalized)
}

// ColorCode возвращает короткий сегмент SKU для цвета (Black -> BLK).
func ColorCode(color string) string {
	normalized := NormalizeColor(color)
	if code, ok := colorCodes[normalized]; ok {
		return code
	}
	return shortCode(normalized)
}

func shortCode(s string) string {
	var builder strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
		}
		if builder.Len() == 3 {
			break
		}
	}
	return builder.String()
}
