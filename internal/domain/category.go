package domain

import "strings"

// Categories — слоты, по которым группируются рекомендации.
var Categories = []string{"top", "pants", "shoes", "outer", "accessories"}

// NormalizeCategory приводит категорию хранилища к слоту рекомендаций.
// Используется маппинг категорий БД; неизвестные значения возвращаются как есть.
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return "unknown"
	}

	switch c {
	case "man_outer", "woman_outer":
		return "outer"
	case "man_top", "woman_top":
		return "top"
	case "man_bottom", "woman_bottom":
		return "pants"
	case "man_shoes", "woman_shoes":
		return "shoes"
	case "woman_dress_skirt":
		return "pants" // платья и юбки относим к низу
	}

	return c
}

// IsKnownCategory сообщает, входит ли нормализованная категория в известные слоты.
func IsKnownCategory(normalized string) bool {
	for _, cat := range Categories {
		if cat == normalized {
			return true
		}
	}

	return false
}

var genderAliases = map[string][]string{
	"male":   {"male", "man", "men", "m", "남", "남성", "남자"},
	"female": {"female", "woman", "women", "w", "여", "여성", "여자"},
	"unisex": {"unisex", "uni", "男女", "공용", "유니섹스"},
	"kids":   {"kid", "kids", "child", "children", "아동", "키즈"},
}

// Порядок проверки подстрок: "women" должно распознаваться раньше, чем "men".
var genderSubstringOrder = []string{"female", "male", "unisex", "kids"}

// NormalizeGender приводит обозначение пола к одному из: male, female, unisex, kids.
// Сначала точное совпадение с известными алиасами, затем поиск длинных алиасов
// как подстрок (составные значения вроде "여성용"). Неизвестные значения
// возвращаются в нижнем регистре как есть.
func NormalizeGender(raw string) string {
	g := strings.ToLower(strings.TrimSpace(raw))
	if g == "" {
		return "unknown"
	}

	for norm, aliases := range genderAliases {
		for _, alias := range aliases {
			if g == alias {
				return norm
			}
		}
	}

	for _, norm := range genderSubstringOrder {
		for _, alias := range genderAliases[norm] {
			if len([]rune(alias)) < 2 {
				continue
			}
			if strings.Contains(g, alias) {
				return norm
			}
		}
	}

	return g
}
