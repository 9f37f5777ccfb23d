package domain

// StyleProfile — структурированное описание стиля, полученное от внешнего анализа.
// Потребляется рекомендательным индексом только на чтение.
type StyleProfile struct {
	Tags          []string `json:"tags,omitempty"`
	Captions      []string `json:"captions,omitempty"`
	Top           []string `json:"top,omitempty"`
	Pants         []string `json:"pants,omitempty"`
	Shoes         []string `json:"shoes,omitempty"`
	Outer         []string `json:"outer,omitempty"`
	Accessories   []string `json:"accessories,omitempty"`
	OverallStyle  []string `json:"overall_style,omitempty"`
	DetectedStyle []string `json:"detected_style,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Categories    []string `json:"categories,omitempty"`
}

// Keywords собирает ключевые слова профиля в фиксированном порядке полей.
// Пустые строки отбрасываются.
func (s *StyleProfile) Keywords() []string {
	if s == nil {
		return nil
	}

	groups := [][]string{
		s.Tags, s.Captions,
		s.Top, s.Pants, s.Shoes, s.Outer, s.Accessories,
		s.OverallStyle, s.DetectedStyle, s.Colors, s.Categories,
	}

	var keywords []string
	for _, group := range groups {
		for _, kw := range group {
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}

	return keywords
}

// Slots возвращает слоты, явно затронутые профилем (известные категории
// из Categories плюс непустые пер-слотовые списки).
func (s *StyleProfile) Slots() map[string]bool {
	slots := make(map[string]bool)
	if s == nil {
		return slots
	}

	for _, raw := range s.Categories {
		norm := NormalizeCategory(raw)
		if IsKnownCategory(norm) {
			slots[norm] = true
		}
	}

	perSlot := map[string][]string{
		"top":         s.Top,
		"pants":       s.Pants,
		"shoes":       s.Shoes,
		"outer":       s.Outer,
		"accessories": s.Accessories,
	}
	for slot, values := range perSlot {
		if len(values) > 0 {
			slots[slot] = true
		}
	}

	return slots
}
