package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SafeMarshal сериализует модель в два прохода: целиком, а при сбое —
// по полям, подставляя строковое представление вместо несериализуемых значений.
// Запись в кэш не должна падать из-за одного проблемного поля.
func SafeMarshal(model *ProductRecordRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err == nil {
		return data, nil
	}

	fields := map[string]any{
		"pos":         model.Pos,
		"title":       model.Title,
		"brand":       model.Brand,
		"description": model.Description,
		"price":       model.Price,
		"category":    model.Category,
		"gender":      model.Gender,
		"product_url": model.ProductURL,
		"image_url":   model.ImageURL,
		"tags":        model.Tags,
		"created_at":  model.CreatedAt,
	}
	if model.UpdatedAt != nil {
		fields["updated_at"] = *model.UpdatedAt
	}

	for name, value := range fields {
		if _, err := json.Marshal(value); err != nil {
			fields[name] = fmt.Sprint(value)
		}
	}

	return json.Marshal(fields)
}

// TryUnmarshal читает кэш-модель; на нетипизированных данных (результат
// fallback-сериализации) значения приводятся к ожидаемым типам.
func TryUnmarshal(data []byte) (*ProductRecordRedisModel, error) {
	var model ProductRecordRedisModel
	if err := json.Unmarshal(data, &model); err == nil {
		return &model, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	model = ProductRecordRedisModel{
		Pos:         asInt64(raw["pos"]),
		Title:       asString(raw["title"]),
		Brand:       asString(raw["brand"]),
		Description: asString(raw["description"]),
		Price:       asFloat64(raw["price"]),
		Category:    asString(raw["category"]),
		Gender:      asString(raw["gender"]),
		ProductURL:  asString(raw["product_url"]),
		ImageURL:    asString(raw["image_url"]),
		Tags:        asStrings(raw["tags"]),
		CreatedAt:   asString(raw["created_at"]),
	}

	if v, ok := raw["updated_at"]; ok {
		updated := asString(v)
		model.UpdatedAt = &updated
	}

	return &model, nil
}

// NormalizeValue приводит произвольное значение к JSON-дружественному виду:
// даты — в ISO 8601, decimal — в float64, структуры — в карту полей,
// остальное несериализуемое — в строку.
func NormalizeValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return formatTime(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return formatTime(*v)
	case decimal.Decimal:
		return v.InexactFloat64()
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return string(data)
	}

	return generic
}

// formatTime сериализует момент времени в ISO 8601.
// Полночь UTC без долей секунды трактуется как дата без времени.
func formatTime(t time.Time) string {
	u := t.UTC()
	if h, m, s := u.Clock(); h == 0 && m == 0 && s == 0 && u.Nanosecond() == 0 {
		return u.Format("2006-01-02")
	}

	return u.Format(time.RFC3339)
}

// parseTime принимает обе формы, которые пишет formatTime.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", s)
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}

	return fmt.Sprint(v)
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		var parsed int64
		_, _ = fmt.Sscanf(n, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		var parsed float64
		_, _ = fmt.Sscanf(n, "%g", &parsed)
		return parsed
	default:
		return 0
	}
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, asString(item))
	}

	return out
}
