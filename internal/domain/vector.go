package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

// EmbeddingDim — размерность эмбеддингов каталога.
// Вектор другой размерности никогда не сохраняется и не участвует в поиске.
const EmbeddingDim = 1024

// ParseVector приводит значение вектора к []float32.
// Распознаваемые формы: уже декодированный срез чисел ([]float32, []float64, []any),
// JSON-массив и текстовый литерал pgvector ("[0.1,0.2,...]") в string или []byte.
// Размерность здесь не проверяется — см. ValidateVector.
func ParseVector(value any) ([]float32, error) {
	switch v := value.(type) {
	case []float32:
		return v, nil
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, nil
	case []any:
		out := make([]float32, len(v))
		for i, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, fmt.Errorf("element %d is not numeric: %w", i, e.ErrVectorUnparseable)
			}
			out[i] = float32(f)
		}
		return out, nil
	case string:
		return parseVectorLiteral(v)
	case []byte:
		return parseVectorLiteral(string(v))
	default:
		return nil, fmt.Errorf("unsupported vector type %T: %w", value, e.ErrVectorUnparseable)
	}
}

// ValidateVector проверяет инвариант размерности.
func ValidateVector(vector []float32) error {
	if len(vector) == 0 {
		return e.ErrEmptyQueryVector
	}
	if len(vector) != EmbeddingDim {
		return fmt.Errorf("got %d components: %w", len(vector), e.ErrInvalidVectorDim)
	}

	return nil
}

// L2Distance возвращает евклидово расстояние между векторами одинаковой длины.
func L2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return math.Sqrt(sum)
}

// parseVectorLiteral разбирает строковый литерал вектора.
// Сначала пробует строгий JSON, затем ручной разбор "[a, b, c]" —
// формат, в котором pgvector отдает значение как текст.
func parseVectorLiteral(raw string) ([]float32, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, fmt.Errorf("not a vector literal: %w", e.ErrVectorUnparseable)
	}

	var viaJSON []float64
	if err := json.Unmarshal([]byte(trimmed), &viaJSON); err == nil {
		out := make([]float32, len(viaJSON))
		for i, f := range viaJSON {
			out[i] = float32(f)
		}
		return out, nil
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return nil, e.ErrEmptyQueryVector
	}

	parts := strings.Split(inner, ",")
	out := make([]float32, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, e.ErrVectorUnparseable)
		}
		out = append(out, float32(f))
	}

	return out, nil
}
