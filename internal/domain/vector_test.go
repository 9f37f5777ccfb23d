package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

func validVector() []float32 {
	v := make([]float32, EmbeddingDim)
	for i := range v {
		v[i] = float32(i) / EmbeddingDim
	}

	return v
}

func TestParseVector(t *testing.T) {
	t.Run("float32 slice passes through", func(t *testing.T) {
		in := []float32{0.1, 0.2, 0.3}
		out, err := ParseVector(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("float64 slice is converted", func(t *testing.T) {
		out, err := ParseVector([]float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, out)
	})

	t.Run("decoded JSON array of any", func(t *testing.T) {
		var decoded any
		require.NoError(t, json.Unmarshal([]byte(`[0.5, 1.5]`), &decoded))

		out, err := ParseVector(decoded)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 1.5}, out)
	})

	t.Run("JSON string literal", func(t *testing.T) {
		out, err := ParseVector("[1.0, 2.0, 3.0]")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, out)
	})

	t.Run("pgvector text literal without spaces", func(t *testing.T) {
		out, err := ParseVector([]byte("[0.25,0.5,0.75]"))
		require.NoError(t, err)
		assert.Equal(t, []float32{0.25, 0.5, 0.75}, out)
	})

	t.Run("non numeric element is rejected", func(t *testing.T) {
		_, err := ParseVector([]any{1.0, "two"})
		assert.ErrorIs(t, err, e.ErrVectorUnparseable)
	})

	t.Run("plain text is rejected", func(t *testing.T) {
		_, err := ParseVector("not a vector")
		assert.ErrorIs(t, err, e.ErrVectorUnparseable)
	})

	t.Run("unsupported type is rejected", func(t *testing.T) {
		_, err := ParseVector(42)
		assert.ErrorIs(t, err, e.ErrVectorUnparseable)
	})
}

func TestValidateVector(t *testing.T) {
	t.Run("empty vector", func(t *testing.T) {
		assert.ErrorIs(t, ValidateVector(nil), e.ErrEmptyQueryVector)
		assert.ErrorIs(t, ValidateVector([]float32{}), e.ErrEmptyQueryVector)
	})

	t.Run("wrong dimension", func(t *testing.T) {
		assert.ErrorIs(t, ValidateVector(make([]float32, 3)), e.ErrInvalidVectorDim)
		assert.ErrorIs(t, ValidateVector(make([]float32, EmbeddingDim+1)), e.ErrInvalidVectorDim)
	})

	t.Run("exact dimension", func(t *testing.T) {
		assert.NoError(t, ValidateVector(validVector()))
	})
}

func TestL2Distance(t *testing.T) {
	assert.InDelta(t, 0.0, L2Distance([]float32{1, 2}, []float32{1, 2}), 1e-9)
	assert.InDelta(t, 5.0, L2Distance([]float32{0, 0}, []float32{3, 4}), 1e-9)
}
