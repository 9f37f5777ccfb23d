package domain

// Embedding представляет эмбеддинг товара, привязанный к позиции каталога.
type Embedding struct {
	Pos    int64
	Vector []float32
}

func NewEmbedding(pos int64, vector []float32) *Embedding {
	return &Embedding{
		Pos:    pos,
		Vector: vector,
	}
}
