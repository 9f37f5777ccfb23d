package converter

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// ProductRecordModel представляет строку таблицы products3.
// Колонки каталога сохраняют исторические имена источника данных.
type ProductRecordModel struct {
	Pos         int64      `db:"pos"`
	Title       string     `db:"Product_N"`
	Brand       string     `db:"Product_B"`
	Description string     `db:"description"`
	Price       string     `db:"Product_P"`
	Category    string     `db:"Category"`
	Gender      string     `db:"Product_G"`
	ProductURL  string     `db:"Product_U"`
	ImageURL    string     `db:"Product_img_U"`
	Tags        []string   `db:"tags"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// EmbeddingModel представляет строку таблицы embeddings3.
type EmbeddingModel struct {
	Pos         int64           `db:"pos"`
	DenseVector pgvector.Vector `db:"dense_vector"`
}
