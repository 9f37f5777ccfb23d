package pgdb

import (
	"context"
	"fmt"

	"github.com/jimlawless/whereami"
	"github.com/pgvector/pgvector-go"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
	"github.com/DRSN-tech/fitting-backend/pkg/postgres"
)

// EmbeddingRepo реализует доступ к векторам поверх PostgreSQL/pgvector.
// Подключение ленивое: первое обращение устанавливает соединение.
type EmbeddingRepo struct {
	db     *postgres.LazyDB
	conv   converter.ProductRecordConverter
	logger logger.Logger
}

func NewEmbeddingRepo(db *postgres.LazyDB, conv converter.ProductRecordConverter, logger logger.Logger) *EmbeddingRepo {
	return &EmbeddingRepo{
		db:     db,
		conv:   conv,
		logger: logger,
	}
}

// SearchSimilar возвращает ближайшие по L2-дистанции записи вместе с векторами.
// Вектор с неверной размерностью на этом уровне — нарушение инварианта
// вызывающего кода, а не пользовательский ввод.
func (r *EmbeddingRepo) SearchSimilar(ctx context.Context, queryVector []float32, limit int) ([]usecase.SearchResult, error) {
	if err := domain.ValidateVector(queryVector); err != nil {
		panic(fmt.Sprintf("embedding repo: query vector must be validated by caller: %v", err))
	}

	pg, err := r.db.Get(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT
			em.pos, em.dense_vector, em.dense_vector <-> $1 AS distance,
			pr."Product_N", pr."Product_B", pr.description, pr."Product_P"::text,
			pr."Category", pr."Product_G", pr."Product_U", pr."Product_img_U",
			pr.tags, pr.created_at, pr.updated_at
		FROM embeddings3 em
		JOIN products3 pr ON pr.pos = em.pos
		ORDER BY distance
		LIMIT $2
	`

	rows, err := pg.Pool.Query(ctx, query, pgvector.NewVector(queryVector), limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	results := make([]usecase.SearchResult, 0, limit)
	for rows.Next() {
		var (
			model    converter.ProductRecordModel
			vector   pgvector.Vector
			distance float64
		)

		err := rows.Scan(
			&model.Pos, &vector, &distance,
			&model.Title, &model.Brand, &model.Description, &model.Price,
			&model.Category, &model.Gender, &model.ProductURL, &model.ImageURL,
			&model.Tags, &model.CreatedAt, &model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		record, err := r.conv.ToDomain(&model)
		if err != nil {
			r.logger.Warnf("строка pos=%d пропущена: %v", model.Pos, err)
			continue
		}

		results = append(results, usecase.SearchResult{
			Record:     *record,
			Similarity: 1.0 - distance,
			Vector:     vector.Slice(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return results, nil
}

// GetEmbeddingsByPos возвращает векторы указанных позиций.
// Пустой список позиций проверяет доступность хранилища и дает пустой результат.
func (r *EmbeddingRepo) GetEmbeddingsByPos(ctx context.Context, positions []int64) ([]domain.Embedding, error) {
	pg, err := r.db.Get(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(positions) == 0 {
		return []domain.Embedding{}, nil
	}

	query := `
		SELECT pos, dense_vector
		FROM embeddings3
		WHERE pos = ANY($1)
	`

	rows, err := pg.Pool.Query(ctx, query, positions)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	embeddings := make([]domain.Embedding, 0, len(positions))
	for rows.Next() {
		var model converter.EmbeddingModel
		if err := rows.Scan(&model.Pos, &model.DenseVector); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		embeddings = append(embeddings, r.conv.ToEmbedding(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return embeddings, nil
}
