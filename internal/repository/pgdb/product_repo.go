package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
	"github.com/DRSN-tech/fitting-backend/pkg/postgres"
)

const productColumns = `
	pos, "Product_N", "Product_B", description, "Product_P"::text,
	"Category", "Product_G", "Product_U", "Product_img_U",
	tags, created_at, updated_at
`

// ProductRepo реализует доступ к каталогу поверх PostgreSQL.
type ProductRepo struct {
	db     *postgres.LazyDB
	conv   converter.ProductRecordConverter
	logger logger.Logger
}

func NewProductRepo(db *postgres.LazyDB, conv converter.ProductRecordConverter, logger logger.Logger) *ProductRepo {
	return &ProductRepo{
		db:     db,
		conv:   conv,
		logger: logger,
	}
}

// GetProductByPos возвращает запись каталога. Отсутствие строки — это
// pgx.ErrNoRows, завернутая для диагностики.
func (r *ProductRepo) GetProductByPos(ctx context.Context, pos int64) (*domain.ProductRecord, error) {
	pg, err := r.db.Get(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products3 WHERE pos = $1`

	rows, err := pg.Pool.Query(ctx, query, pos)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return nil, e.Wrap(whereami.WhereAmI(), pgx.ErrNoRows)
	}

	record, err := r.scanRecord(rows)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetProductsByPos возвращает записи указанных позиций; отсутствующие позиции
// молча пропускаются.
func (r *ProductRepo) GetProductsByPos(ctx context.Context, positions []int64) ([]domain.ProductRecord, error) {
	pg, err := r.db.Get(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(positions) == 0 {
		return []domain.ProductRecord{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products3 WHERE pos = ANY($1)`

	rows, err := pg.Pool.Query(ctx, query, positions)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return r.collectRecords(rows, len(positions))
}

// ListProducts возвращает весь каталог в порядке позиций.
func (r *ProductRepo) ListProducts(ctx context.Context) ([]domain.ProductRecord, error) {
	pg, err := r.db.Get(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products3 ORDER BY pos`

	rows, err := pg.Pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return r.collectRecords(rows, 0)
}

func (r *ProductRepo) collectRecords(rows pgx.Rows, capacity int) ([]domain.ProductRecord, error) {
	records := make([]domain.ProductRecord, 0, capacity)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return records, nil
}

func (r *ProductRepo) scanRecord(rows pgx.Rows) (*domain.ProductRecord, error) {
	var model converter.ProductRecordModel

	err := rows.Scan(
		&model.Pos, &model.Title, &model.Brand, &model.Description, &model.Price,
		&model.Category, &model.Gender, &model.ProductURL, &model.ImageURL,
		&model.Tags, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	record, err := r.conv.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	return record, nil
}
