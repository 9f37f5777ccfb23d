package converter

import (
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

// ProductRecordConverter переводит строки products3 в доменные записи.
type ProductRecordConverter struct{}

func NewProductRecordConverter() ProductRecordConverter {
	return ProductRecordConverter{}
}

// ToDomain разбирает цену из текстового представления колонки "Product_P".
func (ProductRecordConverter) ToDomain(model *ProductRecordModel) (*domain.ProductRecord, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidPrice)
	}

	return &domain.ProductRecord{
		Pos:         model.Pos,
		Title:       model.Title,
		Brand:       model.Brand,
		Description: model.Description,
		Price:       price,
		Category:    model.Category,
		Gender:      model.Gender,
		ProductURL:  model.ProductURL,
		ImageURL:    model.ImageURL,
		Tags:        model.Tags,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

// ToEmbedding переводит строку embeddings3 в доменный вектор.
func (ProductRecordConverter) ToEmbedding(model *EmbeddingModel) domain.Embedding {
	return *domain.NewEmbedding(model.Pos, model.DenseVector.Slice())
}
