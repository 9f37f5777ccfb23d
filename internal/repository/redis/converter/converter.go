package converter

import (
	"github.com/shopspring/decimal"

	"github.com/DRSN-tech/fitting-backend/internal/domain"
)

// ProductRecordConverter переводит записи каталога в кэш-модель и обратно.
type ProductRecordConverter struct{}

func NewProductRecordConverter() ProductRecordConverter {
	return ProductRecordConverter{}
}

func (ProductRecordConverter) ToRedisModel(record *domain.ProductRecord) *ProductRecordRedisModel {
	model := &ProductRecordRedisModel{
		Pos:         record.Pos,
		Title:       record.Title,
		Brand:       record.Brand,
		Description: record.Description,
		Price:       record.Price.InexactFloat64(),
		Category:    record.Category,
		Gender:      record.Gender,
		ProductURL:  record.ProductURL,
		ImageURL:    record.ImageURL,
		Tags:        record.Tags,
		CreatedAt:   formatTime(record.CreatedAt),
	}

	if record.UpdatedAt != nil {
		updated := formatTime(*record.UpdatedAt)
		model.UpdatedAt = &updated
	}

	return model
}

func (ProductRecordConverter) ToDomain(model *ProductRecordRedisModel) *domain.ProductRecord {
	record := &domain.ProductRecord{
		Pos:         model.Pos,
		Title:       model.Title,
		Brand:       model.Brand,
		Description: model.Description,
		Price:       decimal.NewFromFloat(model.Price),
		Category:    model.Category,
		Gender:      model.Gender,
		ProductURL:  model.ProductURL,
		ImageURL:    model.ImageURL,
		Tags:        model.Tags,
	}

	if created, err := parseTime(model.CreatedAt); err == nil {
		record.CreatedAt = created
	}

	if model.UpdatedAt != nil {
		if updated, err := parseTime(*model.UpdatedAt); err == nil {
			record.UpdatedAt = &updated
		}
	}

	return record
}
