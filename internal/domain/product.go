package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRecord описывает запись каталога.
// Идентификатор pos общий для товара и его эмбеддинга (1:1, если эмбеддинг есть).
type ProductRecord struct {
	Pos         int64
	Title       string
	Brand       string
	Description string
	Price       decimal.Decimal
	Category    string // сырая категория из хранилища (man_top, woman_shoes, ...)
	Gender      string
	ProductURL  string
	ImageURL    string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProductRecord(pos int64, title string, price decimal.Decimal, category string) *ProductRecord {
	return &ProductRecord{
		Pos:      pos,
		Title:    title,
		Price:    price,
		Category: category,
	}
}

// PriceInt возвращает цену как целое (в единицах валюты каталога).
func (p *ProductRecord) PriceInt() int64 {
	return p.Price.Round(0).IntPart()
}
