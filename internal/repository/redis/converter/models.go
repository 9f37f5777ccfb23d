package converter

// ProductRecordRedisModel — сериализуемая проекция записи каталога для кэша.
// Поля нормализованы: цена — число, даты — строки ISO 8601.
type ProductRecordRedisModel struct {
	Pos         int64    `json:"pos"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Gender      string   `json:"gender"`
	ProductURL  string   `json:"product_url"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   *string  `json:"updated_at,omitempty"`
}
