package model

import "time"

// カートの明細
// 追加時点の商品名・価格・画像を必ず保存。
type CartItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID    string    `gorm:"type:varchar(255);not null;index" json:"-"`
	ProductID string    `gorm:"type:varchar(64);not null" json:"productId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	ImageURL  string    `gorm:"type:varchar(512)" json:"imageUrl"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Position  int       `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// カートに追加するときの入力。商品IDは呼び出し側でカタログと照合済みであること。
type NewCartItem struct {
	ProductID string
	Name      string
	Price     float64
	ImageURL  string
	Quantity  int
}
