package model

import "time"

// 1ユーザーにつきカートは1つ（userIdが主キー）
type Cart struct {
	UserID    string     `gorm:"primaryKey;type:varchar(255)" json:"userId"`
	Items     []CartItem `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`
}

// Cloneは明細スライスまで複製したカートを返す。
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// 同じ商品の明細を探す
func (c Cart) FindByProductID(productID string) (int, bool) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}

// 明細IDで探す
func (c Cart) FindByLineID(lineID string) (int, bool) {
	for i, it := range c.Items {
		if it.ID == lineID {
			return i, true
		}
	}
	return -1, false
}
