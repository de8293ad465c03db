package model

import "time"

type ReceiptStatus string

const (
	ReceiptStatusProcessing ReceiptStatus = "processing"
	ReceiptStatusCompleted  ReceiptStatus = "completed"
	ReceiptStatusShipped    ReceiptStatus = "shipped"
	ReceiptStatusDelivered  ReceiptStatus = "delivered"
	ReceiptStatusCancelled  ReceiptStatus = "cancelled"
)

// チェックアウト直後のステータス
const DefaultReceiptStatus = ReceiptStatusCompleted

func (s ReceiptStatus) Valid() bool {
	switch s {
	case ReceiptStatusProcessing, ReceiptStatusCompleted, ReceiptStatusShipped,
		ReceiptStatusDelivered, ReceiptStatusCancelled:
		return true
	}
	return false
}

// チェックアウト1回につき1件。作成後はstatus以外変更しない。
type Receipt struct {
	ID        string        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Email     string        `gorm:"type:varchar(255);not null;index" json:"email"`
	Items     []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal  float64       `gorm:"not null" json:"subtotal"`
	Tax       float64       `gorm:"not null" json:"tax"`
	Total     float64       `gorm:"not null" json:"total"`
	Status    ReceiptStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time     `gorm:"not null;index" json:"createdAt"`
	// 挿入順。同じ時刻のレシートの並びを固定する
	Seq       int64         `gorm:"autoIncrement;not null;index" json:"-"`
}

// 購入時点の明細スナップショット
type ReceiptItem struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	ReceiptID string  `gorm:"type:varchar(64);not null;index" json:"-"`
	ProductID string  `gorm:"type:varchar(64)" json:"productId,omitempty"`
	Name      string  `gorm:"type:varchar(255)" json:"name,omitempty"`
	Price     float64 `gorm:"not null" json:"price"`
	ImageURL  string  `gorm:"type:varchar(512)" json:"imageUrl,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

func (r Receipt) Clone() Receipt {
	out := r
	out.Items = make([]ReceiptItem, len(r.Items))
	copy(out.Items, r.Items)
	return out
}
