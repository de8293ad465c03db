package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// CartRepository はユーザーIDごとのカートを保存・更新する窓口。
// 返すカートはコピーで、呼び出し側が書き換えても保存内容には影響しない。
type CartRepository interface {
	// 無ければ空カートを作って返す
	GetOrCreate(ctx context.Context, userID string) (model.Cart, error)

	// 無ければErrNotFound（作らない）
	Get(ctx context.Context, userID string) (model.Cart, error)

	// 同一商品は数量加算、無ければ末尾に追加
	AddItem(ctx context.Context, userID string, item model.NewCartItem) (model.Cart, error)

	// 明細が無くてもエラーにしない。カートが無いときだけErrNotFound
	RemoveItem(ctx context.Context, userID string, lineID string) (model.Cart, error)

	// 数量は最低1に丸める。カートか明細が無ければErrNotFound
	UpdateItemQuantity(ctx context.Context, userID string, lineID string, qty int) (model.Cart, error)

	// 明細を空にする（カートが無ければ作る）
	Clear(ctx context.Context, userID string) (model.Cart, error)
}

// 数量の下限は1
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
