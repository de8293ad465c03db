package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 商品の存在確認はここで行い、CartRepositoryには確認済みの明細だけを渡します。
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		products: products,
	}
}

// CartResponse はカートと計算済みの金額。
type CartResponse struct {
	UserID   string           `json:"userId"`
	Items    []model.CartItem `json:"items"`
	Subtotal float64          `json:"subtotal"`
	Tax      float64          `json:"tax"`
	Total    float64          `json:"total"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int
}

// GetCart はカート取得（無ければ空を作って返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgUserIDRequired)
	}

	cart, err := u.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return CartResponse{}, NewInternalError(err)
	}
	return buildCartResponse(cart), nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (CartResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgUserIDRequired)
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgAddCartRequired)
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgQuantityPositive)
	}

	// 商品チェック
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, ErrMsgProductNotFound)
	}
	if err != nil {
		return CartResponse{}, NewInternalError(err)
	}

	// 名前・価格・画像は追加時点の値を保存
	cart, err := u.carts.AddItem(ctx, userID, model.NewCartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  in.Quantity,
	})
	if errors.Is(err, repo.ErrInvalidQuantity) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgQuantityPositive)
	}
	if err != nil {
		return CartResponse{}, NewInternalError(err)
	}

	return buildCartResponse(cart), nil
}

// 数量変更。1未満は拒否せず1に丸める（Repository側）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID string, lineID string, qty int) (CartResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgUserIDRequired)
	}
	lineID = strings.TrimSpace(lineID)
	if lineID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgCartItemIDRequired)
	}

	cart, err := u.carts.UpdateItemQuantity(ctx, userID, lineID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, ErrMsgCartItemNotFound)
	}
	if err != nil {
		return CartResponse{}, NewInternalError(err)
	}

	return buildCartResponse(cart), nil
}

// 明細削除（無い明細なら何もしない）
func (u *CartUsecase) RemoveCartItem(ctx context.Context, userID string, lineID string) (CartResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgUserIDRequired)
	}
	lineID = strings.TrimSpace(lineID)
	if lineID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgCartItemIDRequired)
	}

	cart, err := u.carts.RemoveItem(ctx, userID, lineID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, ErrMsgCartNotFound)
	}
	if err != nil {
		return CartResponse{}, NewInternalError(err)
	}

	return buildCartResponse(cart), nil
}

// カートを空にする
func (u *CartUsecase) ClearCart(ctx context.Context, userID string) (CartResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, ErrMsgUserIDRequired)
	}

	cart, err := u.carts.Clear(ctx, userID)
	if err != nil {
		return CartResponse{}, NewInternalError(err)
	}
	return buildCartResponse(cart), nil
}

// 明細から金額を計算してCartResponseを作る。
func buildCartResponse(cart model.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}

	lines := make([]PricedLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, PricedLine{Price: it.Price, Quantity: it.Quantity})
	}
	totals := CalculateTotals(lines)

	return CartResponse{
		UserID:   cart.UserID,
		Items:    items,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
}
