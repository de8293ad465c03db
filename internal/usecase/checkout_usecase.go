package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// usecaseがValidatorに依存する約束
type CheckoutValidator interface {
	// userID → 必須項目 → 空カート → email形式 の順に検証
	ValidateCheckout(ctx context.Context, userID string, in CheckoutInput) error
	ValidateEmail(email string) error
}

type CheckoutUsecase struct {
	tx        repo.TransactionManager
	receipts  repo.ReceiptRepository
	products  repo.ProductRepository
	validator CheckoutValidator
	idGen     IDGenerator
	clock     Clock
	log       *zap.Logger

	// trueならカタログにある商品はカタログ価格で計算し直す
	reprice bool
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	receipts repo.ReceiptRepository,
	products repo.ProductRepository,
	validator CheckoutValidator,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
	reprice bool,
) *CheckoutUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutUsecase{
		tx:        tx,
		receipts:  receipts,
		products:  products,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
		log:       log,
		reprice:   reprice,
	}
}

// クライアントが送ってくるカート明細
type CheckoutItemInput struct {
	ProductID string
	Name      string
	Price     float64
	ImageURL  string
	Quantity  int
	// 価格や数量が読めなかった明細。検証の最後でエラーにする
	Malformed bool
}

// CartItemsがnilなら未指定、空スライスなら空カート
type CheckoutInput struct {
	Name      string
	Email     string
	CartItems []CheckoutItemInput
}

// Checkout はレシートを作成し、カートを空にする。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (model.Receipt, error) {
	userID = strings.TrimSpace(userID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := u.validator.ValidateCheckout(ctx, userID, in); err != nil {
		return model.Receipt{}, err
	}

	items, err := u.snapshotItems(ctx, in.CartItems)
	if err != nil {
		return model.Receipt{}, err
	}

	lines := make([]PricedLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, PricedLine{Price: it.Price, Quantity: it.Quantity})
	}
	totals := CalculateTotals(lines)

	receipt := model.Receipt{
		ID:        u.idGen.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Status:    model.DefaultReceiptStatus,
		CreatedAt: u.clock.Now(),
	}

	//レシート作成とカートのクリアはまとめて行う
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Receipts().Create(ctx, receipt); err != nil {
			return NewInternalError(err)
		}
		if _, err := r.Carts().Clear(ctx, userID); err != nil {
			return NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Receipt{}, err
		}
		return model.Receipt{}, NewInternalError(err)
	}

	u.log.Info("checkout completed",
		zap.String("user_id", userID),
		zap.String("receipt_id", receipt.ID),
		zap.Int("items", len(receipt.Items)),
		zap.Float64("total", receipt.Total),
	)

	return receipt, nil
}

// 明細のスナップショットを作る（必要ならカタログ価格に置き換え）
func (u *CheckoutUsecase) snapshotItems(ctx context.Context, in []CheckoutItemInput) ([]model.ReceiptItem, error) {
	items := make([]model.ReceiptItem, 0, len(in))

	for _, it := range in {
		item := model.ReceiptItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
		}

		if u.reprice && it.ProductID != "" {
			p, err := u.products.FindByID(ctx, it.ProductID)
			switch {
			case err == nil:
				item.Price = p.Price
				if item.Name == "" {
					item.Name = p.Name
				}
				if item.ImageURL == "" {
					item.ImageURL = p.ImageURL
				}
			case errors.Is(err, repo.ErrNotFound):
				// カタログに無い商品は送られてきた価格のまま
			default:
				return nil, NewInternalError(err)
			}
		}

		items = append(items, item)
	}
	return items, nil
}

// GetReceipt はIDでレシートを1件返す。
func (u *CheckoutUsecase) GetReceipt(ctx context.Context, receiptID string) (model.Receipt, error) {
	receiptID = strings.TrimSpace(receiptID)
	if receiptID == "" {
		return model.Receipt{}, NewHTTPError(http.StatusNotFound, ErrMsgReceiptNotFound)
	}

	r, err := u.receipts.FindByID(ctx, receiptID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Receipt{}, NewHTTPError(http.StatusNotFound, ErrMsgReceiptNotFound)
	}
	if err != nil {
		return model.Receipt{}, NewInternalError(err)
	}
	return r, nil
}

// ListReceiptsByEmail はemailのレシートを作成順で返す。
func (u *CheckoutUsecase) ListReceiptsByEmail(ctx context.Context, email string) ([]model.Receipt, error) {
	email = strings.TrimSpace(email)
	if err := u.validator.ValidateEmail(email); err != nil {
		return []model.Receipt{}, err
	}

	list, err := u.receipts.ListByEmail(ctx, email)
	if err != nil {
		return []model.Receipt{}, NewInternalError(err)
	}
	return list, nil
}

// ステータス更新。遷移の順番は制限しない（同じステータスへの更新もOK）
func (u *CheckoutUsecase) UpdateReceiptStatus(ctx context.Context, receiptID string, status string) (model.Receipt, error) {
	newStatus := model.ReceiptStatus(strings.ToLower(strings.TrimSpace(status)))
	if !newStatus.Valid() {
		return model.Receipt{}, NewHTTPError(http.StatusBadRequest, ErrMsgInvalidStatus)
	}

	r, err := u.receipts.UpdateStatus(ctx, strings.TrimSpace(receiptID), newStatus)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Receipt{}, NewHTTPError(http.StatusNotFound, ErrMsgReceiptNotFound)
	}
	if err != nil {
		return model.Receipt{}, NewInternalError(err)
	}

	u.log.Info("receipt status updated",
		zap.String("receipt_id", r.ID),
		zap.String("status", string(r.Status)),
	)
	return r, nil
}
