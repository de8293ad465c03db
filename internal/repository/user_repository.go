package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成（email重複はErrDuplicate）
	Create(ctx context.Context, user model.User) error
	// IDからユーザーを1件取得する。無ければErrNotFound
	FindByID(ctx context.Context, userID string) (model.User, error)
	// メールからユーザーを1件取得する。無ければErrNotFound
	FindByEmail(ctx context.Context, email string) (model.User, error)
}
