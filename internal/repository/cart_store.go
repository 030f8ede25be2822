package repository

import (
	"context"

	"shop/internal/domain/model"
)

// セッションIDに紐づくカートの保存先。
// チェックアウト前のカートはここだけに存在し、DBには書かない。
// TTL（セッション寿命）はストア側で管理する。
type CartStore interface {
	//無ければ ErrNotFound
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, sessionID string, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
