package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidToken 令牌无效、过期或身份提供方拒绝
var ErrInvalidToken = errors.New("invalid access token")

// Identity 令牌解析出的调用者身份
type Identity struct {
	ID    string
	Email string
}

// NormalizedEmail 用于白名单比较
func (i *Identity) NormalizedEmail() string {
	if i == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(i.Email))
}

// Verifier 把 Bearer 令牌解析为身份
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
