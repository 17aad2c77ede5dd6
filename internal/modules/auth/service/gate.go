package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

const bearerPrefix = "Bearer "

// Gate 校验管理接口的 Bearer 令牌，并按邮箱白名单授权
type Gate struct {
	verifier  identity.Verifier
	allowlist map[string]struct{}
}

// NewGate allowlist 中的邮箱在比较前统一转小写
func NewGate(verifier identity.Verifier, allowlist []string) *Gate {
	set := make(map[string]struct{}, len(allowlist))
	for _, email := range allowlist {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			set[email] = struct{}{}
		}
	}
	return &Gate{verifier: verifier, allowlist: set}
}

// BearerToken 从 Authorization 头取出令牌；缺少前缀或令牌为空时 ok=false
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// Authenticate 只校验身份，不检查白名单
func (g *Gate) Authenticate(ctx context.Context, header string) (*identity.Identity, error) {
	if g == nil || g.verifier == nil {
		return nil, platformservice.NewConfigError("Missing Supabase configuration.")
	}
	token, ok := BearerToken(header)
	if !ok {
		return nil, platformservice.NewUnauthorizedError("Unauthorized")
	}

	id, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidToken) {
			// 身份服务不可达也按未认证处理，原因只写日志
			log.Printf("⚠️ 令牌校验失败: %v", err)
		}
		return nil, platformservice.NewUnauthorizedError("Unauthorized")
	}
	if id == nil {
		return nil, platformservice.NewUnauthorizedError("Unauthorized")
	}
	return id, nil
}

// Authorize 校验身份并要求邮箱在白名单内
func (g *Gate) Authorize(ctx context.Context, header string) (*identity.Identity, error) {
	id, err := g.Authenticate(ctx, header)
	if err != nil {
		return nil, err
	}
	if !g.Allowed(id) {
		return nil, platformservice.NewForbiddenError("Forbidden")
	}
	return id, nil
}

// Allowed 判断身份的邮箱是否在白名单内，空邮箱一律拒绝
func (g *Gate) Allowed(id *identity.Identity) bool {
	email := id.NormalizedEmail()
	if email == "" {
		return false
	}
	_, ok := g.allowlist[email]
	return ok
}
