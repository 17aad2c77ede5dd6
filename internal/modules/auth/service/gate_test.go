package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
)

type stubVerifier struct {
	calls int
	ids   map[string]*identity.Identity
	err   error
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if id, ok := s.ids[token]; ok {
		return id, nil
	}
	return nil, identity.ErrInvalidToken
}

func newTestGate() (*Gate, *stubVerifier) {
	v := &stubVerifier{ids: map[string]*identity.Identity{
		"admin":    {ID: "1", Email: "Admin@Example.com"},
		"stranger": {ID: "2", Email: "someone@example.com"},
		"noemail":  {ID: "3"},
	}}
	return NewGate(v, []string{" admin@example.com ", ""}), v
}

// 测试内容：验证缺少头、格式错误、令牌无效、不在白名单四种情况分别返回 401/401/401/403。
func TestGate_Authorize_Outcomes(t *testing.T) {
	gate, v := newTestGate()
	ctx := context.Background()

	cases := []struct {
		name   string
		header string
		code   platformservice.ErrorCode
	}{
		{"missing", "", platformservice.ErrorCodeUnauthorized},
		{"malformed", "Token admin", platformservice.ErrorCodeUnauthorized},
		{"lowercase scheme", "bearer admin", platformservice.ErrorCodeUnauthorized},
		{"empty token", "Bearer   ", platformservice.ErrorCodeUnauthorized},
		{"invalid", "Bearer nope", platformservice.ErrorCodeUnauthorized},
		{"not allowlisted", "Bearer stranger", platformservice.ErrorCodeForbidden},
		{"no email", "Bearer noemail", platformservice.ErrorCodeForbidden},
	}
	for _, tc := range cases {
		_, err := gate.Authorize(ctx, tc.header)
		if !platformservice.IsCode(err, tc.code) {
			t.Fatalf("%s: 期望 %s，实际为 %v", tc.name, tc.code, err)
		}
	}
	// 前四种在校验器之前就被拒绝
	if v.calls != 3 {
		t.Fatalf("期望校验器被调用 3 次，实际为 %d", v.calls)
	}
}

// 测试内容：验证白名单比较不区分大小写，令牌两端空白会被去除。
func TestGate_Authorize_Allowed(t *testing.T) {
	gate, _ := newTestGate()
	id, err := gate.Authorize(context.Background(), "Bearer  admin ")
	if err != nil {
		t.Fatalf("期望授权成功，实际为 %v", err)
	}
	if id.ID != "1" {
		t.Fatalf("身份错误: %+v", id)
	}
}

// 测试内容：验证 Authenticate 不检查白名单。
func TestGate_Authenticate_SkipsAllowlist(t *testing.T) {
	gate, _ := newTestGate()
	if _, err := gate.Authenticate(context.Background(), "Bearer stranger"); err != nil {
		t.Fatalf("期望仅校验身份即可通过，实际为 %v", err)
	}
}

// 测试内容：验证身份服务故障按 401 处理，未配置校验器按配置错误处理。
func TestGate_VerifierFailures(t *testing.T) {
	gate := NewGate(&stubVerifier{err: errors.New("dial tcp: refused")}, []string{"a@example.com"})
	if _, err := gate.Authorize(context.Background(), "Bearer x"); !platformservice.IsCode(err, platformservice.ErrorCodeUnauthorized) {
		t.Fatalf("期望 401，实际为 %v", err)
	}

	unconfigured := NewGate(nil, nil)
	if _, err := unconfigured.Authorize(context.Background(), "Bearer x"); !platformservice.IsCode(err, platformservice.ErrorCodeConfig) {
		t.Fatalf("期望配置错误，实际为 %v", err)
	}
}
