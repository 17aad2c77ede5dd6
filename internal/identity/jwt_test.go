package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 测试内容：验证签发的令牌可以被解析出 subject 与 email。
func TestJWTVerifier_RoundTrip(t *testing.T) {
	v, err := NewJWTVerifier("secret")
	if err != nil {
		t.Fatalf("NewJWTVerifier: %v", err)
	}
	token, err := SignAccessToken("secret", "user-1", "Admin@Example.com", time.Hour)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}
	id, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.ID != "user-1" || id.Email != "Admin@Example.com" {
		t.Fatalf("身份解析错误: %+v", id)
	}
	if id.NormalizedEmail() != "admin@example.com" {
		t.Fatalf("期望规范化邮箱，实际为 %q", id.NormalizedEmail())
	}
}

// 测试内容：验证过期、密钥错误、缺少 exp 与非 HMAC 令牌均被拒绝。
func TestJWTVerifier_Rejects(t *testing.T) {
	v, _ := NewJWTVerifier("secret")
	ctx := context.Background()

	expired, _ := SignAccessToken("secret", "u", "a@example.com", -time.Second)
	wrongKey, _ := SignAccessToken("other", "u", "a@example.com", time.Hour)
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"}).SignedString([]byte("secret"))
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not-a-jwt",
		"expired":   expired,
		"wrong key": wrongKey,
		"no exp":    noExp,
		"no sub":    noSub,
		"alg none":  unsigned,
	}
	for name, token := range cases {
		if _, err := v.Verify(ctx, token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: 期望 ErrInvalidToken，实际为 %v", name, err)
		}
	}
}

// 测试内容：验证缺少密钥时无法构造校验器。
func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewJWTVerifier(""); err == nil {
		t.Fatalf("期望缺少密钥时报错")
	}
}
