package middleware

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/auth/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AdminAuth 校验 Bearer 令牌；requireAllowlist 为 false 时只要求身份有效
func AdminAuth(gate *service.Gate, requireAllowlist bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		var (
			id  *identity.Identity
			err error
		)
		if requireAllowlist {
			id, err = gate.Authorize(c.Request.Context(), header)
		} else {
			id, err = gate.Authenticate(c.Request.Context(), header)
		}
		if err != nil {
			httpx.AbortWithServiceError(c, err, "Unauthorized")
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// CurrentIdentity 取出 AdminAuth 写入的身份
func CurrentIdentity(c *gin.Context) (*identity.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	id, ok := value.(*identity.Identity)
	return id, ok && id != nil
}
