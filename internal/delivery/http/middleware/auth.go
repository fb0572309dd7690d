package middleware

import (
	"net/http"

	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/dto/payment"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	UserIDHeader    = "X-User-ID"
	UserEmailHeader = "X-User-Email"

	userKey = "payment.user"
)

// RequireUser trusts the identity headers set by the upstream auth gateway
// and rejects requests without one.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, payment.Response{
				Ret: payment.RetFailure,
				Msg: "Unauthorized",
			})
			return
		}
		c.Set(userKey, domain.User{ID: userID, Email: c.GetHeader(UserEmailHeader)})
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(userKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}
