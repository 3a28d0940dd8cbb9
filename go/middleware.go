package sokoserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	orderdomain "github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	userdomain "github.com/sokoyetu/soko-api/internal/domains/users/domain"
	userports "github.com/sokoyetu/soko-api/internal/domains/users/ports"
	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
)

const contextUserKey = "soko.user"

// RequireSession resolves the bearer token into an account and aborts
// with 401 when it cannot.
func RequireSession(users userports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		user, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired session"))
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser returns the authenticated account set by RequireSession.
func currentUser(c *gin.Context) (*userdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*userdomain.User)
	return user, ok
}

// currentActor maps the authenticated account to the order-side actor.
// Farmers act as the selling party, every other role buys.
func currentActor(c *gin.Context) (ordertypes.Actor, bool) {
	user, ok := currentUser(c)
	if !ok {
		return ordertypes.Actor{}, false
	}
	role := orderdomain.ActorCustomer
	if user.IsSeller() {
		role = orderdomain.ActorFarmer
	}
	return ordertypes.Actor{UserID: user.ID, Role: role}, true
}
