package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity is the authenticated user of one request.
type Identity struct {
	UserID   uint
	Username string
	IsStaff  bool
}

type identityCtxKey struct{}

const identityKey = "identity"

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.UserID != 0
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok && id.UserID != 0
}
