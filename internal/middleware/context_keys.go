package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// ActingUserMiddleware resolves the acting user from the X-Acting-User header.
// The engine runs behind a desktop shell that manages its own sessions, so the
// shell supplies the operator identity per request; absent a header the
// configured default operator is used for audit attribution.
func ActingUserMiddleware(defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader("X-Acting-User")
		if user == "" {
			user = defaultUser
		}
		c.Set(string(userIDKey), user)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
