package contextkeys

// Custom key type to avoid collisions with other packages storing
// values in the same context.
type contextKey string

// UserIDContextKey is the key under which the authenticated user's ID
// is stored in the gin context by the auth middleware.
const UserIDContextKey = contextKey("user_id")
