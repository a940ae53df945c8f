package contextkeys

type ContextKey string

const (
	// DBContextKey carries the *gorm.DB handle (pool or test transaction)
	// that DBMiddleware injects into every request.
	DBContextKey ContextKey = "launchboard_db"
)
