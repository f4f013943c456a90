package constants

type contextKey string

const (
	AppKey         contextKey = "app"
	PoolKey        contextKey = "pool"
	TxKey          contextKey = "tx"
	LoggerKey      contextKey = "logger"
	RequestIDKey   contextKey = "requestID"
	WorkspaceIDKey contextKey = "workspaceID"
)
