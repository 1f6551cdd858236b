package constants

type ContextKey string

const (
	TxKey      ContextKey = "tx"
	PoolKey    ContextKey = "pool"
	CompanyKey ContextKey = "company"
	LoggerKey  ContextKey = "logger"
)

// DateFormat is the layout used for plain calendar dates on the wire.
const DateFormat = "2006-01-02"
