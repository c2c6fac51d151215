package postgres

// Postgres error codes we map onto domain errors.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// Error message prefixes for wrapped storage failures.
const (
	ErrMsgFailedToBeginTx = "failed to begin transaction"
)
