package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidMultiplier    ErrorCode = 104
	ErrCodeInvalidCapital       ErrorCode = 105
	ErrCodeInvalidGranularity   ErrorCode = 106
	ErrCodeInvalidMarketProfile ErrorCode = 107
	ErrCodeInvalidSignalMode    ErrorCode = 108
	ErrCodeInvalidBarSequence   ErrorCode = 109
	ErrCodeInvalidBar           ErrorCode = 110

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 400
	ErrCodeUnsupportedStrategy ErrorCode = 401
	ErrCodeStrategyExists      ErrorCode = 402

	// Backtest errors (600-699)
	ErrCodeBacktestInitFailed      ErrorCode = 600
	ErrCodeBacktestConfigError     ErrorCode = 601
	ErrCodeBacktestStateTransition ErrorCode = 602
	ErrCodeBacktestNoStrategies    ErrorCode = 603
	ErrCodeBacktestNoDatasource    ErrorCode = 604
	ErrCodeBacktestWriteFailed     ErrorCode = 605
	ErrCodeBacktestCancelled       ErrorCode = 606
	ErrCodeIncompatibleResults     ErrorCode = 607
)

// IsValidation reports whether the code belongs to the validation range.
func (c ErrorCode) IsValidation() bool {
	return c >= 100 && c < 200
}
