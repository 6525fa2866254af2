package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that a holding lot with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCashBalanceNotFound indicates that no cash balance row exists for the requested scope.
	ErrCashBalanceNotFound = errors.New("cash balance not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sell cannot be completed because
	// the lot does not hold enough shares.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Authorization errors are checked before any other validation on mutating
// operations.
var (
	// ErrUnauthenticated indicates that no valid session accompanies the request.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates that the session's role may not perform the operation.
	ErrForbidden = errors.New("operation not permitted for this role")

	// ErrInvalidPassword indicates that a login attempt supplied a wrong password.
	ErrInvalidPassword = errors.New("invalid password")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveHoldings     = errors.New("failed to retrieve holdings")
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveCashBalance  = errors.New("failed to retrieve cash balance")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve snapshots")
	ErrFailedToComputeValuation     = errors.New("failed to compute valuation")
	ErrFailedToComputeAssetTrend    = errors.New("failed to compute asset trend")
	ErrFailedToComputeDailyPnL      = errors.New("failed to compute daily profit/loss")
	ErrFailedToExecuteSell          = errors.New("failed to execute sell")
)
