package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrCodeUnknown unknown
	ErrCodeUnknown ErrorCode = 100000
	// ErrCodeAccountNotFound no account
	ErrCodeAccountNotFound ErrorCode = 100100
	// ErrCodeNotTokenOwner caller is not the account owner
	ErrCodeNotTokenOwner ErrorCode = 100101
	// ErrCodeNotWhitelisted denom not tradable
	ErrCodeNotWhitelisted ErrorCode = 100102
	// ErrCodeNoAmount zero amount
	ErrCodeNoAmount ErrorCode = 100103
	// ErrCodeSlippageExceeded slippage above ceiling
	ErrCodeSlippageExceeded ErrorCode = 100104
	// ErrCodeOverflow checked arithmetic failed
	ErrCodeOverflow ErrorCode = 100105
	// ErrCodeSwapRejected swapper refused the order
	ErrCodeSwapRejected ErrorCode = 100106
	// ErrCodeFundsMismatch attached funds do not match deposits
	ErrCodeFundsMismatch ErrorCode = 100107
)

// ErrNoAmount the resolved action amount is zero
var ErrNoAmount = errors.New("no amount")

// ErrAccountNotFound unknown account id
var ErrAccountNotFound = errors.New("account not found")

// NotTokenOwnerError the caller does not own the account
type NotTokenOwnerError struct {
	User      string `json:"user"`
	AccountID string `json:"account_id"`
}

func (e *NotTokenOwnerError) Error() string {
	return fmt.Sprintf("%s is not the owner of account %s", e.User, e.AccountID)
}

// NotWhitelistedError the denom is not an allowed swap target
type NotWhitelistedError struct {
	Denom string `json:"denom"`
}

func (e *NotWhitelistedError) Error() string {
	return fmt.Sprintf("%s is not whitelisted", e.Denom)
}

// SlippageExceededError requested slippage is above the effective ceiling
type SlippageExceededError struct {
	Slippage    decimal.Decimal `json:"slippage"`
	MaxSlippage decimal.Decimal `json:"max_slippage"`
}

func (e *SlippageExceededError) Error() string {
	return fmt.Sprintf("slippage %s exceeds max %s", e.Slippage, e.MaxSlippage)
}

// OverflowError checked arithmetic failure. Operand1 is the current value,
// Operand2 the operand that could not be applied.
type OverflowError struct {
	Operation string `json:"operation"`
	Operand1  string `json:"operand1"`
	Operand2  string `json:"operand2"`
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("cannot %s %s from %s", e.Operation, e.Operand2, e.Operand1)
}

// NewSubOverflowError overflow error for a checked subtraction
func NewSubOverflowError(current, sub decimal.Decimal) *OverflowError {
	return &OverflowError{
		Operation: "sub",
		Operand1:  current.String(),
		Operand2:  sub.String(),
	}
}

// SwapRejectedError the swapper could not honor min_out
type SwapRejectedError struct {
	MinOut decimal.Decimal `json:"min_out"`
	Reason string          `json:"reason"`
}

func (e *SwapRejectedError) Error() string {
	return fmt.Sprintf("swap rejected with min_out %s: %s", e.MinOut, e.Reason)
}

// FundsMismatchError attached funds do not cover the deposits in the batch
type FundsMismatchError struct {
	Expected string `json:"expected"`
	Received string `json:"received"`
}

func (e *FundsMismatchError) Error() string {
	return fmt.Sprintf("deposits require %s but %s attached", e.Expected, e.Received)
}

// ActionError wraps the failure of a single action with its position in the
// batch. The batch as a whole aborts with this error.
type ActionError struct {
	Index int        `json:"index"`
	Type  ActionType `json:"type"`
	Err   error      `json:"-"`
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// CodeOf maps an error to its stable ErrorCode.
func CodeOf(err error) ErrorCode {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return CodeOf(actionErr.Err)
	}

	switch {
	case errors.Is(err, ErrNoAmount):
		return ErrCodeNoAmount
	case errors.Is(err, ErrAccountNotFound):
		return ErrCodeAccountNotFound
	}

	var (
		notOwner       *NotTokenOwnerError
		notWhitelisted *NotWhitelistedError
		slippage       *SlippageExceededError
		overflow       *OverflowError
		swapRejected   *SwapRejectedError
		fundsMismatch  *FundsMismatchError
	)

	switch {
	case errors.As(err, &notOwner):
		return ErrCodeNotTokenOwner
	case errors.As(err, &notWhitelisted):
		return ErrCodeNotWhitelisted
	case errors.As(err, &slippage):
		return ErrCodeSlippageExceeded
	case errors.As(err, &overflow):
		return ErrCodeOverflow
	case errors.As(err, &swapRejected):
		return ErrCodeSwapRejected
	case errors.As(err, &fundsMismatch):
		return ErrCodeFundsMismatch
	}

	return ErrCodeUnknown
}

func (e ErrorCode) String() string {
	return fmt.Sprintf("%d", int(e))
}
