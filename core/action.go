package core

import (
	"github.com/shopspring/decimal"
)

// ActionType action type
type ActionType int

const (
	// ActionTypeDeposit deposit attached funds into the account
	ActionTypeDeposit ActionType = iota + 1
	// ActionTypeWithdraw withdraw collateral to the owner
	ActionTypeWithdraw
	// ActionTypeBorrow borrow against the account
	ActionTypeBorrow
	// ActionTypeRepay repay outstanding debt
	ActionTypeRepay
	// ActionTypeSwapExactIn swap collateral into another denom
	ActionTypeSwapExactIn
)

func (t ActionType) String() string {
	switch t {
	case ActionTypeDeposit:
		return "deposit"
	case ActionTypeWithdraw:
		return "withdraw"
	case ActionTypeBorrow:
		return "borrow"
	case ActionTypeRepay:
		return "repay"
	case ActionTypeSwapExactIn:
		return "swap_exact_in"
	default:
		return "unknown"
	}
}

// Coin a concrete amount of one denom
type Coin struct {
	Denom  string          `json:"denom" msgpack:"d"`
	Amount decimal.Decimal `json:"amount" msgpack:"a"`
}

// ActionAmount either an exact amount or the full-balance sentinel. The
// sentinel is resolved lazily against the ledger entry at the moment the
// action executes, so it observes mutations made by earlier actions in the
// same batch.
type ActionAmount struct {
	Exact decimal.Decimal `json:"exact,omitempty" msgpack:"e,omitempty"`
	Full  bool            `json:"full,omitempty" msgpack:"f,omitempty"`
}

// Exact action amount for a fixed value
func Exact(amount decimal.Decimal) ActionAmount {
	return ActionAmount{Exact: amount}
}

// FullBalance the full-balance sentinel
func FullBalance() ActionAmount {
	return ActionAmount{Full: true}
}

// Resolve returns the effective amount given the current balance.
func (a ActionAmount) Resolve(balance decimal.Decimal) decimal.Decimal {
	if a.Full {
		return balance
	}

	return a.Exact
}

// ActionCoin a denom with a lazily resolved amount
type ActionCoin struct {
	Denom  string       `json:"denom" msgpack:"d"`
	Amount ActionAmount `json:"amount" msgpack:"a"`
}

// DepositAction moves attached funds into the account ledger.
type DepositAction struct {
	Coin Coin `json:"coin" msgpack:"c"`
}

// WithdrawAction debits collateral and queues a payout transfer.
type WithdrawAction struct {
	Coin ActionCoin `json:"coin" msgpack:"c"`
}

// BorrowAction credits borrowed funds and records the debt.
type BorrowAction struct {
	Coin Coin `json:"coin" msgpack:"c"`
}

// RepayAction pays down debt out of collateral.
type RepayAction struct {
	Coin ActionCoin `json:"coin" msgpack:"c"`
}

// SwapExactInAction swaps coin_in for denom_out under a slippage bound.
type SwapExactInAction struct {
	CoinIn   ActionCoin      `json:"coin_in" msgpack:"ci"`
	DenomOut string          `json:"denom_out" msgpack:"do"`
	Slippage decimal.Decimal `json:"slippage" msgpack:"s"`
}

// Action one ledger-affecting operation. Exactly one variant field is set,
// matching Type; the set of variants is closed and the executor matches it
// exhaustively.
type Action struct {
	Type        ActionType         `json:"type" msgpack:"t"`
	Deposit     *DepositAction     `json:"deposit,omitempty" msgpack:"dp,omitempty"`
	Withdraw    *WithdrawAction    `json:"withdraw,omitempty" msgpack:"wd,omitempty"`
	Borrow      *BorrowAction      `json:"borrow,omitempty" msgpack:"br,omitempty"`
	Repay       *RepayAction       `json:"repay,omitempty" msgpack:"rp,omitempty"`
	SwapExactIn *SwapExactInAction `json:"swap_exact_in,omitempty" msgpack:"sw,omitempty"`
}
