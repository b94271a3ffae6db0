package executor

import (
	"context"
	"testing"

	"credit/core"
	"credit/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockSwapResult = number.Decimal("98765")

type testAccountStore struct {
	accounts map[string]*core.Account
}

func (s *testAccountStore) Create(ctx context.Context, account *core.Account) error {
	s.accounts[account.AccountID] = account
	return nil
}

func (s *testAccountStore) Find(ctx context.Context, accountID string) (*core.Account, error) {
	if account, ok := s.accounts[accountID]; ok {
		return account, nil
	}

	return nil, core.ErrAccountNotFound
}

func (s *testAccountStore) FindByOwner(ctx context.Context, owner string) ([]*core.Account, error) {
	var accounts []*core.Account
	for _, a := range s.accounts {
		if a.Owner == owner {
			accounts = append(accounts, a)
		}
	}

	return accounts, nil
}

type testPositionStore struct {
	rows   []*core.Position
	nextID uint64
}

func (s *testPositionStore) FindByAccount(ctx context.Context, accountID string) ([]*core.Position, error) {
	var rows []*core.Position
	for _, row := range s.rows {
		if row.AccountID == accountID {
			clone := *row
			rows = append(rows, &clone)
		}
	}

	return rows, nil
}

func (s *testPositionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		s.nextID++
		position.ID = s.nextID
		clone := *position
		s.rows = append(s.rows, &clone)
		return nil
	}

	for idx, row := range s.rows {
		if row.ID == position.ID {
			clone := *position
			s.rows[idx] = &clone
			return nil
		}
	}

	return nil
}

func (s *testPositionStore) ledgers(accountID string) (core.Ledger, core.Ledger) {
	rows, _ := s.FindByAccount(context.Background(), accountID)
	collaterals, debts := core.LedgersOf(rows)
	return collaterals.Compact(), debts.Compact()
}

type testAssetStore struct {
	assets map[string]*core.Asset
}

func (s *testAssetStore) Save(ctx context.Context, asset *core.Asset) error {
	s.assets[asset.Denom] = asset
	return nil
}

func (s *testAssetStore) Find(ctx context.Context, denom string) (*core.Asset, bool, error) {
	if asset, ok := s.assets[denom]; ok {
		return asset, false, nil
	}

	return nil, true, nil
}

func (s *testAssetStore) All(ctx context.Context) ([]*core.Asset, error) {
	var assets []*core.Asset
	for _, a := range s.assets {
		assets = append(assets, a)
	}

	return assets, nil
}

type testBatchStore struct {
	batches []*core.Batch
}

func (s *testBatchStore) Create(ctx context.Context, tx *db.DB, batch *core.Batch) error {
	s.batches = append(s.batches, batch)
	return nil
}

func (s *testBatchStore) FindByTraceID(ctx context.Context, traceID string) (*core.Batch, error) {
	for _, b := range s.batches {
		if b.TraceID == traceID {
			return b, nil
		}
	}

	return nil, core.ErrAccountNotFound
}

func (s *testBatchStore) ListByAccount(ctx context.Context, accountID string, limit int) ([]*core.Batch, error) {
	var batches []*core.Batch
	for _, b := range s.batches {
		if b.AccountID == accountID {
			batches = append(batches, b)
		}
	}

	return batches, nil
}

type testTransferStore struct {
	transfers []*core.Transfer
}

func (s *testTransferStore) Create(ctx context.Context, tx *db.DB, transfers []*core.Transfer) error {
	s.transfers = append(s.transfers, transfers...)
	return nil
}

func (s *testTransferStore) ListPending(ctx context.Context, limit int) ([]*core.Transfer, error) {
	return s.transfers, nil
}

func (s *testTransferStore) Handled(ctx context.Context, traceID string) error {
	return nil
}

type mockSwapper struct {
	result     decimal.Decimal
	executed   int
	lastMinOut decimal.Decimal
}

func (m *mockSwapper) Estimate(ctx context.Context, coinIn core.Coin, denomOut string) (decimal.Decimal, error) {
	return m.result, nil
}

func (m *mockSwapper) Execute(ctx context.Context, coinIn core.Coin, denomOut string, minOut decimal.Decimal) (decimal.Decimal, error) {
	m.executed++
	m.lastMinOut = minOut

	if m.result.LessThan(minOut) {
		return decimal.Zero, &core.SwapRejectedError{
			MinOut: minOut,
			Reason: "insufficient output",
		}
	}

	return m.result, nil
}

type env struct {
	executor  core.Executor
	accounts  *testAccountStore
	positions *testPositionStore
	assets    *testAssetStore
	batches   *testBatchStore
	transfers *testTransferStore
	swapper   *mockSwapper
}

func newEnv(maxSlippage string) *env {
	e := &env{
		accounts:  &testAccountStore{accounts: map[string]*core.Account{}},
		positions: &testPositionStore{},
		assets:    &testAssetStore{assets: map[string]*core.Asset{}},
		batches:   &testBatchStore{},
		transfers: &testTransferStore{},
		swapper:   &mockSwapper{result: mockSwapResult},
	}

	e.executor = New(
		nil,
		e.accounts,
		e.positions,
		e.assets,
		e.batches,
		e.transfers,
		nil,
		nil,
		e.swapper,
		Config{MaxSlippage: number.Decimal(maxSlippage)},
	)

	return e
}

func (e *env) createAccount(accountID, owner string) {
	e.accounts.accounts[accountID] = &core.Account{AccountID: accountID, Owner: owner}
}

func (e *env) whitelist(denoms ...string) {
	for _, denom := range denoms {
		e.assets.assets[denom] = &core.Asset{Denom: denom, Whitelisted: true}
	}
}

func swapAction(denomIn string, amount core.ActionAmount, denomOut, slippage string) core.Action {
	return core.Action{
		Type: core.ActionTypeSwapExactIn,
		SwapExactIn: &core.SwapExactInAction{
			CoinIn:   core.ActionCoin{Denom: denomIn, Amount: amount},
			DenomOut: denomOut,
			Slippage: number.Decimal(slippage),
		},
	}
}

func depositAction(denom, amount string) core.Action {
	return core.Action{
		Type: core.ActionTypeDeposit,
		Deposit: &core.DepositAction{
			Coin: core.Coin{Denom: denom, Amount: number.Decimal(amount)},
		},
	}
}

func TestOnlyTokenOwnerCanExecute(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "another_user",
		Actions: []core.Action{
			swapAction("uusdc", core.Exact(number.Decimal("12")), "uosmo", "0.6"),
		},
	})

	var notOwner *core.NotTokenOwnerError
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, "another_user", notOwner.User)
	assert.Equal(t, "acc-1", notOwner.AccountID)

	collaterals, debts := e.positions.ledgers("acc-1")
	assert.Empty(t, collaterals)
	assert.Empty(t, debts)
}

func TestSwapDenomOutMustBeWhitelisted(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			swapAction("uatom", core.Exact(number.Decimal("10000")), "ujake", "0.6"),
		},
	})

	var notWhitelisted *core.NotWhitelistedError
	require.ErrorAs(t, err, &notWhitelisted)
	assert.Equal(t, "ujake", notWhitelisted.Denom)
}

func TestSwapNoAmount(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	// explicit zero
	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			swapAction("uosmo", core.Exact(decimal.Zero), "uatom", "0.6"),
		},
	})
	require.ErrorIs(t, err, core.ErrNoAmount)

	// full balance of an empty entry
	_, err = e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			swapAction("uosmo", core.FullBalance(), "uatom", "0.6"),
		},
	})
	require.ErrorIs(t, err, core.ErrNoAmount)
}

func TestSwapInsufficientBalance(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			swapAction("uosmo", core.Exact(number.Decimal("10000")), "uatom", "0.6"),
		},
	})

	var overflow *core.OverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "sub", overflow.Operation)
	assert.Equal(t, "0", overflow.Operand1)
	assert.Equal(t, "10000", overflow.Operand2)
}

func TestSwapInsufficientBalanceAfterDeposit(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uosmo", "100"),
			swapAction("uosmo", core.Exact(number.Decimal("10000")), "uatom", "0.6"),
		},
		Funds: []core.Coin{{Denom: "uosmo", Amount: number.Decimal("100")}},
	})

	var overflow *core.OverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "100", overflow.Operand1)
	assert.Equal(t, "10000", overflow.Operand2)

	// the deposit from the aborted batch must not be visible
	collaterals, _ := e.positions.ledgers("acc-1")
	assert.Empty(t, collaterals)
	assert.Empty(t, e.batches.batches)
}

func TestSlippageTooHigh(t *testing.T) {
	e := newEnv("0.5")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			swapAction("uosmo", core.Exact(number.Decimal("10000")), "uatom", "0.500001"),
		},
	})

	var exceeded *core.SlippageExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "0.500001", exceeded.Slippage.String())
	assert.Equal(t, "0.5", exceeded.MaxSlippage.String())
	assert.Zero(t, e.swapper.executed)
}

func TestSlippageAtCeilingDispatches(t *testing.T) {
	e := newEnv("0.5")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "10000"),
			swapAction("uatom", core.Exact(number.Decimal("10000")), "uosmo", "0.5"),
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("10000")}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, e.swapper.executed)
}

func TestSwapWithExactAmount(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	result, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "10000"),
			swapAction("uatom", core.Exact(number.Decimal("10000")), "uosmo", "0.6"),
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("10000")}},
	})
	require.NoError(t, err)

	assert.True(t, result.Collaterals.Get("uatom").IsZero())
	assert.True(t, result.Collaterals.Get("uosmo").Equal(mockSwapResult))

	collaterals, debts := e.positions.ledgers("acc-1")
	assert.True(t, collaterals.Get("uatom").IsZero())
	assert.True(t, collaterals.Get("uosmo").Equal(mockSwapResult))
	assert.Empty(t, debts)
	require.Len(t, e.batches.batches, 1)

	actions, err := e.batches.batches[0].UnmarshalActions()
	require.NoError(t, err)
	assert.Len(t, actions, 2)
}

func TestSwapWithFullBalance(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	// the full-balance sentinel must observe the deposit made earlier in
	// the same batch
	result, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "10000"),
			swapAction("uatom", core.FullBalance(), "uosmo", "0.6"),
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("10000")}},
	})
	require.NoError(t, err)

	assert.True(t, result.Collaterals.Get("uatom").IsZero())
	assert.True(t, result.Collaterals.Get("uosmo").Equal(mockSwapResult))

	collaterals, _ := e.positions.ledgers("acc-1")
	assert.True(t, collaterals.Get("uatom").IsZero())
	assert.True(t, collaterals.Get("uosmo").Equal(mockSwapResult))
}

func TestSwapMinOutFromEstimate(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "10000"),
			swapAction("uatom", core.FullBalance(), "uosmo", "0.6"),
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("10000")}},
	})
	require.NoError(t, err)

	want := mockSwapResult.Mul(number.Decimal("0.4"))
	assert.True(t, e.swapper.lastMinOut.Equal(want), "min_out %s, want %s", e.swapper.lastMinOut, want)
}

func TestSwapRejectedAbortsBatch(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	// the venue promises 100 on estimate but can only fill 30
	exec := New(
		nil,
		e.accounts,
		e.positions,
		e.assets,
		e.batches,
		e.transfers,
		nil,
		nil,
		&flakySwapper{estimate: number.Decimal("100"), result: number.Decimal("30")},
		Config{MaxSlippage: number.Decimal("0.6")},
	)

	_, err := exec.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "10000"),
			swapAction("uatom", core.FullBalance(), "uosmo", "0"),
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("10000")}},
	})

	var rejected *core.SwapRejectedError
	require.ErrorAs(t, err, &rejected)

	collaterals, _ := e.positions.ledgers("acc-1")
	assert.Empty(t, collaterals)
	assert.Empty(t, e.batches.batches)
}

func TestFundsMismatch(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "10000"),
		},
	})

	var mismatch *core.FundsMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestWithdraw(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "300"),
			{
				Type: core.ActionTypeWithdraw,
				Withdraw: &core.WithdrawAction{
					Coin: core.ActionCoin{Denom: "uatom", Amount: core.Exact(number.Decimal("120"))},
				},
			},
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("300")}},
	})
	require.NoError(t, err)

	collaterals, _ := e.positions.ledgers("acc-1")
	assert.True(t, collaterals.Get("uatom").Equal(number.Decimal("180")))

	require.Len(t, e.transfers.transfers, 1)
	transfer := e.transfers.transfers[0]
	assert.Equal(t, "user", transfer.Opponent)
	assert.Equal(t, "uatom", transfer.Denom)
	assert.True(t, transfer.Amount.Equal(number.Decimal("120")))
	assert.Equal(t, core.TransferStatusPending, transfer.Status)
}

func TestBorrowAndRepay(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uosmo")

	borrow := core.Action{
		Type: core.ActionTypeBorrow,
		Borrow: &core.BorrowAction{
			Coin: core.Coin{Denom: "uosmo", Amount: number.Decimal("500")},
		},
	}

	result, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions:   []core.Action{borrow},
	})
	require.NoError(t, err)
	assert.True(t, result.Collaterals.Get("uosmo").Equal(number.Decimal("500")))
	assert.True(t, result.Debts.Get("uosmo").Equal(number.Decimal("500")))

	repay := core.Action{
		Type: core.ActionTypeRepay,
		Repay: &core.RepayAction{
			Coin: core.ActionCoin{Denom: "uosmo", Amount: core.FullBalance()},
		},
	}

	result, err = e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions:   []core.Action{repay},
	})
	require.NoError(t, err)
	assert.True(t, result.Collaterals.Get("uosmo").IsZero())
	assert.True(t, result.Debts.Get("uosmo").IsZero())
}

func TestBorrowNotWhitelisted(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			{
				Type: core.ActionTypeBorrow,
				Borrow: &core.BorrowAction{
					Coin: core.Coin{Denom: "ujake", Amount: number.Decimal("5")},
				},
			},
		},
	})

	var notWhitelisted *core.NotWhitelistedError
	require.ErrorAs(t, err, &notWhitelisted)
}

func TestActionErrorCarriesIndex(t *testing.T) {
	e := newEnv("0.6")
	e.createAccount("acc-1", "user")
	e.whitelist("uatom", "uosmo")

	_, err := e.executor.Execute(context.Background(), &core.BatchRequest{
		AccountID: "acc-1",
		User:      "user",
		Actions: []core.Action{
			depositAction("uatom", "100"),
			swapAction("uatom", core.Exact(number.Decimal("10000")), "uosmo", "0.6"),
		},
		Funds: []core.Coin{{Denom: "uatom", Amount: number.Decimal("100")}},
	})

	var actionErr *core.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, 1, actionErr.Index)
	assert.Equal(t, core.ActionTypeSwapExactIn, actionErr.Type)
}

func TestEstimate(t *testing.T) {
	e := newEnv("0.6")
	e.whitelist("uosmo")

	estimate, err := e.executor.Estimate(context.Background(), core.Coin{
		Denom:  "uatom",
		Amount: number.Decimal("10000"),
	}, "uosmo")
	require.NoError(t, err)
	assert.True(t, estimate.Equal(mockSwapResult))

	// executing right after with no ledger change returns the same value
	out, err := e.swapper.Execute(context.Background(), core.Coin{
		Denom:  "uatom",
		Amount: number.Decimal("10000"),
	}, "uosmo", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, out.Equal(estimate))
}

type flakySwapper struct {
	estimate decimal.Decimal
	result   decimal.Decimal
}

func (m *flakySwapper) Estimate(ctx context.Context, coinIn core.Coin, denomOut string) (decimal.Decimal, error) {
	return m.estimate, nil
}

func (m *flakySwapper) Execute(ctx context.Context, coinIn core.Coin, denomOut string, minOut decimal.Decimal) (decimal.Decimal, error) {
	if m.result.LessThan(minOut) {
		return decimal.Zero, &core.SwapRejectedError{
			MinOut: minOut,
			Reason: "insufficient output",
		}
	}

	return m.result, nil
}
