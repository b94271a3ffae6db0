package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"credit/core"
	"credit/internal/slippage"
	"credit/pkg/id"
	"credit/pkg/number"
	"credit/store/quote"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	uuidutil "github.com/fox-one/pkg/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const maxSlippageProperty = "max_slippage"

// Config executor config
type Config struct {
	MaxSlippage decimal.Decimal `json:"max_slippage" valid:"required"`
}

type executorService struct {
	db         *db.DB
	accounts   core.AccountStore
	positions  core.PositionStore
	assets     core.AssetStore
	batches    core.BatchStore
	transfers  core.TransferStore
	properties property.Store
	quotes     quote.QuoteStore
	swapper    core.Swapper
	cfg        Config

	mux   sync.Mutex
	locks map[string]*sync.Mutex
}

// New new executor service
func New(
	db *db.DB,
	accounts core.AccountStore,
	positions core.PositionStore,
	assets core.AssetStore,
	batches core.BatchStore,
	transfers core.TransferStore,
	properties property.Store,
	quotes quote.QuoteStore,
	swapper core.Swapper,
	cfg Config,
) core.Executor {
	return &executorService{
		db:         db,
		accounts:   accounts,
		positions:  positions,
		assets:     assets,
		batches:    batches,
		transfers:  transfers,
		properties: properties,
		quotes:     quotes,
		swapper:    swapper,
		cfg:        cfg,
		locks:      make(map[string]*sync.Mutex),
	}
}

// workingSet accumulates the batch's effect. Nothing here touches storage
// until commit.
type workingSet struct {
	traceID     string
	collaterals core.Ledger
	debts       core.Ledger
	transfers   []*core.Transfer
}

func (s *executorService) Execute(ctx context.Context, req *core.BatchRequest) (*core.BatchResult, error) {
	log := logger.FromContext(ctx).
		WithField("service", "executor").
		WithField("account", req.AccountID)

	unlock := s.lockAccount(req.AccountID)
	defer unlock()

	account, err := s.accounts.Find(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	if account.Owner != req.User {
		return nil, &core.NotTokenOwnerError{
			User:      req.User,
			AccountID: req.AccountID,
		}
	}

	if err := validateFunds(req); err != nil {
		return nil, err
	}

	rows, err := s.positions.FindByAccount(ctx, req.AccountID)
	if err != nil {
		log.WithError(err).Errorln("positions.FindByAccount")
		return nil, err
	}

	collaterals, debts := core.LedgersOf(rows)
	set := &workingSet{
		traceID:     id.GenTraceID(),
		collaterals: collaterals,
		debts:       debts,
	}

	for idx, action := range req.Actions {
		if err := s.applyAction(ctx, set, account, idx, action); err != nil {
			log.WithError(err).WithField("index", idx).Infoln("batch aborted")
			return nil, &core.ActionError{Index: idx, Type: action.Type, Err: err}
		}
	}

	if err := s.commit(ctx, req, set, rows); err != nil {
		log.WithError(err).Errorln("commit batch")
		return nil, err
	}

	log.WithField("trace", set.traceID).Infoln("batch committed")

	return &core.BatchResult{
		TraceID:     set.traceID,
		Collaterals: set.collaterals.Compact(),
		Debts:       set.debts.Compact(),
	}, nil
}

func (s *executorService) applyAction(ctx context.Context, set *workingSet, account *core.Account, idx int, action core.Action) error {
	switch action.Type {
	case core.ActionTypeDeposit:
		if action.Deposit == nil {
			return fmt.Errorf("malformed %s action", action.Type)
		}
		return s.applyDeposit(set, action.Deposit)
	case core.ActionTypeWithdraw:
		if action.Withdraw == nil {
			return fmt.Errorf("malformed %s action", action.Type)
		}
		return s.applyWithdraw(set, account, idx, action.Withdraw)
	case core.ActionTypeBorrow:
		if action.Borrow == nil {
			return fmt.Errorf("malformed %s action", action.Type)
		}
		return s.applyBorrow(ctx, set, action.Borrow)
	case core.ActionTypeRepay:
		if action.Repay == nil {
			return fmt.Errorf("malformed %s action", action.Type)
		}
		return s.applyRepay(set, action.Repay)
	case core.ActionTypeSwapExactIn:
		if action.SwapExactIn == nil {
			return fmt.Errorf("malformed %s action", action.Type)
		}
		return s.applySwap(ctx, set, action.SwapExactIn)
	default:
		return fmt.Errorf("unknown action type %d", action.Type)
	}
}

func (s *executorService) applyDeposit(set *workingSet, deposit *core.DepositAction) error {
	if !deposit.Coin.Amount.IsPositive() {
		return core.ErrNoAmount
	}

	set.collaterals.Credit(deposit.Coin.Denom, deposit.Coin.Amount)
	return nil
}

func (s *executorService) applyWithdraw(set *workingSet, account *core.Account, idx int, withdraw *core.WithdrawAction) error {
	denom := withdraw.Coin.Denom
	amount := withdraw.Coin.Amount.Resolve(set.collaterals.Get(denom))
	if !amount.IsPositive() {
		return core.ErrNoAmount
	}

	if err := set.collaterals.Debit(denom, amount); err != nil {
		return err
	}

	set.transfers = append(set.transfers, &core.Transfer{
		TraceID:   uuidutil.Modify(set.traceID, fmt.Sprintf("withdraw:%d", idx)),
		AccountID: account.AccountID,
		Opponent:  account.Owner,
		Denom:     denom,
		Amount:    amount,
		Memo:      fmt.Sprintf("withdraw %s", denom),
		Status:    core.TransferStatusPending,
	})

	return nil
}

func (s *executorService) applyBorrow(ctx context.Context, set *workingSet, borrow *core.BorrowAction) error {
	if !borrow.Coin.Amount.IsPositive() {
		return core.ErrNoAmount
	}

	if err := s.requireWhitelisted(ctx, borrow.Coin.Denom); err != nil {
		return err
	}

	set.collaterals.Credit(borrow.Coin.Denom, borrow.Coin.Amount)
	set.debts.Credit(borrow.Coin.Denom, borrow.Coin.Amount)
	return nil
}

func (s *executorService) applyRepay(set *workingSet, repay *core.RepayAction) error {
	denom := repay.Coin.Denom
	amount := repay.Coin.Amount.Resolve(set.debts.Get(denom))
	if !amount.IsPositive() {
		return core.ErrNoAmount
	}

	if err := set.collaterals.Debit(denom, amount); err != nil {
		return err
	}

	return set.debts.Debit(denom, amount)
}

// applySwap walks the swap through validation, the checked debit of the
// input, the external execution and the credit of the output. The debit and
// credit commit or roll back with the rest of the batch.
func (s *executorService) applySwap(ctx context.Context, set *workingSet, swap *core.SwapExactInAction) error {
	if err := s.requireWhitelisted(ctx, swap.DenomOut); err != nil {
		return err
	}

	amount := swap.CoinIn.Amount.Resolve(set.collaterals.Get(swap.CoinIn.Denom))
	if !amount.IsPositive() {
		return core.ErrNoAmount
	}

	maxSlippage := s.maxSlippage(ctx)
	if swap.Slippage.GreaterThan(maxSlippage) {
		return &core.SlippageExceededError{
			Slippage:    swap.Slippage,
			MaxSlippage: maxSlippage,
		}
	}

	if err := set.collaterals.Debit(swap.CoinIn.Denom, amount); err != nil {
		return err
	}

	coinIn := core.Coin{Denom: swap.CoinIn.Denom, Amount: amount}
	estimate, err := s.swapper.Estimate(ctx, coinIn, swap.DenomOut)
	if err != nil {
		return err
	}

	minOut := slippage.MinOut(estimate, swap.Slippage)
	amountOut, err := s.swapper.Execute(ctx, coinIn, swap.DenomOut, minOut)
	if err != nil {
		return err
	}

	set.collaterals.Credit(swap.DenomOut, amountOut)
	return nil
}

func (s *executorService) Estimate(ctx context.Context, coinIn core.Coin, denomOut string) (decimal.Decimal, error) {
	if err := s.requireWhitelisted(ctx, denomOut); err != nil {
		return decimal.Zero, err
	}

	if !coinIn.Amount.IsPositive() {
		return decimal.Zero, core.ErrNoAmount
	}

	if s.quotes != nil {
		if cached, ok, err := s.quotes.FindEstimate(ctx, coinIn, denomOut); err == nil && ok {
			return cached, nil
		}
	}

	estimate, err := s.swapper.Estimate(ctx, coinIn, denomOut)
	if err != nil {
		return decimal.Zero, err
	}

	if s.quotes != nil {
		if err := s.quotes.SaveEstimate(ctx, coinIn, denomOut, estimate); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("quotes.SaveEstimate")
		}
	}

	return estimate, nil
}

func (s *executorService) requireWhitelisted(ctx context.Context, denom string) error {
	asset, notFound, err := s.assets.Find(ctx, denom)
	if err != nil {
		return err
	}

	if notFound || !asset.Whitelisted {
		return &core.NotWhitelistedError{Denom: denom}
	}

	return nil
}

// maxSlippage reads the protocol ceiling from the property store, falling
// back to the configured default.
func (s *executorService) maxSlippage(ctx context.Context) decimal.Decimal {
	if s.properties != nil {
		if v, err := s.properties.Get(ctx, maxSlippageProperty); err == nil {
			if d := number.Decimal(v.String()); d.IsPositive() {
				return d
			}
		}
	}

	return s.cfg.MaxSlippage
}

func (s *executorService) commit(ctx context.Context, req *core.BatchRequest, set *workingSet, rows []*core.Position) error {
	batch := &core.Batch{
		TraceID:   set.traceID,
		AccountID: req.AccountID,
		User:      req.User,
		Denoms:    touchedDenoms(set),
	}

	if err := batch.SetActions(req.Actions); err != nil {
		return err
	}

	summary := structs.Map(batchSummary{
		Collaterals: ledgerStrings(set.collaterals.Compact()),
		Debts:       ledgerStrings(set.debts.Compact()),
		Transfers:   len(set.transfers),
	})
	if bs, err := json.Marshal(summary); err == nil {
		batch.Extra = bs
	}

	return s.withTx(func(tx *db.DB) error {
		if err := s.savePositions(ctx, tx, req.AccountID, core.PositionSideCollateral, set.collaterals, rows); err != nil {
			return err
		}

		if err := s.savePositions(ctx, tx, req.AccountID, core.PositionSideDebt, set.debts, rows); err != nil {
			return err
		}

		if err := s.batches.Create(ctx, tx, batch); err != nil {
			return err
		}

		if len(set.transfers) > 0 {
			if err := s.transfers.Create(ctx, tx, set.transfers); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *executorService) withTx(f func(tx *db.DB) error) error {
	if s.db == nil {
		return f(nil)
	}

	return s.db.Tx(f)
}

func (s *executorService) savePositions(ctx context.Context, tx *db.DB, accountID, side string, ledger core.Ledger, rows []*core.Position) error {
	existing := make(map[string]*core.Position, len(rows))
	for _, row := range rows {
		if row.Side == side {
			existing[row.Denom] = row
		}
	}

	for denom, amount := range ledger {
		if row, ok := existing[denom]; ok {
			if row.Amount.Equal(amount) {
				continue
			}

			row.Amount = amount
			if err := s.positions.Save(ctx, tx, row); err != nil {
				return err
			}
			continue
		}

		if !amount.IsPositive() {
			continue
		}

		row := &core.Position{
			AccountID: accountID,
			Side:      side,
			Denom:     denom,
			Amount:    amount,
		}
		if err := s.positions.Save(ctx, tx, row); err != nil {
			return err
		}
	}

	return nil
}

func (s *executorService) lockAccount(accountID string) func() {
	s.mux.Lock()
	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	s.mux.Unlock()

	l.Lock()
	return l.Unlock
}

type batchSummary struct {
	Collaterals map[string]string `structs:"collaterals"`
	Debts       map[string]string `structs:"debts"`
	Transfers   int               `structs:"transfers"`
}

func touchedDenoms(set *workingSet) pq.StringArray {
	seen := map[string]bool{}
	for denom := range set.collaterals {
		seen[denom] = true
	}
	for denom := range set.debts {
		seen[denom] = true
	}

	denoms := make(pq.StringArray, 0, len(seen))
	for denom := range seen {
		denoms = append(denoms, denom)
	}
	sort.Strings(denoms)

	return denoms
}

func ledgerStrings(l core.Ledger) map[string]string {
	m := make(map[string]string, len(l))
	for denom, amount := range l {
		m[denom] = amount.String()
	}

	return m
}

func validateFunds(req *core.BatchRequest) error {
	expected := core.NewLedger()
	for _, action := range req.Actions {
		if action.Type == core.ActionTypeDeposit && action.Deposit != nil {
			expected.Credit(action.Deposit.Coin.Denom, action.Deposit.Coin.Amount)
		}
	}

	received := core.NewLedger()
	for _, coin := range req.Funds {
		received.Credit(coin.Denom, coin.Amount)
	}

	expected, received = expected.Compact(), received.Compact()
	if len(expected) != len(received) {
		return &core.FundsMismatchError{
			Expected: ledgerString(expected),
			Received: ledgerString(received),
		}
	}

	for denom, amount := range expected {
		if !received.Get(denom).Equal(amount) {
			return &core.FundsMismatchError{
				Expected: ledgerString(expected),
				Received: ledgerString(received),
			}
		}
	}

	return nil
}

func ledgerString(l core.Ledger) string {
	bs, err := json.Marshal(ledgerStrings(l))
	if err != nil {
		return "{}"
	}

	return string(bs)
}
