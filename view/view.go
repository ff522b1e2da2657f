package view

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	go_bank "bankgo"
	"bankgo/bank"
	banktypes "bankgo/bank/types"
	"bankgo/lib/event"
	"bankgo/lib/logger"
	"bankgo/metrics"
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrWalletNotConnected = errors.Errorf("wallet not connected")
	ErrOperationPending   = errors.Errorf("operation already in flight")
	ErrAccountShape       = errors.Errorf("unexpected bank account shape")
)

// View owns the displayed bank list and the session wallet. List, Create,
// Deposit and Withdraw are its only mutation entry points.
type View struct {
	wallet        go_bank.IWallet
	factory       ClientFactory
	log           *logrus.Logger
	eventEmitter  *event.EventEmitter
	metrics       metrics.Recorder
	guardInFlight bool

	banks   []BankRecord
	status  map[Operation]*OperationStatus
	mxState *sync.RWMutex
}

func CreateView(config ViewConfig) *View {
	view := &View{
		wallet:        config.Wallet,
		factory:       config.Factory,
		log:           config.Logger,
		eventEmitter:  config.EventEmitter,
		metrics:       config.Metrics,
		guardInFlight: config.GuardInFlight,
		status:        make(map[Operation]*OperationStatus),
		mxState:       new(sync.RWMutex),
	}
	if view.log == nil {
		view.log = logger.Log
	}
	if view.eventEmitter == nil {
		view.eventEmitter = go_bank.EventEmitter()
	}
	if view.metrics == nil {
		view.metrics = metrics.NoOpCollector{}
	}
	for _, op := range Operations {
		view.status[op] = &OperationStatus{}
	}
	return view
}

func (p *View) GetWallet() go_bank.IWallet {
	p.mxState.RLock()
	defer p.mxState.RUnlock()
	return p.wallet
}

// SetWallet switches the session. The bank list is kept until the next List.
func (p *View) SetWallet(wallet go_bank.IWallet) {
	p.mxState.Lock()
	defer p.mxState.Unlock()
	p.wallet = wallet
}

func (p *View) GetBanks() []BankRecord {
	p.mxState.RLock()
	defer p.mxState.RUnlock()
	return slices.Clone(p.banks)
}

func (p *View) Status(op Operation) OperationStatus {
	p.mxState.RLock()
	defer p.mxState.RUnlock()
	if s, exists := p.status[op]; exists {
		return *s
	}
	return OperationStatus{}
}

func (p *View) FindBank(address solana.PublicKey) (BankRecord, bool) {
	p.mxState.RLock()
	defer p.mxState.RUnlock()
	idx := slices.IndexFunc(p.banks, func(record BankRecord) bool {
		return record.Address.Equals(address)
	})
	if idx < 0 {
		return BankRecord{}, false
	}
	return p.banks[idx], true
}

// List fetches every bank account and replaces the displayed list. On
// failure the previous list stays.
func (p *View) List(ctx context.Context) error {
	_, err := p.run(ctx, OP_LIST, logrus.Fields{}, func(client banktypes.IBankClient) (solana.Signature, error) {
		accounts, err := client.GetBanks(ctx)
		if err != nil {
			return solana.Signature{}, err
		}
		records, err := toRecords(accounts)
		if err != nil {
			return solana.Signature{}, err
		}
		p.mxState.Lock()
		p.banks = records
		p.mxState.Unlock()
		p.eventEmitter.Emit(EVENT_BANKS_UPDATED, slices.Clone(records))
		return solana.Signature{}, nil
	})
	return err
}

// Create opens the wallet's bank, named after the wallet address.
func (p *View) Create(ctx context.Context) (solana.Signature, error) {
	wallet := p.GetWallet()
	if wallet == nil {
		return p.reject(OP_CREATE, ErrWalletNotConnected)
	}
	name := bank.BankName(wallet.GetPublicKey())
	return p.mutate(ctx, OP_CREATE, logrus.Fields{"name": name}, func(client banktypes.IBankClient) (solana.Signature, error) {
		return client.Create(ctx, name)
	})
}

func (p *View) Deposit(ctx context.Context, address solana.PublicKey) (solana.Signature, error) {
	return p.mutate(ctx, OP_DEPOSIT, logrus.Fields{"bank": address.String()}, func(client banktypes.IBankClient) (solana.Signature, error) {
		return client.Deposit(ctx, address, bank.DEPOSIT_AMOUNT)
	})
}

// Withdraw requests balance minus the rent reserve. A balance below the
// reserve yields a negative amount which is sent as is.
func (p *View) Withdraw(ctx context.Context, address solana.PublicKey, balance uint64) (solana.Signature, error) {
	amount := bank.WithdrawAmount(balance)
	fields := logrus.Fields{"bank": address.String(), "amount": amount}
	return p.mutate(ctx, OP_WITHDRAW, fields, func(client banktypes.IBankClient) (solana.Signature, error) {
		return client.Withdraw(ctx, address, amount)
	})
}

// mutate runs op and, when it confirmed, refreshes the list. A failed
// refresh is reported through the list status only.
func (p *View) mutate(
	ctx context.Context,
	op Operation,
	fields logrus.Fields,
	call func(client banktypes.IBankClient) (solana.Signature, error),
) (solana.Signature, error) {
	txSig, err := p.run(ctx, op, fields, call)
	if err != nil {
		return txSig, err
	}
	_ = p.List(ctx)
	return txSig, nil
}

func (p *View) run(
	ctx context.Context,
	op Operation,
	fields logrus.Fields,
	call func(client banktypes.IBankClient) (solana.Signature, error),
) (solana.Signature, error) {
	wallet := p.GetWallet()
	if wallet == nil {
		return p.reject(op, ErrWalletNotConnected)
	}
	if err := p.begin(op); err != nil {
		return p.reject(op, err)
	}
	started := time.Now()
	log := p.log.WithFields(fields).WithField("operation", string(op))

	txSig, err := func() (solana.Signature, error) {
		client, err := p.factory(wallet)
		if err != nil {
			return solana.Signature{}, errors.WrapPrefix(err, "build bank client", 0)
		}
		return call(client)
	}()
	p.finish(op, err)

	if err != nil {
		logger.WithError(log, err).Error("bank operation failed")
		p.metrics.RecordOperation(string(op), time.Since(started), metrics.OUTCOME_ERROR)
		return txSig, err
	}
	if !txSig.IsZero() {
		log = log.WithField("signature", txSig.String())
	}
	log.Debug("bank operation done")
	p.metrics.RecordOperation(string(op), time.Since(started), metrics.OUTCOME_SUCCESS)
	return txSig, nil
}

func (p *View) reject(op Operation, err error) (solana.Signature, error) {
	p.log.WithField("operation", string(op)).WithError(err).Warn("bank operation rejected")
	p.metrics.RecordRejected(string(op))
	return solana.Signature{}, err
}

func (p *View) begin(op Operation) error {
	p.mxState.Lock()
	status := p.status[op]
	if p.guardInFlight && status.InFlight > 0 {
		p.mxState.Unlock()
		return fmt.Errorf("%w: %s", ErrOperationPending, op)
	}
	status.InFlight++
	status.Status = STATUS_PENDING
	snapshot := *status
	p.mxState.Unlock()
	p.eventEmitter.Emit(EVENT_STATUS_CHANGED, op, snapshot)
	return nil
}

func (p *View) finish(op Operation, err error) {
	p.mxState.Lock()
	status := p.status[op]
	status.InFlight--
	status.LastError = err
	switch {
	case status.InFlight > 0:
		status.Status = STATUS_PENDING
	case err != nil:
		status.Status = STATUS_FAILED
	default:
		status.Status = STATUS_IDLE
	}
	snapshot := *status
	p.mxState.Unlock()
	p.eventEmitter.Emit(EVENT_STATUS_CHANGED, op, snapshot)
}

// toRecords maps fetched accounts into records. Any account that does not
// look like a bank fails the whole batch.
func toRecords(accounts []banktypes.KeyedBank) ([]BankRecord, error) {
	records := make([]BankRecord, 0, len(accounts))
	for i, account := range accounts {
		if account.PublicKey.IsZero() {
			return nil, fmt.Errorf("%w: account %d has no address", ErrAccountShape, i)
		}
		if account.Account == nil {
			return nil, fmt.Errorf("%w: account %s has no data", ErrAccountShape, account.PublicKey)
		}
		if account.Account.Owner.IsZero() {
			return nil, fmt.Errorf("%w: account %s has no owner", ErrAccountShape, account.PublicKey)
		}
		records = append(records, BankRecord{
			Address: account.PublicKey,
			Owner:   account.Account.Owner,
			Name:    account.Account.Name,
			Balance: account.Account.Balance,
		})
	}
	return records, nil
}
