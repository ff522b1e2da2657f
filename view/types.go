package view

import (
	go_bank "bankgo"
	banktypes "bankgo/bank/types"
	"bankgo/lib/event"
	"bankgo/metrics"
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

type Operation string

const (
	OP_LIST     Operation = "list"
	OP_CREATE   Operation = "create"
	OP_DEPOSIT  Operation = "deposit"
	OP_WITHDRAW Operation = "withdraw"
)

var Operations = []Operation{OP_LIST, OP_CREATE, OP_DEPOSIT, OP_WITHDRAW}

const (
	EVENT_BANKS_UPDATED  = "banksUpdated"
	EVENT_STATUS_CHANGED = "statusChanged"
)

type Status int

const (
	STATUS_IDLE Status = iota
	STATUS_PENDING
	STATUS_FAILED
)

func (s Status) String() string {
	switch s {
	case STATUS_PENDING:
		return "pending"
	case STATUS_FAILED:
		return "failed"
	default:
		return "idle"
	}
}

// OperationStatus is Pending while any call of the operation is in flight,
// otherwise Failed or Idle depending on how the latest call settled.
type OperationStatus struct {
	Status    Status
	InFlight  int
	LastError error
}

type BankRecord struct {
	Address solana.PublicKey
	Owner   solana.PublicKey
	Name    string
	Balance uint64
}

// ClientFactory returns a fresh program client bound to wallet.
type ClientFactory func(wallet go_bank.IWallet) (banktypes.IBankClient, error)

type ViewConfig struct {
	Wallet        go_bank.IWallet
	Factory       ClientFactory
	Logger        *logrus.Logger
	EventEmitter  *event.EventEmitter
	Metrics       metrics.Recorder
	GuardInFlight bool
}
