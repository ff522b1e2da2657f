package types

import (
	go_bank "bankgo"
	"bankgo/connection"
	"bankgo/tx"
	"github.com/gagliardetto/solana-go"
)

type BankClientConfig struct {
	Connection       connection.IConnectionManager
	ConnectionId     string
	Wallet           go_bank.IWallet
	ProgramId        solana.PublicKey
	Opts             *go_bank.ConfirmOptions
	TxSender         tx.ITxSender
	TxParams         *go_bank.TxParams
	ConfirmTimeoutMs int64
	Blockhashes      tx.IBlockhashSource
}
