package anchor

import (
	go_bank "bankgo"
	"bankgo/anchor/types"
	"bankgo/connection"
	"bankgo/tx"
	"github.com/go-errors/errors"
)

type AnchorProvider struct {
	types.IProvider
	Wallet            go_bank.IWallet
	Opts              go_bank.ConfirmOptions
	ConnectionManager connection.IConnectionManager
	ConnectionId      string
	Program           types.IProgram
	TxSender          tx.ITxSender
	ConfirmTimeoutMs  int64
	Blockhashes       tx.IBlockhashSource
}

func CreateAnchorProvider(
	wallet go_bank.IWallet,
	opts go_bank.ConfirmOptions,
	connectionManager connection.IConnectionManager,
) *AnchorProvider {
	return &AnchorProvider{
		Wallet:            wallet,
		Opts:              opts,
		ConnectionManager: connectionManager,
	}
}

func (p *AnchorProvider) GetWallet() go_bank.IWallet {
	return p.Wallet
}

func (p *AnchorProvider) GetConnection(id ...string) (connection.RpcClient, error) {
	if len(id) == 0 && p.ConnectionId != "" {
		id = []string{p.ConnectionId}
	}
	return p.ConnectionManager.GetRpc(id...)
}

func (p *AnchorProvider) GetOpts() *go_bank.ConfirmOptions {
	return &p.Opts
}

func (p *AnchorProvider) GetProgram() types.IProgram {
	return p.Program
}

func (p *AnchorProvider) SetProgram(program types.IProgram) {
	p.Program = program
}

// GetTxSender returns the configured sender, building a BaseTxSender on the
// provider's connection the first time one is needed.
func (p *AnchorProvider) GetTxSender() (tx.ITxSender, error) {
	if p.TxSender != nil {
		return p.TxSender, nil
	}
	if p.Wallet == nil {
		return nil, errors.Errorf("provider has no wallet")
	}
	rpcClient, err := p.GetConnection()
	if err != nil {
		return nil, err
	}
	txSender := tx.CreateBaseTxSender(rpcClient, p.Wallet, &p.Opts, p.ConfirmTimeoutMs)
	txSender.Blockhashes = p.Blockhashes
	p.TxSender = txSender
	return p.TxSender, nil
}
