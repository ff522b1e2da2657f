package go_bank

import (
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
)

type IWallet interface {
	GetPublicKey() solana.PublicKey
	SignTransaction(tx *solana.Transaction) (*solana.Transaction, error)
	SignAllTransactions(txs []*solana.Transaction) ([]*solana.Transaction, error)
}

type Wallet struct {
	IWallet
	PrivateKey solana.PrivateKey
}

func CreateWallet(privateKey solana.PrivateKey) *Wallet {
	return &Wallet{PrivateKey: privateKey}
}

// LoadWallet reads a solana-keygen JSON keypair file.
func LoadWallet(path string) (*Wallet, error) {
	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.WrapPrefix(err, "load keypair "+path, 0)
	}
	return CreateWallet(privateKey), nil
}

func (p *Wallet) GetPublicKey() solana.PublicKey {
	return p.PrivateKey.PublicKey()
}

func (p *Wallet) GetPrivateKey() solana.PrivateKey {
	return p.PrivateKey
}

func (p *Wallet) signer(key solana.PublicKey) *solana.PrivateKey {
	if p.PrivateKey.PublicKey().Equals(key) {
		return &p.PrivateKey
	}
	return nil
}

func (p *Wallet) SignTransaction(tx *solana.Transaction) (*solana.Transaction, error) {
	if _, err := tx.PartialSign(p.signer); err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return tx, nil
}

func (p *Wallet) SignAllTransactions(txs []*solana.Transaction) ([]*solana.Transaction, error) {
	for _, tx := range txs {
		if _, err := p.SignTransaction(tx); err != nil {
			return nil, err
		}
	}
	return txs, nil
}
