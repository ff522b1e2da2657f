package namespace

import (
	"context"
	"fmt"
	"reflect"

	go_bank "bankgo"
	"bankgo/anchor/types"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
)

var ErrAccountNotFound = errors.Errorf("account not found")

type AccountNamespace struct {
	Provider  types.IProvider
	clientMap map[string]*AccountClient
}

func CreateAccountNamespace(provider types.IProvider) *AccountNamespace {
	return &AccountNamespace{
		Provider:  provider,
		clientMap: make(map[string]*AccountClient),
	}
}

func (p *AccountNamespace) Client(t any, accountName string) *AccountClient {
	mapKey := reflect.TypeOf(t).String()
	accountClient, exists := p.clientMap[mapKey]
	if !exists {
		accountClient = &AccountClient{
			provider:    p.Provider,
			accountType: reflect.TypeOf(t),
			accountName: accountName,
		}
		p.clientMap[mapKey] = accountClient
	}
	return accountClient
}

type AccountClient struct {
	provider    types.IProvider
	accountType reflect.Type
	accountName string
}

var _ types.IAccountClient = (*AccountClient)(nil)

// Decode returns a pointer to a new account value decoded from data.
func (p *AccountClient) Decode(data []byte) (interface{}, error) {
	obj := reflect.New(p.accountType).Interface()
	decoder := bin.NewBorshDecoder(data)
	var err error
	if unmarshaler, ok := obj.(bin.BinaryUnmarshaler); ok {
		err = unmarshaler.UnmarshalWithDecoder(decoder)
	} else {
		err = decoder.Decode(obj)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.accountName, err)
	}
	return obj, nil
}

func (p *AccountClient) commitment(commitment rpc.CommitmentType) rpc.CommitmentType {
	if commitment != "" {
		return commitment
	}
	return p.provider.GetOpts().Commitment
}

// FetchNullable returns nil without error when no account exists at address.
func (p *AccountClient) FetchNullable(
	ctx context.Context,
	address solana.PublicKey,
	commitment rpc.CommitmentType,
) (interface{}, error) {
	connection, err := p.provider.GetConnection()
	if err != nil {
		return nil, err
	}
	accountInfo, err := connection.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: p.commitment(commitment),
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapPrefix(err, "get account info "+address.String(), 0)
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, nil
	}
	return p.Decode(accountInfo.Value.Data.GetBinary())
}

func (p *AccountClient) Fetch(
	ctx context.Context,
	address solana.PublicKey,
	commitment rpc.CommitmentType,
) (interface{}, error) {
	data, err := p.FetchNullable(ctx, address, commitment)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrAccountNotFound, p.accountName, address)
	}
	return data, nil
}

// All loads every program account of this type. A single undecodable account
// fails the whole call.
func (p *AccountClient) All(ctx context.Context, filters []rpc.RPCFilter) ([]types.KeyedAccount, error) {
	connection, err := p.provider.GetConnection()
	if err != nil {
		return nil, err
	}
	filters = append(filters, go_bank.GetAccountFilter(p.accountName))
	accountInfos, err := connection.GetProgramAccountsWithOpts(
		ctx,
		p.provider.GetProgram().GetProgramId(),
		&rpc.GetProgramAccountsOpts{
			Filters:    filters,
			Commitment: p.commitment(""),
		},
	)
	if err != nil {
		return nil, errors.WrapPrefix(err, "get program accounts", 0)
	}
	accounts := make([]types.KeyedAccount, 0, len(accountInfos))
	for _, accountInfo := range accountInfos {
		if accountInfo == nil || accountInfo.Account == nil {
			return nil, errors.Errorf("empty %s account in response", p.accountName)
		}
		obj, err := p.Decode(accountInfo.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", accountInfo.Pubkey, err)
		}
		accounts = append(accounts, types.KeyedAccount{
			PublicKey: accountInfo.Pubkey,
			Lamports:  accountInfo.Account.Lamports,
			Account:   obj,
		})
	}
	return accounts, nil
}
