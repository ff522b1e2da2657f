package bank

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	go_bank "bankgo"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
)

var BankDiscriminator = go_bank.GetAccountDiscriminator("Bank")

var ErrDiscriminatorMismatch = errors.Errorf("account discriminator mismatch")

type Bank struct {
	Name    string
	Balance uint64
	Owner   solana.PublicKey
}

func (obj Bank) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteBytes(BankDiscriminator[:], false); err != nil {
		return err
	}
	if err = writeRustString(encoder, obj.Name); err != nil {
		return err
	}
	if err = encoder.WriteUint64(obj.Balance, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteBytes(obj.Owner[:], false)
}

func (obj *Bank) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	discriminator, err := decoder.ReadNBytes(go_bank.DISCRIMINATOR_SIZE)
	if err != nil {
		return errors.WrapPrefix(err, "read discriminator", 0)
	}
	if [go_bank.DISCRIMINATOR_SIZE]byte(discriminator) != BankDiscriminator {
		return fmt.Errorf("%w: wanted %v, got %v", ErrDiscriminatorMismatch, BankDiscriminator[:], discriminator)
	}
	nameLength, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return errors.WrapPrefix(err, "read name length", 0)
	}
	name, err := decoder.ReadNBytes(int(nameLength))
	if err != nil {
		return errors.WrapPrefix(err, "read name", 0)
	}
	if !utf8.Valid(name) {
		return errors.Errorf("bank name is not valid utf-8")
	}
	obj.Name = string(name)
	if obj.Balance, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return errors.WrapPrefix(err, "read balance", 0)
	}
	owner, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return errors.WrapPrefix(err, "read owner", 0)
	}
	obj.Owner = solana.PublicKeyFromBytes(owner)
	return nil
}

// DecodeBank decodes raw account data, failing on any layout mismatch.
func DecodeBank(data []byte) (*Bank, error) {
	account := new(Bank)
	if err := account.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return account, nil
}

func writeRustString(encoder *bin.Encoder, value string) error {
	if err := encoder.WriteUint32(uint32(len(value)), binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteBytes([]byte(value), false)
}
