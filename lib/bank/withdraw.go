package bank

import (
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
)

// Withdraw moves lamports from the bank PDA back to its owner.
type Withdraw struct {
	Amount *uint64

	// [0] = [WRITE] bank
	// [1] = [WRITE, SIGNER] user
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewWithdrawInstructionBuilder() *Withdraw {
	return &Withdraw{
		AccountMetaSlice: make(solana.AccountMetaSlice, 2),
	}
}

func (inst *Withdraw) SetAmount(amount uint64) *Withdraw {
	inst.Amount = &amount
	return inst
}

func (inst *Withdraw) SetBankAccount(bank solana.PublicKey) *Withdraw {
	inst.AccountMetaSlice[0] = solana.Meta(bank).WRITE()
	return inst
}

func (inst *Withdraw) GetBankAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(0)
}

func (inst *Withdraw) SetUserAccount(user solana.PublicKey) *Withdraw {
	inst.AccountMetaSlice[1] = solana.Meta(user).WRITE().SIGNER()
	return inst
}

func (inst *Withdraw) GetUserAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(1)
}

func (inst Withdraw) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst Withdraw) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_Withdraw,
	}}
}

func (inst Withdraw) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *Withdraw) Validate() error {
	if inst.Amount == nil {
		return errors.New("Amount parameter is not set")
	}
	return validateAccounts(inst.AccountMetaSlice, "bank", "user")
}

func (inst Withdraw) EncodeToTree(parent treeout.Branches) {
	inst.encodeTree(parent, ProgramID)
}

func (inst Withdraw) encodeTree(parent treeout.Branches, programId solana.PublicKey) {
	encodeProgramTree(parent, programId, "Withdraw",
		func(paramsBranch treeout.Branches) {
			paramsBranch.Child(format.Param("Amount", *inst.Amount))
		},
		func(accountsBranch treeout.Branches) {
			accountsBranch.Child(format.Meta("bank", inst.AccountMetaSlice.Get(0)))
			accountsBranch.Child(format.Meta("user", inst.AccountMetaSlice.Get(1)))
		})
}

func (inst Withdraw) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint64(*inst.Amount, binary.LittleEndian)
}

func NewWithdrawInstruction(
	amount uint64,
	bank solana.PublicKey,
	user solana.PublicKey,
) *Withdraw {
	return NewWithdrawInstructionBuilder().
		SetAmount(amount).
		SetBankAccount(bank).
		SetUserAccount(user)
}
