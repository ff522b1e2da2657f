package bank

import (
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
)

// Deposit moves lamports from the user into the bank PDA.
type Deposit struct {
	Amount *uint64

	// [0] = [WRITE] bank
	// [1] = [WRITE, SIGNER] user
	// [2] = [] systemProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewDepositInstructionBuilder() *Deposit {
	nd := &Deposit{
		AccountMetaSlice: make(solana.AccountMetaSlice, 3),
	}
	nd.SetSystemProgramAccount(solana.SystemProgramID)
	return nd
}

func (inst *Deposit) SetAmount(amount uint64) *Deposit {
	inst.Amount = &amount
	return inst
}

func (inst *Deposit) SetBankAccount(bank solana.PublicKey) *Deposit {
	inst.AccountMetaSlice[0] = solana.Meta(bank).WRITE()
	return inst
}

func (inst *Deposit) GetBankAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(0)
}

func (inst *Deposit) SetUserAccount(user solana.PublicKey) *Deposit {
	inst.AccountMetaSlice[1] = solana.Meta(user).WRITE().SIGNER()
	return inst
}

func (inst *Deposit) GetUserAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(1)
}

func (inst *Deposit) SetSystemProgramAccount(systemProgram solana.PublicKey) *Deposit {
	inst.AccountMetaSlice[2] = solana.Meta(systemProgram)
	return inst
}

func (inst Deposit) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst Deposit) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_Deposit,
	}}
}

func (inst Deposit) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *Deposit) Validate() error {
	if inst.Amount == nil {
		return errors.New("Amount parameter is not set")
	}
	if err := validateAccounts(inst.AccountMetaSlice, "bank", "user"); err != nil {
		return err
	}
	if inst.AccountMetaSlice[2] == nil {
		return errors.New("accounts.systemProgram is not set")
	}
	return nil
}

func (inst Deposit) EncodeToTree(parent treeout.Branches) {
	inst.encodeTree(parent, ProgramID)
}

func (inst Deposit) encodeTree(parent treeout.Branches, programId solana.PublicKey) {
	encodeProgramTree(parent, programId, "Deposit",
		func(paramsBranch treeout.Branches) {
			paramsBranch.Child(format.Param("Amount", *inst.Amount))
		},
		func(accountsBranch treeout.Branches) {
			accountsBranch.Child(format.Meta("         bank", inst.AccountMetaSlice.Get(0)))
			accountsBranch.Child(format.Meta("         user", inst.AccountMetaSlice.Get(1)))
			accountsBranch.Child(format.Meta("systemProgram", inst.AccountMetaSlice.Get(2)))
		})
}

func (inst Deposit) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint64(*inst.Amount, binary.LittleEndian)
}

func NewDepositInstruction(
	amount uint64,
	bank solana.PublicKey,
	user solana.PublicKey,
) *Deposit {
	return NewDepositInstructionBuilder().
		SetAmount(amount).
		SetBankAccount(bank).
		SetUserAccount(user)
}
