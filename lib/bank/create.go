package bank

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
)

// Create initializes the bank PDA of the signing user.
type Create struct {
	Name *string

	// [0] = [WRITE] bank
	// [1] = [WRITE, SIGNER] user
	// [2] = [] systemProgram
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

func NewCreateInstructionBuilder() *Create {
	nd := &Create{
		AccountMetaSlice: make(solana.AccountMetaSlice, 3),
	}
	nd.SetSystemProgramAccount(solana.SystemProgramID)
	return nd
}

func (inst *Create) SetName(name string) *Create {
	inst.Name = &name
	return inst
}

func (inst *Create) SetBankAccount(bank solana.PublicKey) *Create {
	inst.AccountMetaSlice[0] = solana.Meta(bank).WRITE()
	return inst
}

func (inst *Create) GetBankAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(0)
}

func (inst *Create) SetUserAccount(user solana.PublicKey) *Create {
	inst.AccountMetaSlice[1] = solana.Meta(user).WRITE().SIGNER()
	return inst
}

func (inst *Create) GetUserAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(1)
}

func (inst *Create) SetSystemProgramAccount(systemProgram solana.PublicKey) *Create {
	inst.AccountMetaSlice[2] = solana.Meta(systemProgram)
	return inst
}

func (inst *Create) GetSystemProgramAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(2)
}

func (inst Create) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst Create) Build() *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: Instruction_Create,
	}}
}

func (inst Create) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *Create) Validate() error {
	if inst.Name == nil {
		return errors.New("Name parameter is not set")
	}
	if err := validateAccounts(inst.AccountMetaSlice, "bank", "user"); err != nil {
		return err
	}
	if inst.AccountMetaSlice[2] == nil {
		return errors.New("accounts.systemProgram is not set")
	}
	return nil
}

func (inst Create) EncodeToTree(parent treeout.Branches) {
	inst.encodeTree(parent, ProgramID)
}

func (inst Create) encodeTree(parent treeout.Branches, programId solana.PublicKey) {
	encodeProgramTree(parent, programId, "Create",
		func(paramsBranch treeout.Branches) {
			paramsBranch.Child(format.Param("Name", *inst.Name))
		},
		func(accountsBranch treeout.Branches) {
			accountsBranch.Child(format.Meta("         bank", inst.AccountMetaSlice.Get(0)))
			accountsBranch.Child(format.Meta("         user", inst.AccountMetaSlice.Get(1)))
			accountsBranch.Child(format.Meta("systemProgram", inst.AccountMetaSlice.Get(2)))
		})
}

func (inst Create) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeRustString(encoder, *inst.Name)
}

func NewCreateInstruction(
	name string,
	bank solana.PublicKey,
	user solana.PublicKey,
) *Create {
	return NewCreateInstructionBuilder().
		SetName(name).
		SetBankAccount(bank).
		SetUserAccount(user)
}
