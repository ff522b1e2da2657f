package bank

import (
	"bytes"
	"fmt"

	go_bank "bankgo"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
)

var (
	Instruction_Create   = bin.TypeID(go_bank.GetInstructionDiscriminator("create"))
	Instruction_Deposit  = bin.TypeID(go_bank.GetInstructionDiscriminator("deposit"))
	Instruction_Withdraw = bin.TypeID(go_bank.GetInstructionDiscriminator("withdraw"))
)

func InstructionIDToName(id bin.TypeID) string {
	switch id {
	case Instruction_Create:
		return "Create"
	case Instruction_Deposit:
		return "Deposit"
	case Instruction_Withdraw:
		return "Withdraw"
	default:
		return ""
	}
}

type accountsGettable interface {
	GetAccounts() []*solana.AccountMeta
}

type programTreeEncodable interface {
	encodeTree(parent treeout.Branches, programId solana.PublicKey)
}

type Instruction struct {
	bin.BaseVariant
	programId solana.PublicKey
}

var _ solana.Instruction = (*Instruction)(nil)

// WithProgramID targets a deployment other than the IDL address.
func (inst *Instruction) WithProgramID(programId solana.PublicKey) *Instruction {
	inst.programId = programId
	return inst
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	if inst.programId.IsZero() {
		return ProgramID
	}
	return inst.programId
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.Impl.(accountsGettable).GetAccounts()
}

func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := inst.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) EncodeToTree(parent treeout.Branches) {
	if encodable, ok := inst.Impl.(programTreeEncodable); ok {
		encodable.encodeTree(parent, inst.ProgramID())
	}
}

func (inst Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(inst.TypeID.Bytes(), false); err != nil {
		return fmt.Errorf("unable to write variant type: %w", err)
	}
	marshaler, ok := inst.Impl.(bin.BinaryMarshaler)
	if !ok {
		return fmt.Errorf("instruction %T is not encodable", inst.Impl)
	}
	return marshaler.MarshalWithEncoder(encoder)
}

// String renders the instruction as a tree.
func (inst *Instruction) String() string {
	tree := treeout.New(InstructionIDToName(inst.TypeID))
	inst.EncodeToTree(tree)
	return tree.String()
}

func validateAccounts(accounts solana.AccountMetaSlice, names ...string) error {
	for idx, name := range names {
		if idx >= len(accounts) || accounts[idx] == nil {
			return fmt.Errorf("accounts.%s is not set", name)
		}
		if accounts[idx].PublicKey.IsZero() {
			return fmt.Errorf("accounts.%s is zero", name)
		}
	}
	return nil
}

func encodeProgramTree(parent treeout.Branches, programId solana.PublicKey, name string, params func(treeout.Branches), accounts func(treeout.Branches)) {
	parent.Child(format.Program(ProgramName, programId)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction(name)).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(params)
					instructionBranch.Child("Accounts").ParentFunc(accounts)
				})
		})
}
