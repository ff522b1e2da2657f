package bank

import (
	"github.com/gagliardetto/solana-go"
)

const ProgramName = "Solanapdas"

const BANK_ACCOUNT_SEED = "bankaccount"

// ProgramID is the IDL address. Instructions built for another deployment
// carry their own id, see Instruction.WithProgramID.
var ProgramID solana.PublicKey

func init() {
	programId, err := LoadIdl().ProgramId()
	if err != nil {
		panic(err)
	}
	ProgramID = programId
}
