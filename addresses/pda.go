package addresses

import (
	"bankgo/lib/bank"
	"github.com/gagliardetto/solana-go"
)

func GetBankAccountPublicKeyAndNonce(
	programId solana.PublicKey,
	owner solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(bank.BANK_ACCOUNT_SEED),
			owner.Bytes(),
		},
		programId,
	)
}

func GetBankAccountPublicKey(
	programId solana.PublicKey,
	owner solana.PublicKey,
) (solana.PublicKey, error) {
	address, _, err := GetBankAccountPublicKeyAndNonce(programId, owner)
	return address, err
}
