package bank

import (
	"github.com/gagliardetto/solana-go"
)

// DEPOSIT_AMOUNT is 0.1 SOL.
var DEPOSIT_AMOUNT = solana.LAMPORTS_PER_SOL / 10

// KEEP_RENT is left in the bank PDA by a full withdrawal so the account stays
// rent exempt.
const KEEP_RENT int64 = 35690880

const BANK_NAME_PREFIX = "WSOS Bank "

func BankName(owner solana.PublicKey) string {
	return BANK_NAME_PREFIX + owner.String()[:6]
}

// WithdrawAmount is balance minus KEEP_RENT. It is negative when balance is
// below the reserve; the program rejects that.
func WithdrawAmount(balance uint64) int64 {
	return int64(balance) - KEEP_RENT
}
