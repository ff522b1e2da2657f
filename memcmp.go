package go_bank

import (
	"crypto/sha256"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/iancoleman/strcase"
)

const DISCRIMINATOR_SIZE = 8

// GetAccountDiscriminator returns the anchor account discriminator for accountName.
func GetAccountDiscriminator(accountName string) [DISCRIMINATOR_SIZE]byte {
	hash := sha256.Sum256([]byte(fmt.Sprintf("account:%s", strcase.ToCamel(accountName))))
	var discriminator [DISCRIMINATOR_SIZE]byte
	copy(discriminator[:], hash[:DISCRIMINATOR_SIZE])
	return discriminator
}

// GetInstructionDiscriminator returns the anchor sighash for a global instruction.
func GetInstructionDiscriminator(instructionName string) [DISCRIMINATOR_SIZE]byte {
	hash := sha256.Sum256([]byte(fmt.Sprintf("global:%s", strcase.ToSnake(instructionName))))
	var discriminator [DISCRIMINATOR_SIZE]byte
	copy(discriminator[:], hash[:DISCRIMINATOR_SIZE])
	return discriminator
}

func GetAccountFilter(accountName string) rpc.RPCFilter {
	discriminator := GetAccountDiscriminator(accountName)
	return rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  discriminator[:],
		},
	}
}

func GetBankFilter() rpc.RPCFilter {
	return GetAccountFilter("Bank")
}
