package config

import banklib "bankgo/lib/bank"

type BankEnv string

const (
	BankEnvNone        BankEnv = ""
	BankEnvLocalnet    BankEnv = "localnet"
	BankEnvDevnet      BankEnv = "devnet"
	BankEnvMainnetBeta BankEnv = "mainnet-beta"
)

type BankConfig struct {
	ENV             BankEnv
	BANK_PROGRAM_ID string
	RPC_ENDPOINT    string
}

// BANK_PROGRAM_ID is the embedded IDL address, shared by every preset.
var BANK_PROGRAM_ID = banklib.ProgramID.String()

var BankConfigs = map[BankEnv]BankConfig{
	BankEnvLocalnet: {
		ENV:             "localnet",
		BANK_PROGRAM_ID: BANK_PROGRAM_ID,
		RPC_ENDPOINT:    "http://127.0.0.1:8899",
	},
	BankEnvDevnet: {
		ENV:             "devnet",
		BANK_PROGRAM_ID: BANK_PROGRAM_ID,
		RPC_ENDPOINT:    "https://api.devnet.solana.com",
	},
	BankEnvMainnetBeta: {
		ENV:             "mainnet-beta",
		BANK_PROGRAM_ID: BANK_PROGRAM_ID,
		RPC_ENDPOINT:    "https://api.mainnet-beta.solana.com",
	},
}
