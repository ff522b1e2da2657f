package config

import (
	"bankgo/bank/config"
)

var CurrentConfig = config.BankConfigs[config.BankEnvDevnet]

func GetConfig() *config.BankConfig {
	return &CurrentConfig
}

func Initialize(env config.BankEnv, overrideConfig *config.BankConfig) *config.BankConfig {
	CurrentConfig = config.BankConfigs[env]
	if overrideConfig != nil {
		if overrideConfig.BANK_PROGRAM_ID != "" {
			CurrentConfig.BANK_PROGRAM_ID = overrideConfig.BANK_PROGRAM_ID
		}
		if overrideConfig.RPC_ENDPOINT != "" {
			CurrentConfig.RPC_ENDPOINT = overrideConfig.RPC_ENDPOINT
		}
	}
	return &CurrentConfig
}
