package config

import (
	"testing"

	banklib "bankgo/lib/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsUseIdlProgramId(t *testing.T) {
	programId, err := banklib.LoadIdl().ProgramId()
	require.NoError(t, err)
	assert.Equal(t, "PLHJBNu8vWk5tSnw7DTr5vc6BNEx4rxwXskDNi1HCXV", BANK_PROGRAM_ID)
	for env, preset := range BankConfigs {
		assert.Equal(t, env, preset.ENV)
		assert.Equal(t, programId.String(), preset.BANK_PROGRAM_ID, string(env))
		assert.NotEmpty(t, preset.RPC_ENDPOINT, string(env))
	}
}
