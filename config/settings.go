package config

import (
	"os"
	"path/filepath"
	"strings"

	go_bank "bankgo"
	bankconfig "bankgo/bank/config"
	"bankgo/connection"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "BANK"

type Settings struct {
	Env string `mapstructure:"env" validate:"oneof=localnet devnet mainnet-beta"`
	Rpc struct {
		Endpoint    string `mapstructure:"endpoint" validate:"required,url"`
		Token       string `mapstructure:"token"`
		MaxReferrer int    `mapstructure:"max_referrer" validate:"gte=0"`
	} `mapstructure:"rpc"`
	Keypair          string `mapstructure:"keypair" validate:"required"`
	ProgramId        string `mapstructure:"program_id" validate:"required,pubkey"`
	Commitment       string `mapstructure:"commitment" validate:"oneof=processed confirmed finalized"`
	ConfirmTimeoutMs int64  `mapstructure:"confirm_timeout_ms" validate:"gte=0"`
	ComputeUnits     uint64 `mapstructure:"compute_units" validate:"lte=1400000"`
	ComputeUnitPrice uint64 `mapstructure:"compute_unit_price"`
	GuardInFlight    bool   `mapstructure:"guard_in_flight"`
	BlockhashPollMs  int64  `mapstructure:"blockhash_poll_ms" validate:"gte=0"`
	PriorityFee      struct {
		Method              string  `mapstructure:"method" validate:"oneof=none solana helius"`
		HeliusUrl           string  `mapstructure:"helius_url" validate:"required_if=Method helius"`
		HeliusLevel         string  `mapstructure:"helius_level" validate:"omitempty,oneof=min low medium high veryHigh unsafeMax"`
		FrequencyMs         int64   `mapstructure:"frequency_ms" validate:"gte=0"`
		MaxFeeMicroLamports uint64  `mapstructure:"max_micro_lamports"`
		Multiplier          float64 `mapstructure:"multiplier" validate:"gte=0"`
	} `mapstructure:"priority_fee"`
	Log struct {
		Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
		Format string `mapstructure:"format" validate:"oneof=text json"`
	} `mapstructure:"log"`
	Metrics struct {
		Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	} `mapstructure:"metrics"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pubkey", func(fl validator.FieldLevel) bool {
		_, err := solana.PublicKeyFromBase58(fl.Field().String())
		return err == nil
	})
	return v
}

func setDefaults(v *viper.Viper) {
	keypair := "id.json"
	if home, err := os.UserHomeDir(); err == nil {
		keypair = filepath.Join(home, ".config", "solana", "id.json")
	}
	v.SetDefault("env", string(bankconfig.BankEnvDevnet))
	v.SetDefault("rpc.endpoint", "")
	v.SetDefault("rpc.token", "")
	v.SetDefault("rpc.max_referrer", 1)
	v.SetDefault("keypair", keypair)
	v.SetDefault("program_id", "")
	v.SetDefault("commitment", string(rpc.CommitmentConfirmed))
	v.SetDefault("confirm_timeout_ms", 35000)
	v.SetDefault("compute_units", 0)
	v.SetDefault("compute_unit_price", 0)
	v.SetDefault("guard_in_flight", false)
	v.SetDefault("blockhash_poll_ms", 0)
	v.SetDefault("priority_fee.method", "none")
	v.SetDefault("priority_fee.helius_url", "")
	v.SetDefault("priority_fee.helius_level", "")
	v.SetDefault("priority_fee.frequency_ms", 10_000)
	v.SetDefault("priority_fee.max_micro_lamports", 0)
	v.SetDefault("priority_fee.multiplier", 1.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.addr", "")
}

// Load reads path (optional), BANK_* environment variables and overrides,
// in increasing priority. The endpoint and program id fall back to the env
// preset.
func Load(path string, overrides map[string]interface{}) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapPrefix(err, "read config "+path, 0)
		}
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.WrapPrefix(err, "decode config", 0)
	}
	if err := settings.Resolve(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Resolve merges the env preset under explicit values and validates.
func (p *Settings) Resolve() error {
	preset := Initialize(bankconfig.BankEnv(p.Env), &bankconfig.BankConfig{
		BANK_PROGRAM_ID: p.ProgramId,
		RPC_ENDPOINT:    p.Rpc.Endpoint,
	})
	p.ProgramId = preset.BANK_PROGRAM_ID
	p.Rpc.Endpoint = preset.RPC_ENDPOINT
	if err := validate.Struct(p); err != nil {
		return errors.WrapPrefix(err, "invalid config", 0)
	}
	return nil
}

func (p *Settings) ProgramPublicKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(p.ProgramId)
}

func (p *Settings) ConnectionConfig() connection.Config {
	return connection.Config{
		Endpoint:    p.Rpc.Endpoint,
		Token:       p.Rpc.Token,
		MaxReferrer: p.Rpc.MaxReferrer,
	}
}

func (p *Settings) ConfirmOptions() go_bank.ConfirmOptions {
	opts := go_bank.DefaultConfirmOptions()
	opts.Commitment = rpc.CommitmentType(p.Commitment)
	return opts
}

// TxParams returns nil when no compute budget is configured. feeSource may
// be nil.
func (p *Settings) TxParams(feeSource go_bank.IPriorityFeeSource) *go_bank.TxParams {
	if p.ComputeUnits == 0 && p.ComputeUnitPrice == 0 && feeSource == nil {
		return nil
	}
	return &go_bank.TxParams{
		ComputeUnits:      p.ComputeUnits,
		ComputeUnitsPrice: p.ComputeUnitPrice,
		PriorityFee:       feeSource,
	}
}
