package config

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

// LedgerConfig holds the accrual parameters and the identities the engine
// acts as. Amounts are decimal strings so they survive YAML round-trips at
// full precision.
type LedgerConfig struct {
	RewardRatePerStep       string        `mapstructure:"reward-rate-per-step"`
	ClaimDelaySteps         uint64        `mapstructure:"claim-delay-steps"`
	WithdrawalCooldownSteps uint64        `mapstructure:"withdrawal-cooldown-steps"`
	StepInterval            time.Duration `mapstructure:"step-interval"`
	VaultAddress            string        `mapstructure:"vault-address"`
	OwnerAddress            string        `mapstructure:"owner-address"`
	AllowedCollections      []string      `mapstructure:"allowed-collections"`
	RewardTreasuryBalance   string        `mapstructure:"reward-treasury-balance"`
}

func (cfg *LedgerConfig) Validate() error {
	if _, err := sdkmath.ParseUint(cfg.RewardRatePerStep); err != nil {
		return fmt.Errorf("reward-rate-per-step must be an unsigned integer: %w", err)
	}
	if cfg.StepInterval <= 0 {
		return fmt.Errorf("step-interval must be positive")
	}
	if cfg.VaultAddress == "" {
		return fmt.Errorf("vault-address is required")
	}
	if cfg.OwnerAddress == "" {
		return fmt.Errorf("owner-address is required")
	}
	for _, collection := range cfg.AllowedCollections {
		if collection == "" {
			return fmt.Errorf("allowed-collections must not contain empty identities")
		}
	}
	if cfg.RewardTreasuryBalance != "" {
		if _, err := sdkmath.ParseUint(cfg.RewardTreasuryBalance); err != nil {
			return fmt.Errorf("reward-treasury-balance must be an unsigned integer: %w", err)
		}
	}
	return nil
}

// RewardRate returns the parsed reward rate. Validate must have succeeded.
func (cfg *LedgerConfig) RewardRate() sdkmath.Uint {
	rate, err := sdkmath.ParseUint(cfg.RewardRatePerStep)
	if err != nil {
		panic(fmt.Sprintf("invalid reward rate %q: %v", cfg.RewardRatePerStep, err))
	}
	return rate
}

// TreasuryBalance returns the parsed initial reward treasury balance.
func (cfg *LedgerConfig) TreasuryBalance() sdkmath.Uint {
	if cfg.RewardTreasuryBalance == "" {
		return sdkmath.ZeroUint()
	}
	balance, err := sdkmath.ParseUint(cfg.RewardTreasuryBalance)
	if err != nil {
		panic(fmt.Sprintf("invalid treasury balance %q: %v", cfg.RewardTreasuryBalance, err))
	}
	return balance
}
