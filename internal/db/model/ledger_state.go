package model

const LedgerStateCollection = "ledger_state"

// LedgerStateDocument is the single persisted document carrying the global
// ledger state: params, pause flag, global index, allowlist, and the genesis
// timestamp the step clock derives heights from.
type LedgerStateDocument struct {
	RewardRatePerStep       string   `bson:"reward_rate_per_step"`
	ClaimDelaySteps         uint64   `bson:"claim_delay_steps"`
	WithdrawalCooldownSteps uint64   `bson:"withdrawal_cooldown_steps"`
	VaultAddress            string   `bson:"vault_address"`
	Paused                  bool     `bson:"paused"`
	GlobalIndex             string   `bson:"global_index"`
	LastUpdatedStep         uint64   `bson:"last_updated_step"`
	TotalActiveStaked       uint64   `bson:"total_active_staked"`
	AllowedCollections      []string `bson:"allowed_collections"`
	GenesisUnix             int64    `bson:"genesis_unix"`
}
