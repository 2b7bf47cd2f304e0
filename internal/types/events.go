package types

// EventTypes name the observable state transitions of the engine. Every
// event carries the before/after values needed to reconstruct state from a
// log.
type EventTypes string

func (e EventTypes) String() string {
	return string(e)
}

const (
	EventStaked                     EventTypes = "staking.v1.EventStaked"
	EventUnstaked                   EventTypes = "staking.v1.EventUnstaked"
	EventWithdrawn                  EventTypes = "staking.v1.EventWithdrawn"
	EventClaimed                    EventTypes = "staking.v1.EventClaimed"
	EventRewardRateChanged          EventTypes = "staking.v1.EventRewardRateChanged"
	EventClaimDelayChanged          EventTypes = "staking.v1.EventClaimDelayChanged"
	EventCooldownChanged            EventTypes = "staking.v1.EventCooldownChanged"
	EventCollectionAllowlistChanged EventTypes = "staking.v1.EventCollectionAllowlistChanged"
	EventPaused                     EventTypes = "staking.v1.EventPaused"
	EventUnpaused                   EventTypes = "staking.v1.EventUnpaused"
)

// Event is the envelope persisted to the event log and published to the
// queue.
type Event struct {
	Type    EventTypes `json:"type" bson:"type"`
	Step    uint64     `json:"step" bson:"step"`
	Payload any        `json:"payload" bson:"payload"`
}

type StakedPayload struct {
	Staker            string `json:"staker" bson:"staker"`
	Collection        string `json:"collection" bson:"collection"`
	ItemID            uint64 `json:"item_id" bson:"item_id"`
	TotalActiveStaked uint64 `json:"total_active_staked" bson:"total_active_staked"`
}

type UnstakedPayload struct {
	Staker            string `json:"staker" bson:"staker"`
	Collection        string `json:"collection" bson:"collection"`
	ItemID            uint64 `json:"item_id" bson:"item_id"`
	TotalActiveStaked uint64 `json:"total_active_staked" bson:"total_active_staked"`
}

type WithdrawnPayload struct {
	Staker     string `json:"staker" bson:"staker"`
	Collection string `json:"collection" bson:"collection"`
	ItemID     uint64 `json:"item_id" bson:"item_id"`
}

type ClaimedPayload struct {
	Staker string `json:"staker" bson:"staker"`
	Amount string `json:"amount" bson:"amount"`
}

type RewardRateChangedPayload struct {
	OldRate string `json:"old_rate" bson:"old_rate"`
	NewRate string `json:"new_rate" bson:"new_rate"`
}

type ClaimDelayChangedPayload struct {
	OldDelaySteps uint64 `json:"old_delay_steps" bson:"old_delay_steps"`
	NewDelaySteps uint64 `json:"new_delay_steps" bson:"new_delay_steps"`
}

type CooldownChangedPayload struct {
	OldCooldownSteps uint64 `json:"old_cooldown_steps" bson:"old_cooldown_steps"`
	NewCooldownSteps uint64 `json:"new_cooldown_steps" bson:"new_cooldown_steps"`
}

type CollectionAllowlistChangedPayload struct {
	Collection string `json:"collection" bson:"collection"`
	Allowed    bool   `json:"allowed" bson:"allowed"`
}

type PausedPayload struct {
	By string `json:"by" bson:"by"`
}
