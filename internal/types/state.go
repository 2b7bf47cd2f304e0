package types

// Enum values for the lifecycle of a staked item
type ItemState string

const (
	StateActive    ItemState = "ACTIVE"
	StateUnbonding ItemState = "UNBONDING"
)

func (s ItemState) String() string {
	return string(s)
}

// ItemStateFor derives the lifecycle state from the unstake step marker
// (zero means still actively staked).
func ItemStateFor(unstakedAtStep uint64) ItemState {
	if unstakedAtStep == 0 {
		return StateActive
	}
	return StateUnbonding
}
