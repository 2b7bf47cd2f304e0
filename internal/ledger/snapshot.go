package ledger

import (
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/authgate"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/custody"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/rewardtoken"
)

// Snapshot is a deep copy of the full ledger state, used to persist and
// restore the engine across restarts.
type Snapshot struct {
	Params             Params
	Paused             bool
	GlobalIndex        RewardIndex
	TotalActiveStaked  uint64
	AllowedCollections []string
	Accounts           map[string]StakerAccount
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts := make(map[string]StakerAccount, len(l.accounts))
	for staker, account := range l.accounts {
		accounts[staker] = account.clone()
	}
	collections := make([]string, 0, len(l.allowedCollections))
	for collection := range l.allowedCollections {
		collections = append(collections, collection)
	}

	return Snapshot{
		Params:             l.params,
		Paused:             l.paused,
		GlobalIndex:        l.globalIndex,
		TotalActiveStaked:  l.totalActiveStaked,
		AllowedCollections: collections,
		Accounts:           accounts,
	}
}

// Restore rebuilds a ledger from a snapshot, wiring in fresh collaborators
// and step source.
func Restore(
	snap Snapshot,
	clock StepSource,
	custodyClient custody.CustodyInterface,
	rewardClient rewardtoken.RewardInterface,
	auth authgate.AuthInterface,
) *Ledger {
	l := New(snap.Params, snap.AllowedCollections, clock, custodyClient, rewardClient, auth)
	l.paused = snap.Paused
	l.globalIndex = snap.GlobalIndex
	l.totalActiveStaked = snap.TotalActiveStaked
	for staker, account := range snap.Accounts {
		restored := account
		restored.Items = make([]StakedItem, len(account.Items))
		copy(restored.Items, account.Items)
		l.accounts[staker] = &restored
	}
	return l
}
