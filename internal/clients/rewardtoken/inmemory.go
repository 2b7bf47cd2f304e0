package rewardtoken

import (
	"context"
	"sync"

	sdkmath "cosmossdk.io/math"
)

// InMemoryLedger is a reference reward ledger. All transfers draw from a
// single funding account seeded at construction.
type InMemoryLedger struct {
	mu       sync.RWMutex
	funder   string
	balances map[string]sdkmath.Uint
}

func NewInMemoryLedger(funder string, initialBalance sdkmath.Uint) *InMemoryLedger {
	return &InMemoryLedger{
		funder: funder,
		balances: map[string]sdkmath.Uint{
			funder: initialBalance,
		},
	}
}

func (l *InMemoryLedger) Transfer(ctx context.Context, to string, amount sdkmath.Uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	available := l.balanceLocked(l.funder)
	if available.LT(amount) {
		return &InsufficientFundsError{
			Requested: amount.String(),
			Available: available.String(),
		}
	}

	l.balances[l.funder] = available.Sub(amount)
	l.balances[to] = l.balanceLocked(to).Add(amount)
	return nil
}

func (l *InMemoryLedger) BalanceOf(ctx context.Context, holder string) (sdkmath.Uint, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balanceLocked(holder), nil
}

func (l *InMemoryLedger) balanceLocked(holder string) sdkmath.Uint {
	if balance, ok := l.balances[holder]; ok {
		return balance
	}
	return sdkmath.ZeroUint()
}
