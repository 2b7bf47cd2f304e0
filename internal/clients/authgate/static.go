package authgate

// StaticGate grants admin rights to a single configured owner identity.
type StaticGate struct {
	owner string
}

func NewStaticGate(owner string) *StaticGate {
	return &StaticGate{owner: owner}
}

func (g *StaticGate) IsPrivileged(caller string) bool {
	return g.owner != "" && caller == g.owner
}
