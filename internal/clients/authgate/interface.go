package authgate

// AuthInterface answers whether a caller may use the administrative
// operations. Ownership transfer is handled outside the engine.
type AuthInterface interface {
	IsPrivileged(caller string) bool
}
