package stub

// Set agrupa los cuatro stubs; es lo que usa el modo dev y los tests.
type Set struct {
	Auth    *Authorizer
	Billing *Billing
	Breeds  *Breeds
	Prices  *Prices
}

func NewSet() *Set {
	return &Set{
		Auth:    NewAuthorizer(),
		Billing: NewBilling(),
		Breeds:  NewBreeds(),
		Prices:  NewPrices(),
	}
}

// TotalCalls suma las llamadas a todos los stubs.
func (s *Set) TotalCalls() int {
	return s.Auth.TotalCalls() + s.Billing.TotalCalls() + s.Breeds.TotalCalls() + s.Prices.TotalCalls()
}

func (s *Set) ResetCalls() {
	s.Auth.ResetCalls()
	s.Billing.ResetCalls()
	s.Breeds.ResetCalls()
	s.Prices.ResetCalls()
}
