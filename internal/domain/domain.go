package domain

// Domain identifies one of the three analysis areas. The set is closed:
// personas and prompt templates exist only for these three values plus
// the coordination step.
type Domain string

// The three analysis domains.
const (
	DomainHealth  Domain = "health"
	DomainFinance Domain = "finance"
	DomainStudy   Domain = "study"
)

// Domains lists the analysis domains in canonical execution order.
// The coordinator consumes results in this order as well.
var Domains = []Domain{DomainHealth, DomainFinance, DomainStudy}

// Valid reports whether d is one of the three analysis domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainHealth, DomainFinance, DomainStudy:
		return true
	default:
		return false
	}
}

// String returns the lowercase domain name.
func (d Domain) String() string {
	return string(d)
}
