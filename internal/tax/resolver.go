package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

var two = decimal.NewFromInt(2)

// Resolver supplies default GST rates from seller/buyer geography. The
// standard slab is configuration, not a hardcoded percentage.
type Resolver struct {
	sellerState  string
	standardRate decimal.Decimal
}

// NewResolver creates a Resolver for the seller's home state and
// standard slab percent (e.g. 18, split 9/9 intra-state).
func NewResolver(sellerState string, standardRatePercent decimal.Decimal) *Resolver {
	return &Resolver{
		sellerState:  strings.TrimSpace(sellerState),
		standardRate: standardRatePercent,
	}
}

// Resolve returns the applicable rates for a buyer state. Same state as
// the seller means intra-state CGST+SGST at half the slab each; any other
// state means inter-state IGST at the full slab. A blank buyer state is
// never silently defaulted to either regime.
func (r *Resolver) Resolve(buyerState string) (domain.TaxRates, error) {
	state := strings.TrimSpace(buyerState)
	if state == "" {
		return domain.TaxRates{}, domain.ErrRegimeUnresolved
	}

	if strings.EqualFold(state, r.sellerState) {
		half := r.standardRate.Div(two)
		return domain.TaxRates{CGSTPercent: half, SGSTPercent: half}, nil
	}
	return domain.TaxRates{IGSTPercent: r.standardRate}, nil
}

// ResolveFor fills default rates on an invoice only when the operator left
// them unset. Explicitly set rates are never overridden.
func (r *Resolver) ResolveFor(inv *domain.Invoice, buyerState string, ratesProvided bool) error {
	if ratesProvided {
		return nil
	}
	rates, err := r.Resolve(buyerState)
	if err != nil {
		return err
	}
	inv.SetRates(rates)
	return nil
}
