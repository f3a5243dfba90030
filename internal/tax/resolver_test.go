package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain"
)

func newTestResolver() *Resolver {
	return NewResolver("KA", decimal.NewFromInt(18))
}

func TestResolve_IntraState(t *testing.T) {
	rates, err := newTestResolver().Resolve("KA")
	require.NoError(t, err)

	assert.Equal(t, "9", rates.CGSTPercent.String())
	assert.Equal(t, "9", rates.SGSTPercent.String())
	assert.True(t, rates.IGSTPercent.IsZero())
	assert.Equal(t, domain.RegimeIntraState, rates.Regime())
}

func TestResolve_InterState(t *testing.T) {
	rates, err := newTestResolver().Resolve("MH")
	require.NoError(t, err)

	assert.True(t, rates.CGSTPercent.IsZero())
	assert.True(t, rates.SGSTPercent.IsZero())
	assert.Equal(t, "18", rates.IGSTPercent.String())
	assert.Equal(t, domain.RegimeInterState, rates.Regime())
}

func TestResolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	rates, err := newTestResolver().Resolve("  ka ")
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeIntraState, rates.Regime())
}

func TestResolve_BlankBuyerState(t *testing.T) {
	_, err := newTestResolver().Resolve("   ")
	assert.ErrorIs(t, err, domain.ErrRegimeUnresolved)
}

func TestResolve_MutualExclusivity(t *testing.T) {
	r := newTestResolver()
	for _, state := range []string{"KA", "MH", "TN", "DL"} {
		rates, err := r.Resolve(state)
		require.NoError(t, err)
		assert.True(t, rates.Valid(), "state %s produced invalid regime", state)

		intra := rates.CGSTPercent.IsPositive() && rates.SGSTPercent.IsPositive()
		inter := rates.IGSTPercent.IsPositive()
		assert.False(t, intra && inter, "state %s mixed regimes", state)
	}
}

func TestResolveFor_RespectsOperatorRates(t *testing.T) {
	inv := &domain.Invoice{}
	inv.SetRates(domain.TaxRates{IGSTPercent: decimal.NewFromInt(12)})

	err := newTestResolver().ResolveFor(inv, "KA", true)
	require.NoError(t, err)
	assert.Equal(t, "12", inv.IGSTRate.String())
	assert.True(t, inv.CGSTRate.IsZero())
}

func TestResolveFor_FillsDefaults(t *testing.T) {
	inv := &domain.Invoice{}
	err := newTestResolver().ResolveFor(inv, "MH", false)
	require.NoError(t, err)
	assert.Equal(t, "18", inv.IGSTRate.String())
}

func TestResolveFor_BlankStateFails(t *testing.T) {
	inv := &domain.Invoice{}
	err := newTestResolver().ResolveFor(inv, "", false)
	assert.ErrorIs(t, err, domain.ErrRegimeUnresolved)
}
