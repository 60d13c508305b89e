package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproximations_AgreeWithClosedForm(t *testing.T) {
	inputs := []OptionInput{
		hullInput(OptionTypeCall),
		hullInput(OptionTypePut),
		{S: 105, K: 100, T: 0.5, R: 0.1, Sigma: 0.36, Type: OptionTypeCall, Underlying: UnderlyingFutures},
		{S: 100, K: 95, T: 1, R: 0.05, Sigma: 0.25, Q: 0.02, Type: OptionTypePut, Underlying: UnderlyingDividendStock},
		{S: 1.25, K: 1.2, T: 0.75, R: 0.04, Sigma: 0.12, Rf: 0.02, Type: OptionTypeCall, Underlying: UnderlyingCurrency},
	}
	for _, in := range inputs {
		p := mustOption(t, in)
		// 步长随标的价格量级缩放
		dh, gh := 0.01, 0.1
		if in.S < 10 {
			dh, gh = 0.001, 0.001
		}
		t.Run(p.String(), func(t *testing.T) {
			delta, err := Delta(p)
			require.NoError(t, err)
			approx, err := DeltaApproximation(p, dh)
			require.NoError(t, err)
			assert.InDelta(t, delta, approx, 1e-4)

			gamma, err := Gamma(p)
			require.NoError(t, err)
			gApprox, err := GammaApproximation(p, gh)
			require.NoError(t, err)
			assert.InDelta(t, gamma, gApprox, 1e-4)
		})
	}
}

func TestDeltaApproximation_ImprovesWithSmallerStep(t *testing.T) {
	p := mustOption(t, OptionInput{S: 105, K: 100, T: 0.5, R: 0.1, Sigma: 0.36, Type: OptionTypeCall, Underlying: UnderlyingFutures})
	delta, err := Delta(p)
	require.NoError(t, err)

	coarse, err := DeltaApproximation(p, 1)
	require.NoError(t, err)
	fine, err := DeltaApproximation(p, 0.1)
	require.NoError(t, err)

	assert.Less(t, math.Abs(fine-delta), math.Abs(coarse-delta))
}

func TestApproximations_InvalidStep(t *testing.T) {
	p := mustOption(t, hullInput(OptionTypeCall))
	for _, h := range []float64{0, -0.1, math.NaN(), 60, 100} {
		_, err := DeltaApproximation(p, h)
		assert.ErrorIs(t, err, ErrDomain, "h=%v", h)
		_, err = GammaApproximation(p, h)
		assert.ErrorIs(t, err, ErrDomain, "h=%v", h)
	}
}
