package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name             string
		start, end, step float64
		want             []float64
	}{
		{"unit step", 99, 101, 1, []float64{99, 100, 101}},
		{"single point", 5, 5, 1, []float64{5}},
		{"end not on grid", 0, 1, 0.3, []float64{0, 0.3, 0.6, 0.9}},
		{"fractional step includes end", 0.1, 0.3, 0.1, []float64{0.1, 0.2, 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Create(tt.start, tt.end, tt.step)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestCreateInvalid(t *testing.T) {
	_, err := Create(0, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidMesh)

	_, err = Create(0, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidMesh)

	_, err = Create(10, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidMesh)

	_, err = Create(math.NaN(), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidMesh)

	_, err = Create(0, math.Inf(1), 1)
	assert.ErrorIs(t, err, ErrInvalidMesh)
}

func TestCreateWithLimit(t *testing.T) {
	_, err := CreateWithLimit(0, 100, 1, 50)
	assert.ErrorIs(t, err, ErrTooManyPoints)

	got, err := CreateWithLimit(0, 100, 1, 101)
	require.NoError(t, err)
	assert.Len(t, got, 101)
	assert.Equal(t, 100.0, got[100])
}

func TestCreateWithLimit_HugeRange(t *testing.T) {
	tests := []struct {
		name             string
		start, end, step float64
	}{
		{"beyond int range", 0, 1e19, 1},
		{"max float span", -math.MaxFloat64, math.MaxFloat64, 1},
		{"tiny step", 0, 1, 1e-300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateWithLimit(tt.start, tt.end, tt.step, 10000)
			assert.ErrorIs(t, err, ErrTooManyPoints)
		})
	}
}

func TestCreateWithLimit_NonPositiveLimitUsesDefault(t *testing.T) {
	_, err := CreateWithLimit(0, 1e19, 1, 0)
	assert.ErrorIs(t, err, ErrTooManyPoints)

	_, err = CreateWithLimit(0, DefaultMaxPoints, 1, -1)
	assert.ErrorIs(t, err, ErrTooManyPoints)

	got, err := CreateWithLimit(0, 9, 1, 0)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}
