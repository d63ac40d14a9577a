package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parkhub/parkhub-booking/internal/domain"
)

func TestService_Multiplier(t *testing.T) {
	svc := NewService(50.0, 1.0, 2.0, 0.8)

	tests := []struct {
		name          string
		occupancyRate float64
		want          float64
	}{
		{name: "empty level", occupancyRate: 0.0, want: 1.0},
		{name: "half full", occupancyRate: 0.5, want: 1.0},
		{name: "at threshold", occupancyRate: 0.8, want: 1.0},
		{name: "just above threshold", occupancyRate: 0.9, want: 1.5},
		{name: "full", occupancyRate: 1.0, want: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, svc.Multiplier(tt.occupancyRate), 0.001)
		})
	}
}

func TestService_Tier(t *testing.T) {
	svc := NewService(50.0, 1.0, 2.0, 0.8)

	tests := []struct {
		occupancyRate float64
		want          string
	}{
		{occupancyRate: 0.0, want: TierStandard},
		{occupancyRate: 0.49, want: TierStandard},
		{occupancyRate: 0.5, want: TierModerate},
		{occupancyRate: 0.69, want: TierModerate},
		{occupancyRate: 0.7, want: TierPeak},
		{occupancyRate: 0.84, want: TierPeak},
		{occupancyRate: 0.85, want: TierPremium},
		{occupancyRate: 1.0, want: TierPremium},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Tier(tt.occupancyRate))
		})
	}
}

func TestService_Quote(t *testing.T) {
	svc := NewService(50.0, 1.0, 2.0, 0.8)

	t.Run("standard rate below threshold", func(t *testing.T) {
		quote := svc.Quote(0.3, 4)

		assert.InDelta(t, 50.0, quote.HourlyRate, 0.001)
		assert.InDelta(t, 200.0, quote.TotalPrice, 0.001)
		assert.InDelta(t, 30.0, quote.OccupancyRate, 0.001)
		assert.Equal(t, TierStandard, quote.Tier)
		assert.False(t, quote.IsSurge)
	})

	t.Run("surge rate above threshold", func(t *testing.T) {
		quote := svc.Quote(0.9, 2)

		assert.InDelta(t, 1.5, quote.Multiplier, 0.001)
		assert.InDelta(t, 75.0, quote.HourlyRate, 0.001)
		assert.InDelta(t, 150.0, quote.TotalPrice, 0.001)
		assert.Equal(t, TierPremium, quote.Tier)
		assert.True(t, quote.IsSurge)
	})

	t.Run("multiplier capped at max when over capacity", func(t *testing.T) {
		quote := svc.Quote(1.2, 1)

		assert.InDelta(t, 2.0, quote.Multiplier, 0.001)
		assert.InDelta(t, 100.0, quote.HourlyRate, 0.001)
	})
}

func TestNewService_DefaultsForZeroValues(t *testing.T) {
	svc := NewService(0, 0, 0, 0)

	assert.InDelta(t, domain.DefaultBaseHourlyRate, svc.Quote(0, 1).HourlyRate, 0.001)
	assert.InDelta(t, domain.DefaultMaxMultiplier, svc.Multiplier(1.0), 0.001)
}
