package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelhub-backend/internal/domain"
)

func sampleDraft() *domain.RentalDraft {
	return &domain.RentalDraft{
		VehicleID:            1,
		RenterID:             42,
		StartDate:            "2026-11-01",
		EndDate:              "2026-11-03",
		Quantity:             1,
		TotalPricePaisa:      300000,
		PaymentMethod:        domain.PaymentMethodEsewa,
		PaymentCorrelationID: "abc-123",
		CreatedOn:            time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "rental:42", Key(42))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Save then load", func(t *testing.T) {
		s := NewMemoryStore(time.Hour)
		require.NoError(t, s.Save(ctx, "rental:42", sampleDraft()))

		got, err := s.Load(ctx, "rental:42")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "abc-123", got.PaymentCorrelationID)
	})

	t.Run("Save overwrites the single slot", func(t *testing.T) {
		s := NewMemoryStore(time.Hour)
		first := sampleDraft()
		second := sampleDraft()
		second.PaymentCorrelationID = "def-456"

		require.NoError(t, s.Save(ctx, "rental:42", first))
		require.NoError(t, s.Save(ctx, "rental:42", second))

		got, err := s.Load(ctx, "rental:42")
		require.NoError(t, err)
		assert.Equal(t, "def-456", got.PaymentCorrelationID)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		s := NewMemoryStore(0)
		require.NoError(t, s.Save(ctx, "rental:42", sampleDraft()))

		got, _ := s.Load(ctx, "rental:42")
		got.TotalPricePaisa = 1

		again, _ := s.Load(ctx, "rental:42")
		assert.Equal(t, int64(300000), again.TotalPricePaisa)
	})

	t.Run("Missing key is nil without error", func(t *testing.T) {
		s := NewMemoryStore(time.Hour)
		got, err := s.Load(ctx, "rental:1")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Clear is idempotent", func(t *testing.T) {
		s := NewMemoryStore(time.Hour)
		require.NoError(t, s.Save(ctx, "rental:42", sampleDraft()))

		assert.NoError(t, s.Clear(ctx, "rental:42"))
		assert.NoError(t, s.Clear(ctx, "rental:42"))

		got, err := s.Load(ctx, "rental:42")
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, s.Clear(ctx, "rental:42"))
	})

	t.Run("Expired draft is gone", func(t *testing.T) {
		s := NewMemoryStore(time.Minute)
		now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }
		require.NoError(t, s.Save(ctx, "rental:42", sampleDraft()))

		now = now.Add(2 * time.Minute)
		got, err := s.Load(ctx, "rental:42")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
