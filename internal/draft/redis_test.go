package draft

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	ttl := 2 * time.Hour

	encoded, err := json.Marshal(sampleDraft())
	require.NoError(t, err)

	t.Run("Save", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		s := NewRedisStore(db, ttl)

		mock.ExpectSet("rental:42", string(encoded), ttl).SetVal("OK")

		require.NoError(t, s.Save(ctx, "rental:42", sampleDraft()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Save failure is surfaced", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		s := NewRedisStore(db, ttl)

		mock.ExpectSet("rental:42", string(encoded), ttl).SetErr(errors.New("connection refused"))

		err := s.Save(ctx, "rental:42", sampleDraft())
		assert.ErrorContains(t, err, "save draft")
	})

	t.Run("Load", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		s := NewRedisStore(db, ttl)

		mock.ExpectGet("rental:42").SetVal(string(encoded))

		got, err := s.Load(ctx, "rental:42")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "abc-123", got.PaymentCorrelationID)
		assert.Equal(t, int64(300000), got.TotalPricePaisa)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load of empty slot", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		s := NewRedisStore(db, ttl)

		mock.ExpectGet("rental:42").RedisNil()

		got, err := s.Load(ctx, "rental:42")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Load of garbage is treated as empty", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		s := NewRedisStore(db, ttl)

		mock.ExpectGet("rental:42").SetVal("{not json")

		got, err := s.Load(ctx, "rental:42")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Clear twice", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		s := NewRedisStore(db, ttl)

		mock.ExpectDel("rental:42").SetVal(1)
		mock.ExpectDel("rental:42").SetVal(0)

		assert.NoError(t, s.Clear(ctx, "rental:42"))
		assert.NoError(t, s.Clear(ctx, "rental:42"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
