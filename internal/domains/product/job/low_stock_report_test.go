package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared"
)

// stubService implements only what the report reads.
type stubService struct {
	product.Service
	stats      *product.Stats
	statsErr   error
	low        []product.Product
	lowLimit   int
	lowStocked bool
}

func (s *stubService) GetStats(context.Context) (*product.Stats, error) {
	return s.stats, s.statsErr
}

func (s *stubService) LowStock(_ context.Context, limit int) ([]product.Product, error) {
	s.lowStocked = true
	s.lowLimit = limit
	return s.low, nil
}

func TestLowStockReport(t *testing.T) {
	svc := &stubService{
		stats: &product.Stats{TotalProducts: 3, LowStockCount: 1},
		low:   []product.Product{{ID: 4, Name: "Lamp", Quantity: 2}},
	}
	h := NewLowStockReportHandler(svc)

	task := asynq.NewTask(shared.TypeLowStockReport, []byte(`{"limit":25}`))
	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.True(t, svc.lowStocked)
	assert.Equal(t, 25, svc.lowLimit)
}

func TestLowStockReport_NothingLow(t *testing.T) {
	svc := &stubService{stats: &product.Stats{TotalProducts: 3}}
	h := NewLowStockReportHandler(svc)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeLowStockReport, nil)))
	assert.False(t, svc.lowStocked)
}

func TestLowStockReport_Errors(t *testing.T) {
	h := NewLowStockReportHandler(&stubService{statsErr: errors.New("db down")})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeLowStockReport, nil))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry), "store errors are retried")

	err = h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeLowStockReport, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
