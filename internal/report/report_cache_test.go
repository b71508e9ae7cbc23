package report_test

import (
	"context"
	"testing"

	"go-shinsei/internal/report"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestCacheInvalidator_InvalidateAggregates(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes every cached aggregate key", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		keys := []string{
			"report:aggregate::::",
			"report:aggregate:2025-07-01:2025-07-31:Sales:",
		}
		redisMock.ExpectScan(0, "report:aggregate:*", 64).SetVal(keys, 0)
		redisMock.ExpectDel(keys...).SetVal(int64(len(keys)))

		report.NewCacheInvalidator(rdb).InvalidateAggregates(ctx)

		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("walks the cursor to the end", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		redisMock.ExpectScan(0, "report:aggregate:*", 64).
			SetVal([]string{"report:aggregate:2025-06-01:2025-06-30::"}, 7)
		redisMock.ExpectDel("report:aggregate:2025-06-01:2025-06-30::").SetVal(1)
		redisMock.ExpectScan(7, "report:aggregate:*", 64).
			SetVal([]string{}, 0)

		report.NewCacheInvalidator(rdb).InvalidateAggregates(ctx)

		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("empty cache is a no-op", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		redisMock.ExpectScan(0, "report:aggregate:*", 64).SetVal([]string{}, 0)

		report.NewCacheInvalidator(rdb).InvalidateAggregates(ctx)

		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
