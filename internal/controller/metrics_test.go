package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/project/catalog/internal/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func histogramState(t *testing.T, h prometheus.Histogram) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestDurationHistogramsLint(t *testing.T) {
	histograms := []prometheus.Histogram{
		CreateAuthorDuration, GetAuthorDuration, ListAuthorsDuration, DeleteAuthorDuration,
		CreateBookDuration, GetBookDuration, ListBooksDuration, DeleteBookDuration,
	}
	for _, h := range histograms {
		problems, err := testutil.CollectAndLint(h)
		require.NoError(t, err)
		require.Empty(t, problems)
	}
}

// Not parallel: the histograms are package globals shared with the route tests.
func TestListBooksObservesSeconds(t *testing.T) {
	mux, _, booksUseCase := initTest(t)
	booksUseCase.EXPECT().Books(gomock.Any()).DoAndReturn(func(context.Context) []entity.Book {
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	count, sum := histogramState(t, ListBooksDuration)
	rec := serve(t, mux, http.MethodGet, "/v1/books", "")
	require.Equal(t, http.StatusOK, rec.Code)

	after, afterSum := histogramState(t, ListBooksDuration)
	require.Equal(t, count+1, after)
	require.GreaterOrEqual(t, afterSum-sum, 0.02)
	require.Less(t, afterSum-sum, 1.0)
}
