package progress_test

import (
	"math"
	"testing"

	"github.com/2beens/goalpost/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCheckpoint(t *testing.T) {
	series, err := progress.AppendCheckpoint(nil, 200, rateTestStart)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, float64(200), series[0].Value)

	series, err = progress.AppendCheckpoint(series, 198, rateTestStart.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, float64(198), series[1].Value)
}

func TestAppendCheckpoint_BackfillKeepsOrder(t *testing.T) {
	series, err := progress.AppendCheckpoint(nil, 198, rateTestStart.AddDate(0, 0, 7))
	require.NoError(t, err)

	// a late-arriving older observation slots in before the newer one
	series, err = progress.AppendCheckpoint(series, 200, rateTestStart)
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, float64(200), series[0].Value)
	assert.Equal(t, float64(198), series[1].Value)
	assert.True(t, series[0].Timestamp.Before(series[1].Timestamp))
}

func TestAppendCheckpoint_InputUntouched(t *testing.T) {
	original := checkpointsAt([]int{7, 14}, []float64{198, 196})

	series, err := progress.AppendCheckpoint(original, 200, rateTestStart)
	require.NoError(t, err)
	require.Len(t, series, 3)

	// the original slice keeps its length and contents
	require.Len(t, original, 2)
	assert.Equal(t, float64(198), original[0].Value)
	assert.Equal(t, float64(196), original[1].Value)
}

func TestAppendCheckpoint_InvalidValue(t *testing.T) {
	_, err := progress.AppendCheckpoint(nil, math.NaN(), rateTestStart)
	require.ErrorIs(t, err, progress.ErrInvalidValue)

	_, err = progress.AppendCheckpoint(nil, math.Inf(1), rateTestStart)
	require.ErrorIs(t, err, progress.ErrInvalidValue)
}
