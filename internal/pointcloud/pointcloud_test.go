package pointcloud_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doismellburning/phasefield/internal/pointcloud"
)

// S5 — sphere ingestion round-trip: 50x25 points, bounding box
// matching [-1,1]^3 to within float32 precision.
func TestSphereRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pointcloud.GenerateSphere(&buf, 1, 50, 25))

	cloud, err := pointcloud.Load(&buf)
	require.NoError(t, err)

	assert.Len(t, cloud.Points, 1250)
	assert.InDelta(t, -1, cloud.BoundX.Lo, 1e-5)
	assert.InDelta(t, 1, cloud.BoundX.Hi, 1e-5)
	assert.InDelta(t, -1, cloud.BoundY.Lo, 1e-5)
	assert.InDelta(t, 1, cloud.BoundY.Hi, 1e-5)
	assert.InDelta(t, -1, cloud.BoundZ.Lo, 1e-5)
	assert.InDelta(t, 1, cloud.BoundZ.Hi, 1e-5)
}

func TestFocalSetNormalizesIntoGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pointcloud.GenerateSphere(&buf, 0.02, 20, 10))

	cloud, err := pointcloud.Load(&buf)
	require.NoError(t, err)

	focalPoints := cloud.FocalSet(32, 0.25)
	assert.Len(t, focalPoints, len(cloud.Points))
	for _, fp := range focalPoints {
		assert.GreaterOrEqual(t, fp.GridX, 0)
		assert.Less(t, fp.GridX, 32)
		assert.GreaterOrEqual(t, fp.GridY, 0)
		assert.Less(t, fp.GridY, 32)
		assert.GreaterOrEqual(t, fp.DistanceM, -0.25)
		assert.LessOrEqual(t, fp.DistanceM, 0.25)
	}
}

func TestTargetSliceIsSingleHot(t *testing.T) {
	fp := pointcloud.FocalPoint{GridX: 3, GridY: 5, DistanceM: 0.1}
	slice := fp.TargetSlice(8)

	sum := 0.0
	for _, v := range slice.Data {
		sum += v
	}
	assert.Equal(t, 1.0, sum)
	assert.Equal(t, 1.0, slice.At(3, 5))
}
