package sector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalad-shrimali/sector-kml/geodesy"
)

func ptr(f float64) *float64 { return &f }

func TestBuildWithoutRadius(t *testing.T) {
	t.Parallel()

	assert.Nil(t, New(0).Build(121, 14, 90, nil))
}

func TestBuildIsClosedAtApex(t *testing.T) {
	t.Parallel()

	b := New(DefaultBeamwidthDeg)
	for _, az := range []float64{0, 15, 90, 180, 344.5, 359.9, 360, 720, -30} {
		ring := b.Build(121.5, 14.25, az, ptr(250))
		require.GreaterOrEqual(t, len(ring), 3, "azimuth %v", az)
		apex := geodesy.Point{Lon: 121.5, Lat: 14.25}
		assert.Equal(t, apex, ring[0], "azimuth %v", az)
		assert.Equal(t, apex, ring[len(ring)-1], "azimuth %v", az)
	}
}

func TestBuildArcAtRadius(t *testing.T) {
	t.Parallel()

	ring := New(30).Build(10, 45, 120, ptr(175))
	for _, p := range ring[1 : len(ring)-1] {
		assert.InEpsilon(t, 175, geodesy.Distance(10, 45, p.Lon, p.Lat), 1e-3)
	}
}

func TestBearingsNoWrap(t *testing.T) {
	t.Parallel()

	got := New(30).Bearings(90)
	require.Len(t, got, 31)
	assert.Equal(t, 75, got[0])
	assert.Equal(t, 105, got[len(got)-1])
}

func TestBearingsWrapAtNorth(t *testing.T) {
	t.Parallel()

	want := []int{}
	for b := 345; b < 360; b++ {
		want = append(want, b)
	}
	for b := 0; b <= 15; b++ {
		want = append(want, b)
	}

	for _, az := range []float64{0, 360, 720} {
		if diff := cmp.Diff(want, New(30).Bearings(az)); diff != "" {
			t.Errorf("Bearings(%v) mismatch (-want +got):\n%s", az, diff)
		}
	}
}

func TestBearingsNoAdjacentDuplicates(t *testing.T) {
	t.Parallel()

	b := New(30)
	for az := 0.0; az < 360; az += 7.5 {
		got := b.Bearings(az)
		require.NotEmpty(t, got)
		for i := 1; i < len(got); i++ {
			assert.Equal(t, (got[i-1]+1)%360, got[i], "azimuth %v index %d", az, i)
		}
	}
}

func TestBearingsFractionalAzimuth(t *testing.T) {
	t.Parallel()

	got := New(30).Bearings(10.7)
	assert.Equal(t, 355, got[0])
	assert.Equal(t, 25, got[len(got)-1])
}

func TestBearingsWideBeamEdgesInSameDegree(t *testing.T) {
	t.Parallel()

	// Edges at 180.5 and 180.1: same whole degree, but the arc wraps.
	got := New(359.6).Bearings(0.3)
	require.Len(t, got, 361)
	assert.Equal(t, 180, got[0])
	assert.Equal(t, 180, got[len(got)-1])
	for i := 1; i < len(got); i++ {
		assert.Equal(t, (got[i-1]+1)%360, got[i], "index %d", i)
	}
}

func TestBearingsFullCircle(t *testing.T) {
	t.Parallel()

	got := New(360).Bearings(90)
	require.Len(t, got, 361)
	assert.Equal(t, got[0], got[len(got)-1])
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float64(DefaultBeamwidthDeg), New(0).BeamwidthDeg)
	assert.Equal(t, float64(DefaultBeamwidthDeg), New(-5).BeamwidthDeg)
	assert.Equal(t, 65.0, New(65).BeamwidthDeg)

	var nilBuilder *Builder
	assert.Len(t, nilBuilder.Bearings(90), 31)
}
