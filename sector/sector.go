// Package sector builds pie-wedge coverage polygons for antenna sectors.
package sector

import (
	"math"

	"github.com/jalad-shrimali/sector-kml/geodesy"
)

// DefaultBeamwidthDeg is the total horizontal beamwidth drawn for a cell.
const DefaultBeamwidthDeg = 30

// Builder turns a cell position, azimuth and radius into a closed ring.
type Builder struct {
	BeamwidthDeg float64
}

// New returns a Builder for the given total beamwidth. Non-positive widths
// fall back to DefaultBeamwidthDeg.
func New(beamwidthDeg float64) *Builder {
	if beamwidthDeg <= 0 || math.IsNaN(beamwidthDeg) {
		beamwidthDeg = DefaultBeamwidthDeg
	}
	return &Builder{BeamwidthDeg: beamwidthDeg}
}

func (b *Builder) beamwidth() float64 {
	if b == nil || b.BeamwidthDeg <= 0 {
		return DefaultBeamwidthDeg
	}
	return b.BeamwidthDeg
}

// Bearings lists the whole-degree bearings that make up the outer arc of a
// sector pointing at azimuthDeg, in drawing order.
func (b *Builder) Bearings(azimuthDeg float64) []int {
	half := b.beamwidth() / 2
	startF := geodesy.NormalizeBearing(azimuthDeg - half)
	endF := geodesy.NormalizeBearing(azimuthDeg + half)
	start, end := int(math.Floor(startF)), int(math.Floor(endF))

	if b.beamwidth() >= 360 {
		out := make([]int, 0, 361)
		for i := 0; i <= 360; i++ {
			out = append(out, (start+i)%360)
		}
		return out
	}

	// Wrap is decided on the exact edges: both can floor to the same degree
	// while the arc still runs the long way round through north.
	if startF <= endF {
		out := make([]int, 0, end-start+1)
		for brg := start; brg <= end; brg++ {
			out = append(out, brg)
		}
		return out
	}

	out := make([]int, 0, 360-start+end+1)
	for brg := start; brg < 360; brg++ {
		out = append(out, brg)
	}
	for brg := 0; brg <= end; brg++ {
		out = append(out, brg)
	}
	return out
}

// Build returns the wedge ring: apex, arc points at radiusM, apex.
// A nil radius yields nil.
func (b *Builder) Build(lon, lat, azimuthDeg float64, radiusM *float64) []geodesy.Point {
	if radiusM == nil {
		return nil
	}
	r := *radiusM

	bearings := b.Bearings(azimuthDeg)
	apex := geodesy.Point{Lon: lon, Lat: lat}

	ring := make([]geodesy.Point, 0, len(bearings)+2)
	ring = append(ring, apex)
	for _, brg := range bearings {
		ring = append(ring, apex.Destination(float64(brg), r))
	}
	return append(ring, apex)
}
