package narrowphase

import (
	"math"

	"github.com/0x5844/rigid2d/contact"
	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

// boxPolygon is a box's 4 world-space vertices and 4 outward edge normals,
// vertex i's outgoing edge running to vertex i+1 and owning normal i.
type boxPolygon struct {
	vertices [4]vec2.Vec2
	normals  [4]vec2.Vec2
}

func buildBoxPolygon(t Transform, s shape.Shape) boxPolygon {
	corners := s.WorldCorners(t.Position, t.Angle)
	var p boxPolygon
	p.vertices = corners
	for i := 0; i < 4; i++ {
		edge := corners[(i+1)%4].Sub(corners[i])
		// Outward normal for a CCW-wound polygon is the edge rotated -90deg.
		p.normals[i] = vec2.New(edge.Y, -edge.X)
		n, length := p.normals[i].Normalize()
		if length > 0 {
			p.normals[i] = n
		}
	}
	return p
}

// findMaxSeparation finds, among poly1's face normals, the one that best
// separates poly1 from poly2 (i.e. maximizes the minimum vertex gap),
// mirroring b2FindMaxSeparation's generic two-polygon SAT pass.
func findMaxSeparation(poly1, poly2 boxPolygon) (bestIndex int, bestSeparation float64) {
	bestSeparation = -math.MaxFloat64
	for i := 0; i < 4; i++ {
		n := poly1.normals[i]
		v1 := poly1.vertices[i]

		minSep := math.MaxFloat64
		for _, v2 := range poly2.vertices {
			sep := n.Dot(v2.Sub(v1))
			if sep < minSep {
				minSep = sep
			}
		}
		if minSep > bestSeparation {
			bestSeparation = minSep
			bestIndex = i
		}
	}
	return bestIndex, bestSeparation
}

// clipVertex carries a clipped point alongside the incident-edge vertex
// index it originated from, for feature-id construction.
type clipVertex struct {
	point vec2.Vec2
	index uint8
}

// clipSegmentToLine is the two-point Sutherland-Hodgman clip against a
// single half-plane (normal, offset), ported from
// ByteArena-box2d__CollisionB2Collision.go's B2ClipSegmentToLine.
func clipSegmentToLine(in [2]clipVertex, normal vec2.Vec2, offset float64) ([2]clipVertex, int) {
	var out [2]clipVertex
	count := 0

	d0 := normal.Dot(in[0].point) - offset
	d1 := normal.Dot(in[1].point) - offset

	if d0 <= 0 {
		out[count] = in[0]
		count++
	}
	if d1 <= 0 {
		out[count] = in[1]
		count++
	}
	if d0*d1 < 0 {
		interp := d0 / (d0 - d1)
		out[count] = clipVertex{
			point: in[0].point.Add(in[1].point.Sub(in[0].point).Scale(interp)),
			index: in[1].index,
		}
		count++
	}
	return out, count
}

func collideBoxBox(a Transform, sa shape.Shape, b Transform, sb shape.Shape) (contact.Manifold, bool) {
	polyA := buildBoxPolygon(a, sa)
	polyB := buildBoxPolygon(b, sb)

	edgeA, sepA := findMaxSeparation(polyA, polyB)
	edgeB, sepB := findMaxSeparation(polyB, polyA)

	if sepA > 0 || sepB > 0 {
		return contact.Manifold{}, false
	}

	var refPoly, incPoly boxPolygon
	var refEdge int
	var flip bool
	const tolerance = 0.1

	if sepB > sepA+tolerance {
		refPoly, incPoly = polyB, polyA
		refEdge = edgeB
		flip = true
	} else {
		refPoly, incPoly = polyA, polyB
		refEdge = edgeA
		flip = false
	}

	refNormal := refPoly.normals[refEdge]

	// Find incident edge: the incident polygon's edge most anti-parallel
	// to the reference normal.
	incEdge := 0
	minDot := math.MaxFloat64
	for i := 0; i < 4; i++ {
		d := refNormal.Dot(incPoly.normals[i])
		if d < minDot {
			minDot = d
			incEdge = i
		}
	}

	i1 := incEdge
	i2 := (incEdge + 1) % 4
	inSeg := [2]clipVertex{
		{point: incPoly.vertices[i1], index: uint8(i1)},
		{point: incPoly.vertices[i2], index: uint8(i2)},
	}

	refV1 := refPoly.vertices[refEdge]
	refV2 := refPoly.vertices[(refEdge+1)%4]
	tangent := refV2.Sub(refV1)
	length := tangent.Length()
	if length > 1e-9 {
		tangent = tangent.Scale(1.0 / length)
	}

	// Clip against the two side planes of the reference edge.
	sideOffset1 := -tangent.Dot(refV1)
	clipped1, count1 := clipSegmentToLine(inSeg, tangent.Neg(), sideOffset1)
	if count1 < 2 {
		return contact.Manifold{}, false
	}

	sideOffset2 := tangent.Dot(refV2)
	clipped2, count2 := clipSegmentToLine(clipped1, tangent, sideOffset2)
	if count2 < 2 {
		return contact.Manifold{}, false
	}

	refOffset := refNormal.Dot(refV1)

	var m contact.Manifold
	normal := refNormal
	if flip {
		normal = normal.Neg()
	}
	m.Normal = normal

	count := 0
	for _, cv := range clipped2 {
		separation := refNormal.Dot(cv.point) - refOffset
		if separation > 0.005 {
			continue
		}
		m.Points[count] = cv.point
		m.Penetration[count] = -separation
		if flip {
			m.Features[count] = contact.FeatureID{IndexA: cv.index, IndexB: uint8(refEdge), TypeA: contact.FeatureVertex, TypeB: contact.FeatureFace}
		} else {
			m.Features[count] = contact.FeatureID{IndexA: uint8(refEdge), IndexB: cv.index, TypeA: contact.FeatureFace, TypeB: contact.FeatureVertex}
		}
		count++
		if count == contact.MaxPoints {
			break
		}
	}

	if count == 0 {
		return contact.Manifold{}, false
	}
	m.PointCount = count
	return m, true
}
