// Package grid implements the uniform spatial hash grid broadphase, grounded
// on the teacher's SpatialGrid (a cell-size hash map keyed by integer cell
// coordinates), generalized to proxy handles and a deterministic row-major
// traversal order so QueryPairs does not depend on Go's randomized map
// iteration order.
package grid

import (
	"sort"

	"github.com/0x5844/rigid2d/aabb"
	"github.com/0x5844/rigid2d/broadphase"
)

type cell struct {
	x, y int32
}

type proxy struct {
	bodyID uint32
	box    aabb.AABB
	cells  []cell
	live   bool
}

// Grid is a fixed-cell-size uniform spatial hash over unbounded integer
// cell coordinates (there is no world rectangle and nothing is clamped).
// QueryPairs builds its dedup set fresh on every call, so Clear has no
// state to reset.
type Grid struct {
	cellSize float64
	proxies  []proxy
	free     []int32
	buckets  map[cell][]int32
}

func New(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		buckets:  make(map[cell][]int32),
	}
}

func (g *Grid) cellOf(x, y float64) cell {
	return cell{x: int32(floorDiv(x, g.cellSize)), y: int32(floorDiv(y, g.cellSize))}
}

func floorDiv(v, size float64) float64 {
	q := v / size
	if q < 0 {
		qi := float64(int64(q))
		if qi != q {
			return qi - 1
		}
		return qi
	}
	return float64(int64(q))
}

func (g *Grid) cellsFor(box aabb.AABB) []cell {
	min := g.cellOf(box.MinX, box.MinY)
	max := g.cellOf(box.MaxX, box.MaxY)
	cells := make([]cell, 0, (max.x-min.x+1)*(max.y-min.y+1))
	for y := min.y; y <= max.y; y++ {
		for x := min.x; x <= max.x; x++ {
			cells = append(cells, cell{x, y})
		}
	}
	return cells
}

func (g *Grid) allocate() int32 {
	if n := len(g.free); n > 0 {
		id := g.free[n-1]
		g.free = g.free[:n-1]
		return id
	}
	g.proxies = append(g.proxies, proxy{})
	return int32(len(g.proxies) - 1)
}

// InsertProxy implements broadphase.Broadphase.
func (g *Grid) InsertProxy(bodyID uint32, box aabb.AABB) int32 {
	id := g.allocate()
	cells := g.cellsFor(box)
	g.proxies[id] = proxy{bodyID: bodyID, box: box, cells: cells, live: true}
	for _, c := range cells {
		g.buckets[c] = append(g.buckets[c], id)
	}
	return id
}

// RemoveProxy implements broadphase.Broadphase.
func (g *Grid) RemoveProxy(proxyID int32) {
	p := &g.proxies[proxyID]
	if !p.live {
		return
	}
	for _, c := range p.cells {
		bucket := g.buckets[c]
		for i, id := range bucket {
			if id == proxyID {
				bucket[i] = bucket[len(bucket)-1]
				bucket = bucket[:len(bucket)-1]
				break
			}
		}
		if len(bucket) == 0 {
			delete(g.buckets, c)
		} else {
			g.buckets[c] = bucket
		}
	}
	p.live = false
	p.cells = nil
	g.free = append(g.free, proxyID)
}

// UpdateProxy implements broadphase.Broadphase.
func (g *Grid) UpdateProxy(proxyID int32, box aabb.AABB) int32 {
	bodyID := g.proxies[proxyID].bodyID
	g.RemoveProxy(proxyID)
	return g.InsertProxy(bodyID, box)
}

// ProxyAABB implements broadphase.Broadphase.
func (g *Grid) ProxyAABB(proxyID int32) aabb.AABB {
	return g.proxies[proxyID].box
}

// Clear implements broadphase.Broadphase. QueryPairs' dedup set is already
// function-local and rebuilt every call, so there is no per-query state on
// Grid itself to reset; proxies and buckets persist across ticks exactly
// like the tree's proxies, since updateBroadphaseProxies only re-fits a
// proxy on a skin violation rather than reinserting it every Step.
func (g *Grid) Clear() {}

// QueryPairs implements broadphase.Broadphase: visits cells in row-major
// (y, then x) order, and within a cell visits proxies in ascending proxy-id
// order, so the output order is deterministic despite Go's randomized map
// iteration.
func (g *Grid) QueryPairs() []broadphase.Pair {
	keys := make([]cell, 0, len(g.buckets))
	for c := range g.buckets {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].x < keys[j].x
	})

	seen := make(map[uint64]bool)
	var pairs []broadphase.Pair

	for _, c := range keys {
		bucket := append([]int32(nil), g.buckets[c]...)
		sort.Slice(bucket, func(i, j int) bool { return bucket[i] < bucket[j] })

		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				pa := g.proxies[bucket[i]]
				pb := g.proxies[bucket[j]]
				if !pa.box.Overlaps(pb.box) {
					continue
				}
				key := broadphase.Key(pa.bodyID, pb.bodyID)
				if seen[key] {
					continue
				}
				seen[key] = true
				pairs = append(pairs, broadphase.Canonical(pa.bodyID, pb.bodyID))
			}
		}
	}

	return pairs
}
