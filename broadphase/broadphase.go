// Package broadphase defines the candidate-pair contract shared by the tree
// and grid implementations, and the pair canonicalization spec.md's data
// model requires (unordered {bodyA, bodyB}, min-id first).
package broadphase

import "github.com/0x5844/rigid2d/aabb"

// Pair is an unordered candidate pair, canonicalized with the smaller body
// id first so A-B and B-A collapse to the same value.
type Pair struct {
	A, B uint32
}

// Canonical returns the pair with the smaller id first.
func Canonical(a, b uint32) Pair {
	if a < b {
		return Pair{A: a, B: b}
	}
	return Pair{A: b, B: a}
}

// Key packs a canonical pair into a single dedup key.
func Key(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// Broadphase answers "which pairs of proxies might overlap". Both the
// dynamic tree and the spatial grid implement it; world.World is
// parameterized over this interface so a host can choose either (spec.md
// §2's overview table lists them as budgeted alternatives, not a
// tree-and-grid pipeline).
type Broadphase interface {
	// InsertProxy inserts a new proxy for bodyID with the given fattened
	// AABB and returns a proxy handle stable until Remove/Update.
	InsertProxy(bodyID uint32, box aabb.AABB) int32
	// RemoveProxy releases a proxy handle.
	RemoveProxy(proxyID int32)
	// UpdateProxy re-fits a proxy to a new fattened AABB, returning the
	// (possibly unchanged) proxy handle.
	UpdateProxy(proxyID int32, box aabb.AABB) int32
	// ProxyAABB returns the fattened AABB currently stored for a proxy.
	ProxyAABB(proxyID int32) aabb.AABB
	// QueryPairs emits every candidate pair exactly once, in the
	// implementation's deterministic order.
	QueryPairs() []Pair
	// Clear resets any per-query working state. Both the tree and the grid
	// implement it as a no-op: neither keeps such state between queries,
	// and live proxies are never dropped.
	Clear()
}
