package contact

// Impulse is the accumulated normal/tangent impulse at one contact point,
// carried across ticks for warm starting.
type Impulse struct {
	Normal  float64
	Tangent float64
}

// PointKey identifies a contact point across ticks. BodyA/BodyB must be
// passed in the broadphase's canonical (min-id-first) order so the key is
// stable regardless of which body narrowphase happened to call "A".
type PointKey struct {
	BodyA, BodyB uint32
	Feature      FeatureID
}

// Cache holds warm-start impulses. World keeps two: each tick it looks up
// the previous tick's cache while writing into a fresh one, then keeps the
// fresh one for the next tick, so entries for pairs that stop colliding
// are dropped rather than accumulating forever.
type Cache struct {
	impulses map[PointKey]Impulse
}

func NewCache() *Cache {
	return &Cache{impulses: make(map[PointKey]Impulse)}
}

func (c *Cache) Lookup(k PointKey) Impulse {
	return c.impulses[k]
}

func (c *Cache) Store(k PointKey, imp Impulse) {
	c.impulses[k] = imp
}

func (c *Cache) Len() int {
	return len(c.impulses)
}
