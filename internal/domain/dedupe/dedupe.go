// Package dedupe tracks frame keys already seen while pooling events into one
// timeline. SportVU logs repeat the tail of one event at the head of the next,
// so a bounded window of recent keys is enough to drop the repeats.
package dedupe

// Deduper records seen keys.
type Deduper interface {
	// SeenAndRecord reports whether key was already seen and records it if not.
	SeenAndRecord(key string) bool
	// Size returns the number of keys currently remembered.
	Size() int
}

// windowDeduper remembers keys in insertion order. In bounded mode the oldest
// key is forgotten once maxSize keys are held; maxSize <= 0 means unbounded.
type windowDeduper struct {
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &windowDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *windowDeduper) SeenAndRecord(key string) bool {
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}

	if d.maxSize <= 0 {
		return false
	}
	if len(d.ring) < d.maxSize {
		d.ring = append(d.ring, key)
		return false
	}
	// Full: overwrite the oldest slot.
	delete(d.seen, d.ring[d.next])
	d.ring[d.next] = key
	d.next = (d.next + 1) % d.maxSize
	return false
}

func (d *windowDeduper) Size() int {
	return len(d.seen)
}
