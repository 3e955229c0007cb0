package stats

// Tracked holds a value together with a dirty flag. The flag is raised only
// when Set stores a value different from the current one, and Changed reads
// and clears it. Every mutation goes through Set; there is no accessor
// returning a pointer to the value.
type Tracked[T comparable] struct {
	val     T
	changed bool
}

// NewTracked returns a cell holding v, initially unchanged.
func NewTracked[T comparable](v T) Tracked[T] {
	return Tracked[T]{val: v}
}

// Set stores v and marks the cell changed if v differs from the stored value.
func (t *Tracked[T]) Set(v T) {
	if v == t.val {
		return
	}
	t.val = v
	t.changed = true
}

// Get returns the stored value without touching the dirty flag.
func (t *Tracked[T]) Get() T {
	return t.val
}

// Changed reports whether the value moved since the last call, and clears
// the flag.
func (t *Tracked[T]) Changed() bool {
	c := t.changed
	t.changed = false
	return c
}
