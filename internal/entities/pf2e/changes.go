package pf2e

// Change describes one applied mutation
type Change struct {
	Kind   MutationKind
	Target string
	Before any
	After  any
	Detail map[string]int
}

// ChangeListener observes mutations. Listeners run synchronously after the
// mutation is applied and must not mutate the character.
type ChangeListener func(c *Character, change Change)

// Subscribe registers a listener and returns a function that removes it
func (c *Character) Subscribe(listener ChangeListener) (unsubscribe func()) {
	if c.listeners == nil {
		c.listeners = make(map[int]ChangeListener)
	}
	id := c.nextSubID
	c.nextSubID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

func (c *Character) notify(change Change) {
	for i := 0; i < c.nextSubID; i++ {
		if listener, ok := c.listeners[i]; ok {
			listener(c, change)
		}
	}
}
