package attr

// Collection owns a pool of named attribute sets, optionally grouped, that
// Set values can reference by name (§4.A). Named references are invalid
// across collections: resolving one against the wrong Collection reports
// UnknownReference rather than panicking (§7).
type Collection struct {
	named  map[string]*Set
	groups map[string][]string
}

// NewCollection constructs an empty attribute collection.
func NewCollection() *Collection {
	return &Collection{named: make(map[string]*Set)}
}

// AddNamed registers set under name, optionally within group. Re-adding the
// same name replaces the previous definition.
func (c *Collection) AddNamed(name string, set *Set, group string) {
	set.collection = c
	c.named[name] = set
	if group != "" {
		if c.groups == nil {
			c.groups = make(map[string][]string)
		}
		c.groups[group] = append(c.groups[group], name)
	}
}

// Resolve returns the inline-expanded named set, or UnknownReference if
// name is not registered in c.
func (c *Collection) Resolve(name string) (*Set, ResolveError) {
	s, ok := c.named[name]
	if !ok {
		return nil, UnknownReference
	}
	return s, ResolveOK
}

// Names returns every named set in group, in registration order.
func (c *Collection) Names(group string) []string {
	return c.groups[group]
}

// Destroy releases a collection's named sets. Collections are otherwise
// immutable-after-construction from the perspective of readers (§5): once a
// Set has been resolved into a layout, further AddNamed calls on the same
// Collection must not be made concurrently with readers using it.
func (c *Collection) Destroy() {
	c.named = nil
	c.groups = nil
}
