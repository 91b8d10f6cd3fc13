package xmlio

// Chain routes callbacks to a stack of handlers. A handler that wants to
// hand a subtree to another handler calls Push from its ElementStart; the
// pushed handler receives every callback inside that element and is popped
// when the element ends. The closing callback of the element itself goes
// back to the handler that pushed.
type Chain struct {
	root  Handler
	stack []chainEntry
	depth int
}

type chainEntry struct {
	handler Handler
	depth   int
}

// NewChain returns a Chain whose outermost handler is root.
func NewChain(root Handler) *Chain {
	return &Chain{root: root}
}

// Push routes the contents of the element currently being started to h.
// It must be called from within ElementStart.
func (c *Chain) Push(h Handler) {
	// depth was already incremented for the element being started
	c.stack = append(c.stack, chainEntry{handler: h, depth: c.depth - 1})
}

func (c *Chain) current() Handler {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1].handler
	}
	return c.root
}

// ElementStart implements Handler.
func (c *Chain) ElementStart(name string, attrs Attributes) error {
	h := c.current()
	c.depth++
	return h.ElementStart(name, attrs)
}

// ElementEnd implements Handler.
func (c *Chain) ElementEnd(name string) error {
	c.depth--
	if n := len(c.stack); n > 0 && c.stack[n-1].depth == c.depth {
		c.stack = c.stack[:n-1]
	}
	return c.current().ElementEnd(name)
}

// Text implements Handler.
func (c *Chain) Text(text string) error {
	return c.current().Text(text)
}
