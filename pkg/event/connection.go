package event

// ScopedConnection disconnects its subscription when closed. Owners keep one
// per subscription whose lifetime matches their own.
type ScopedConnection struct {
	conn *Connection
}

// Scoped wraps c.
func Scoped(c *Connection) *ScopedConnection {
	return &ScopedConnection{conn: c}
}

// Connected reports whether the wrapped subscription is live.
func (s *ScopedConnection) Connected() bool {
	return s != nil && s.conn.Connected()
}

// Release detaches the wrapped Connection without disconnecting it.
func (s *ScopedConnection) Release() *Connection {
	c := s.conn
	s.conn = nil
	return c
}

// Close disconnects the wrapped subscription.
func (s *ScopedConnection) Close() {
	if s == nil {
		return
	}
	s.conn.Disconnect()
	s.conn = nil
}

// ConnectionList collects connections so they can be dropped together.
type ConnectionList struct {
	conns []*Connection
}

// Add records c and returns it.
func (l *ConnectionList) Add(c *Connection) *Connection {
	l.conns = append(l.conns, c)
	return c
}

// Len returns the number of recorded connections that are still live.
func (l *ConnectionList) Len() int {
	n := 0
	for _, c := range l.conns {
		if c.Connected() {
			n++
		}
	}
	return n
}

// DisconnectAll disconnects every recorded connection.
func (l *ConnectionList) DisconnectAll() {
	for _, c := range l.conns {
		c.Disconnect()
	}
	l.conns = nil
}
