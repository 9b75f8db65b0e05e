package heist

// Countdown identifies the tick stream driving the current level.
//
// Every level start opens a new stream with a fresh ID. The scheduler tags
// each tick it sends with the ID it was started for; ticks carrying any other
// ID, or arriving after Stop, belong to a dead stream and must be dropped.
// That keeps restart and advance from ever leaving two streams on one level.
type Countdown struct {
	id      uint64
	running bool
}

// ID returns the identifier of the current stream.
func (c *Countdown) ID() uint64 {
	return c.id
}

// Running reports whether the current stream is live.
func (c *Countdown) Running() bool {
	return c.running
}

// Accepts reports whether a tick tagged with id should be processed.
func (c *Countdown) Accepts(id uint64) bool {
	return c.running && c.id == id
}

// start opens a new stream.
func (c *Countdown) start() {
	c.id++
	c.running = true
}

// stop closes the current stream. It returns true only if the stream was
// live, so stop side effects run exactly once.
func (c *Countdown) stop() bool {
	if !c.running {
		return false
	}
	c.running = false
	return true
}
