package pregel

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// inbox is one node's message slot. Many senders append under the per-node
// mutex within a superstep; the worker owning the node drains it. Striping
// the lock per node keeps all-to-all fan-in from serializing on a single
// engine-wide lock.
type inbox struct {
	mu     sync.Mutex
	values []float64
}

func (in *inbox) push(value float64) {
	in.mu.Lock()
	in.values = append(in.values, value)
	in.mu.Unlock()
}

// drain takes ownership of the queued values and leaves the slot empty.
func (in *inbox) drain() []float64 {
	in.mu.Lock()
	values := in.values
	in.values = nil
	in.mu.Unlock()
	return values
}

func (in *inbox) pending() bool {
	in.mu.Lock()
	ok := len(in.values) > 0
	in.mu.Unlock()
	return ok
}

// messenger routes values between nodes. In synchronous mode two buffers
// exchange the reader and writer roles at every barrier, so a superstep never
// observes its own sends. In asynchronous mode a single buffer is both read
// and appended to within the same superstep.
type messenger struct {
	async   bool
	buffers [2][]inbox

	// sent counts messages sent in the superstep in flight; the driver rolls
	// it into total at each superstep start.
	sent  atomic.Int64
	total int64
}

func newMessenger(nodeCount int64, async bool) *messenger {
	m := &messenger{async: async}
	m.buffers[0] = make([]inbox, nodeCount)
	if !async {
		m.buffers[1] = make([]inbox, nodeCount)
	}
	return m
}

func (m *messenger) readIndex(superstep int) int {
	if m.async {
		return 0
	}
	return superstep & 1
}

func (m *messenger) writeIndex(superstep int) int {
	if m.async {
		return 0
	}
	return (superstep + 1) & 1
}

// send enqueues a value for the target's next superstep (or the current one
// in asynchronous mode). Safe for concurrent use by all workers.
func (m *messenger) send(superstep int, target int64, value float64) {
	m.buffers[m.writeIndex(superstep)][target].push(value)
	m.sent.Add(1)
}

// drain returns the values queued for a node in the current superstep and
// marks its inbox slot empty.
func (m *messenger) drain(superstep int, node int64) []float64 {
	return m.buffers[m.readIndex(superstep)][node].drain()
}

// pending reports whether a node has undelivered values for the current
// superstep. Used to reactivate halted nodes.
func (m *messenger) pending(superstep int, node int64) bool {
	return m.buffers[m.readIndex(superstep)][node].pending()
}

// beginSuperstep resets the sent flag. Driver-only, called between barriers.
func (m *messenger) beginSuperstep() {
	m.total += m.sent.Swap(0)
}

// anySent reports whether at least one message was sent during the
// just-completed superstep.
func (m *messenger) anySent() bool {
	return m.sent.Load() > 0
}

func (m *messenger) totalSent() int64 {
	return m.total + m.sent.Load()
}

func (m *messenger) sizeBytes() int64 {
	n := int64(len(m.buffers[0]) + len(m.buffers[1]))
	return n * int64(unsafe.Sizeof(inbox{}))
}
