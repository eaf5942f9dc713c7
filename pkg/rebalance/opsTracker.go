package rebalance

import "github.com/google/btree"

// serverOpsItem orders tablet servers by in-flight operation count, then by
// ID, so a tree of them yields the least loaded servers first.
type serverOpsItem struct {
	ops int
	id  string
}

func (a serverOpsItem) Less(b btree.Item) bool {
	o := b.(serverOpsItem)
	if a.ops != o.ops {
		return a.ops < o.ops
	}
	return a.id < o.id
}

// opsTracker counts in-flight move operations per tablet server. A move
// counts against both its source and its destination. Next to the plain
// counts it maintains a tree ordered by (count, server ID), so the scheduler
// can walk servers from least to most loaded without rescanning.
type opsTracker struct {
	count map[string]int
	order *btree.BTree
}

func newOpsTracker() *opsTracker {
	return &opsTracker{
		count: make(map[string]int),
		order: btree.New(8),
	}
}

// ensure registers a server with zero in-flight operations unless it is
// already tracked. Loading a batch seeds every server the batch touches, so
// idle servers show up in least-loaded walks.
func (t *opsTracker) ensure(id string) {
	if _, ok := t.count[id]; !ok {
		t.count[id] = 0
		t.order.ReplaceOrInsert(serverOpsItem{ops: 0, id: id})
	}
}

// load returns the in-flight operation count of a server; untracked servers
// count as zero.
func (t *opsTracker) load(id string) int {
	return t.count[id]
}

func (t *opsTracker) adjust(id string, delta int) {
	old, ok := t.count[id]
	if !ok {
		old = 0
	} else {
		t.order.Delete(serverOpsItem{ops: old, id: id})
	}
	n := old + delta
	if n < 0 {
		n = 0
	}
	t.count[id] = n
	t.order.ReplaceOrInsert(serverOpsItem{ops: n, id: id})
}

// moveScheduled records a move leaving src for dst.
func (t *opsTracker) moveScheduled(src, dst string) {
	t.adjust(src, 1)
	t.adjust(dst, 1)
}

// moveCompleted records the end of a move between src and dst, successful or
// not.
func (t *opsTracker) moveCompleted(src, dst string) {
	t.adjust(src, -1)
	t.adjust(dst, -1)
}

// ascend walks the tracked servers from least to most loaded; fn returning
// false stops the walk.
func (t *opsTracker) ascend(fn func(id string, ops int) bool) {
	t.order.Ascend(func(i btree.Item) bool {
		it := i.(serverOpsItem)
		return fn(it.id, it.ops)
	})
}
