package balance

import (
	"math/rand"
	"sort"
	"time"
)

// TwoDimensionalGreedy balances replica counts along two dimensions, in
// priority order:
//
//  1. per-table skew: every table's replicas should spread evenly across the
//     tablet servers;
//  2. total skew: the per-server replica totals should spread evenly too.
//
// A cluster is balanced when every table skew and the total skew are all at
// most one. While some table has skew of two or more, the algorithm moves a
// replica of that table from its most loaded server to its least loaded one.
// Only when all tables are flat does it look at the totals, moving a replica
// of whichever table the most loaded server holds more of than the least
// loaded one; such a table always exists, and moving it never worsens any
// table skew.
type TwoDimensionalGreedy struct {
	rng   *rand.Rand
	limit int

	info ClusterInfo
	have bool
}

// Option tweaks a TwoDimensionalGreedy at construction time.
type Option func(*TwoDimensionalGreedy)

// WithRand supplies the random source used for tie-breaking, letting tests
// seed it.
func WithRand(rng *rand.Rand) Option {
	return func(g *TwoDimensionalGreedy) { g.rng = rng }
}

// WithMoveLimit caps the number of moves a single NextMoves call returns.
// Zero means no cap: plan all the way to a balanced state.
func WithMoveLimit(n int) Option {
	return func(g *TwoDimensionalGreedy) { g.limit = n }
}

// NewTwoDimensionalGreedy builds the algorithm with the given options.
func NewTwoDimensionalGreedy(opts ...Option) *TwoDimensionalGreedy {
	g := &TwoDimensionalGreedy{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Refresh replaces the model the next planning pass works from.
func (g *TwoDimensionalGreedy) Refresh(info ClusterInfo) {
	g.info = info
	g.have = true
}

// IsBalanced reports whether the last refreshed model needs no moves.
func (g *TwoDimensionalGreedy) IsBalanced() bool {
	if !g.have {
		return false
	}
	for _, t := range g.info.Tables {
		if TableSkew(t, g.info.Servers) > 1 {
			return false
		}
	}
	return TotalSkew(g.info) <= 1
}

// NextMoves plans a batch of replica moves against the last refreshed model.
// The model itself is not modified; planning runs against a scratch copy, so
// repeated calls return equivalent batches. An empty batch means balanced.
func (g *TwoDimensionalGreedy) NextMoves() []TableReplicaMove {
	if !g.have || len(g.info.Servers) < 2 {
		return nil
	}
	st := newGreedyState(g.info)
	var moves []TableReplicaMove
	for g.limit <= 0 || len(moves) < g.limit {
		mv, ok := st.nextMove(g.rng)
		if !ok {
			break
		}
		st.apply(mv)
		moves = append(moves, mv)
	}
	return moves
}

// greedyState is the mutable scratch model a planning pass works on.
type greedyState struct {
	servers []string                  // sorted
	ids     []string                  // table IDs, sorted
	counts  map[string]map[string]int // table -> server -> replicas
	totals  map[string]int
}

func newGreedyState(info ClusterInfo) *greedyState {
	st := &greedyState{
		servers: append([]string(nil), info.Servers...),
		counts:  make(map[string]map[string]int, len(info.Tables)),
		totals:  make(map[string]int, len(info.Servers)),
	}
	sort.Strings(st.servers)
	for _, s := range st.servers {
		st.totals[s] = 0
	}
	for _, t := range info.Tables {
		cnt := make(map[string]int, len(t.ReplicasByServer))
		for s, n := range t.ReplicasByServer {
			cnt[s] = n
			st.totals[s] += n
		}
		st.counts[t.ID] = cnt
		st.ids = append(st.ids, t.ID)
	}
	sort.Strings(st.ids)
	return st
}

func (st *greedyState) skew(tableID string) int {
	cnt := st.counts[tableID]
	lo, hi := cnt[st.servers[0]], cnt[st.servers[0]]
	for _, s := range st.servers[1:] {
		n := cnt[s]
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

func (st *greedyState) totalSkew() int {
	lo, hi := st.totals[st.servers[0]], st.totals[st.servers[0]]
	for _, s := range st.servers[1:] {
		n := st.totals[s]
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

func (st *greedyState) nextMove(rng *rand.Rand) (TableReplicaMove, bool) {
	// Table dimension first: fix the most skewed table.
	worstID, worstSkew := "", 0
	for _, id := range st.ids {
		if sk := st.skew(id); sk > worstSkew {
			worstID, worstSkew = id, sk
		}
	}
	if worstSkew >= 2 {
		return st.tableMove(worstID, rng), true
	}
	if st.totalSkew() >= 2 {
		return st.totalMove(rng)
	}
	return TableReplicaMove{}, false
}

// tableMove evens out one table: a replica leaves the server holding the most
// replicas of the table and lands on the one holding the fewest. Ties are
// broken by the server totals (unload the busiest, fill the idlest), then at
// random.
func (st *greedyState) tableMove(tableID string, rng *rand.Rand) TableReplicaMove {
	cnt := st.counts[tableID]
	var maxServers, minServers []string
	maxN, minN := cnt[st.servers[0]], cnt[st.servers[0]]
	for _, s := range st.servers {
		switch n := cnt[s]; {
		case n > maxN:
			maxN, maxServers = n, nil
		case n < minN:
			minN, minServers = n, nil
		}
		if cnt[s] == maxN {
			maxServers = append(maxServers, s)
		}
		if cnt[s] == minN {
			minServers = append(minServers, s)
		}
	}
	src := pickByTotal(maxServers, st.totals, true, rng)
	dst := pickByTotal(minServers, st.totals, false, rng)
	return TableReplicaMove{TableID: tableID, From: src, To: dst}
}

// totalMove evens out the per-server totals. The moved table is the one the
// source holds more replicas of than the destination, maximizing the count
// difference so the table dimension never regresses.
func (st *greedyState) totalMove(rng *rand.Rand) (TableReplicaMove, bool) {
	src := pickByTotal(st.servers, st.totals, true, rng)
	dst := pickByTotal(st.servers, st.totals, false, rng)
	bestID, bestDiff := "", 0
	for _, id := range st.ids {
		if d := st.counts[id][src] - st.counts[id][dst]; d > bestDiff {
			bestID, bestDiff = id, d
		}
	}
	if bestID == "" {
		return TableReplicaMove{}, false
	}
	return TableReplicaMove{TableID: bestID, From: src, To: dst}, true
}

func (st *greedyState) apply(mv TableReplicaMove) {
	cnt := st.counts[mv.TableID]
	cnt[mv.From]--
	if cnt[mv.From] <= 0 {
		delete(cnt, mv.From)
	}
	cnt[mv.To]++
	st.totals[mv.From]--
	st.totals[mv.To]++
}

// pickByTotal narrows the candidates to those with the highest (or lowest)
// total replica count and picks uniformly at random among the remainder.
func pickByTotal(cands []string, totals map[string]int, highest bool, rng *rand.Rand) string {
	best := totals[cands[0]]
	for _, s := range cands[1:] {
		if n := totals[s]; (highest && n > best) || (!highest && n < best) {
			best = n
		}
	}
	var narrowed []string
	for _, s := range cands {
		if totals[s] == best {
			narrowed = append(narrowed, s)
		}
	}
	if len(narrowed) == 1 {
		return narrowed[0]
	}
	return narrowed[rng.Intn(len(narrowed))]
}
