package physics2d

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// SpaceHash is a uniform grid broad-phase. Each body is binned into every
// cell its bounding box overlaps. Cells are addressed by hashing their
// integer coordinates into a fixed size table, so distant cells may share a
// bin and queries only ever return candidates.
type SpaceHash struct {
	celldim  float64
	table    [][]*Body
	oversize []*Body

	// query stamp, used to report each body once per query
	stamp   uint64
	visited map[*Body]uint64
}

func NewSpaceHash(celldim float64, numCells int) *SpaceHash {
	check(celldim > 0, "SpaceHash cell size must be positive")
	return &SpaceHash{
		celldim: celldim,
		table:   make([][]*Body, nextPrime(numCells)),
		visited: map[*Body]uint64{},
	}
}

func (hash *SpaceHash) hashCell(i, j int64) int {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(i))
	binary.LittleEndian.PutUint64(buf[8:], uint64(j))
	return int(xxhash.Sum64(buf[:]) % uint64(len(hash.table)))
}

// maxCell bounds cell coordinates to integers a float64 holds exactly.
const maxCell = 1 << 52

// cells returns the inclusive cell range covered by bb. ok is false if bb is
// not finite. oversize is set when bb covers more cells than the table has
// bins, in which case the range is not computed.
func (hash *SpaceHash) cells(bb BB) (l, b, r, t int64, oversize, ok bool) {
	for _, x := range [4]float64{bb.L, bb.B, bb.R, bb.T} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, 0, 0, 0, false, false
		}
	}
	dim := hash.celldim
	fl, fb := math.Floor(bb.L/dim), math.Floor(bb.B/dim)
	fr, ft := math.Floor(bb.R/dim), math.Floor(bb.T/dim)
	for _, x := range [4]float64{fl, fb, fr, ft} {
		if !(math.Abs(x) <= maxCell) {
			return 0, 0, 0, 0, true, true
		}
	}
	if (fr-fl+1)*(ft-fb+1) > float64(len(hash.table)) {
		return 0, 0, 0, 0, true, true
	}
	return int64(fl), int64(fb), int64(fr), int64(ft), false, true
}

// Insert bins body by its current bounding box. Bodies covering more cells
// than the table has bins go into a single oversize bin.
func (hash *SpaceHash) Insert(body *Body) {
	l, b, r, t, oversize, ok := hash.cells(body.BB())
	if !ok {
		return
	}
	if oversize {
		if !containsBody(hash.oversize, body) {
			hash.oversize = append(hash.oversize, body)
		}
		return
	}
	for i := l; i <= r; i++ {
		for j := b; j <= t; j++ {
			idx := hash.hashCell(i, j)
			if containsBody(hash.table[idx], body) {
				continue
			}
			hash.table[idx] = append(hash.table[idx], body)
		}
	}
}

func containsBody(bin []*Body, body *Body) bool {
	for _, other := range bin {
		if other == body {
			return true
		}
	}
	return false
}

// Clear empties every bin, keeping their storage.
func (hash *SpaceHash) Clear() {
	for i := range hash.table {
		clear(hash.table[i])
		hash.table[i] = hash.table[i][:0]
	}
	clear(hash.oversize)
	hash.oversize = hash.oversize[:0]
	clear(hash.visited)
}

// Rebuild clears the table and inserts bodies, growing the table first when
// it is small compared to the number of bodies.
func (hash *SpaceHash) Rebuild(bodies []*Body) {
	if len(bodies) > len(hash.table) {
		hash.table = make([][]*Body, nextPrime(2*len(bodies)))
	}
	hash.Clear()
	for _, body := range bodies {
		hash.Insert(body)
	}
}

// Query calls f once for each body binned in a cell that bb overlaps, and
// for every oversize body. A query box covering more cells than the table
// has bins scans every bin instead.
func (hash *SpaceHash) Query(bb BB, f func(body *Body)) {
	l, b, r, t, oversize, ok := hash.cells(bb)
	if !ok {
		return
	}
	hash.stamp++
	stamp := hash.stamp
	visit := func(bin []*Body) {
		for _, body := range bin {
			if hash.visited[body] == stamp {
				continue
			}
			hash.visited[body] = stamp
			f(body)
		}
	}

	if oversize {
		for _, bin := range hash.table {
			visit(bin)
		}
	} else {
		for i := l; i <= r; i++ {
			for j := b; j <= t; j++ {
				visit(hash.table[hash.hashCell(i, j)])
			}
		}
	}
	visit(hash.oversize)
}

var primes = []int{
	5, 13, 23, 47, 97, 193, 389, 769, 1543, 3079, 6151, 12289, 24593,
	49157, 98317, 196613, 393241, 786433, 1572869, 3145739, 6291469,
	12582917, 25165843, 50331653, 100663319, 201326611, 402653189,
	805306457, 1610612741,
}

func nextPrime(n int) int {
	for _, p := range primes {
		if p >= n {
			return p
		}
	}
	return primes[len(primes)-1]
}
