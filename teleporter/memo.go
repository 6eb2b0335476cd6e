package teleporter

// Memoize caches sub-problem results for one trial, keyed on the
// (r0, r1) pair. The function's value depends on r7, so a table is only
// valid for the r7 it was populated under; the sweeper builds a fresh
// one per trial and never carries entries across.
type Memoize struct {
	cache      map[uint32]Word
	hits, miss int
}

func NewMemoize() *Memoize {
	return &Memoize{cache: map[uint32]Word{}}
}

// r0 and r1 both fit in 15 bits, so the pair packs into 30.
func memoKey(r0, r1 Word) uint32 {
	return uint32(r0)<<15 | uint32(r1)
}

func (self *Memoize) Get(r0, r1 Word) (Word, bool) {
	v, ok := self.cache[memoKey(r0, r1)]
	if ok {
		self.hits++
	} else {
		self.miss++
	}
	return v, ok
}

func (self *Memoize) Put(r0, r1, v Word) {
	self.cache[memoKey(r0, r1)] = v
}

func (self *Memoize) Size() int {
	return len(self.cache)
}

func (self *Memoize) Stats() (hits, misses int) {
	return self.hits, self.miss
}
