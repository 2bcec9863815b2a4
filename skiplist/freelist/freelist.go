package freelist

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

const (
	maxLevel = 16
	nilRef   = -1
)

var seedCounter atomic.Uint32

type node struct {
	value   skiplist.V
	forward []int // nil 表示這個 slot 目前是空位
}

// FLSkipList 與 arena 版語意相同，但刪除時不壓實：空出的 slot 進入
// free list，由之後的插入重用，索引因此保持穩定，刪除為攤銷 O(log n)。
type FLSkipList struct {
	nodes       []node
	free        []int // 可重用的空位，LIFO
	headForward [maxLevel + 1]int
	level       int
	size        int
	rngState    uint32
}

func New() *FLSkipList {
	sl := &FLSkipList{}
	counter := seedCounter.Add(1)
	addr := uint32(uintptr(unsafe.Pointer(sl)))
	sl.init((counter*31 ^ addr) | 1)
	return sl
}

// NewWithSeed 以指定種子建立空的 skip list，供測試與重現用
func NewWithSeed(seed uint32) *FLSkipList {
	sl := &FLSkipList{}
	sl.init(seed | 1)
	return sl
}

func (sl *FLSkipList) init(seed uint32) {
	for i := range sl.headForward {
		sl.headForward[i] = nilRef
	}
	sl.rngState = seed
}

func (sl *FLSkipList) nextRandom() uint32 {
	x := sl.rngState
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	sl.rngState = x
	return x
}

func (sl *FLSkipList) randomLevel() int {
	lvl := 0
	for lvl < maxLevel && sl.nextRandom()%2 == 0 {
		lvl++
	}
	return lvl
}

// alloc 優先重用 free list 的空位，否則在尾端擴充
func (sl *FLSkipList) alloc(nd node) int {
	if n := len(sl.free); n > 0 {
		idx := sl.free[n-1]
		sl.free = sl.free[:n-1]
		sl.nodes[idx] = nd
		return idx
	}
	sl.nodes = append(sl.nodes, nd)
	return len(sl.nodes) - 1
}

func (sl *FLSkipList) getForward(ref, level int) int {
	if ref == nilRef {
		return sl.headForward[level]
	}
	fw := sl.nodes[ref].forward
	if level >= len(fw) {
		return nilRef
	}
	return fw[level]
}

func (sl *FLSkipList) setForward(ref, level, target int) {
	if ref == nilRef {
		sl.headForward[level] = target
		return
	}
	sl.nodes[ref].forward[level] = target
}

func (sl *FLSkipList) findUpdate(target skiplist.V) [maxLevel + 1]int {
	var update [maxLevel + 1]int
	cur := nilRef
	for level := sl.level; level >= 0; level-- {
		for next := sl.getForward(cur, level); next != nilRef && sl.nodes[next].value < target; next = sl.getForward(cur, level) {
			cur = next
		}
		update[level] = cur
	}
	return update
}

// Insert 插入 value，若已存在則不做任何事
func (sl *FLSkipList) Insert(value skiplist.V) {
	update := sl.findUpdate(value)

	if next := sl.getForward(update[0], 0); next != nilRef && sl.nodes[next].value == value {
		return
	}

	newLevel := sl.randomLevel()
	if newLevel > sl.level {
		for l := sl.level + 1; l <= newLevel; l++ {
			update[l] = nilRef
		}
		sl.level = newLevel
	}

	nd := node{value: value, forward: make([]int, newLevel+1)}
	for l := 0; l <= newLevel; l++ {
		nd.forward[l] = sl.getForward(update[l], l)
	}
	newIdx := sl.alloc(nd)
	for l := 0; l <= newLevel; l++ {
		sl.setForward(update[l], l, newIdx)
	}
	sl.size++
}

// Search 回傳 value 是否存在
func (sl *FLSkipList) Search(value skiplist.V) bool {
	cur := nilRef
	for level := sl.level; level >= 0; level-- {
		for {
			next := sl.getForward(cur, level)
			if next == nilRef || sl.nodes[next].value > value {
				break
			}
			if sl.nodes[next].value == value {
				return true
			}
			cur = next
		}
	}
	return false
}

// Delete 移除 value，回傳是否真的移除。slot 進入 free list，不重編索引
func (sl *FLSkipList) Delete(value skiplist.V) bool {
	update := sl.findUpdate(value)

	target := sl.getForward(update[0], 0)
	if target == nilRef || sl.nodes[target].value != value {
		return false
	}

	height := len(sl.nodes[target].forward) - 1
	for l := 0; l <= height; l++ {
		sl.setForward(update[l], l, sl.nodes[target].forward[l])
	}

	sl.nodes[target] = node{} // forward=nil 標記空位
	sl.free = append(sl.free, target)
	sl.size--

	for sl.level > 0 && sl.headForward[sl.level] == nilRef {
		sl.level--
	}
	return true
}

func (sl *FLSkipList) Len() int {
	return sl.size
}

func (sl *FLSkipList) IsEmpty() bool {
	return sl.size == 0
}

func (sl *FLSkipList) GetMaxStats() (int, int) {
	return sl.size, sl.level
}

func (sl *FLSkipList) GetHead() skiplist.Nodelike {
	return nodeRef{sl: sl, idx: nilRef}
}

type nodeRef struct {
	sl  *FLSkipList
	idx int
}

func (r nodeRef) GetValue() skiplist.V {
	if r.idx == nilRef {
		return math.MinInt64 // head 的哨兵值
	}
	return r.sl.nodes[r.idx].value
}

func (r nodeRef) GetLevel() int32 {
	if r.idx == nilRef {
		return maxLevel
	}
	return int32(len(r.sl.nodes[r.idx].forward) - 1)
}

func (r nodeRef) GetNextAt(level int32) skiplist.Nodelike {
	if level < 0 {
		return nil
	}
	next := nilRef
	if r.idx == nilRef {
		if int(level) <= maxLevel {
			next = r.sl.headForward[level]
		}
	} else {
		fw := r.sl.nodes[r.idx].forward
		if int(level) < len(fw) {
			next = fw[level]
		}
	}
	if next == nilRef {
		return nil
	}
	return nodeRef{sl: r.sl, idx: next}
}
