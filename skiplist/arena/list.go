package arena

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

const (
	maxLevel = 16

	// nilRef 依上下文表示「無後繼」或「位於 head」，與合法的 arena 索引永不衝突
	nilRef = -1
)

// seedCounter 供預設建構子產生種子，每個 list 實例遞增一次
var seedCounter atomic.Uint32

type node struct {
	value   skiplist.V
	forward []int // 各層後繼的 arena 索引，長度為 height+1
}

// ArenaSkipList 以緊密的 arena 持有所有節點，節點間引用為整數索引。
// 刪除時會壓實 arena 並重編索引，索引不可跨 Delete 呼叫保存。
// 單一執行緒使用，不提供任何內部同步。
type ArenaSkipList struct {
	nodes       []node
	headForward [maxLevel + 1]int
	level       int
	rngState    uint32
}

// New 建立空的 skip list，種子由全域計數器加上實例位址擾動而得
func New() *ArenaSkipList {
	sl := &ArenaSkipList{}
	counter := seedCounter.Add(1)
	// 位址空間隨機化提供額外熵，OR 1 保證種子非零
	addr := uint32(uintptr(unsafe.Pointer(sl)))
	sl.init((counter*31 ^ addr) | 1)
	return sl
}

// NewWithSeed 以指定種子建立空的 skip list，供測試與重現用
func NewWithSeed(seed uint32) *ArenaSkipList {
	sl := &ArenaSkipList{}
	sl.init(seed | 1)
	return sl
}

func (sl *ArenaSkipList) init(seed uint32) {
	for i := range sl.headForward {
		sl.headForward[i] = nilRef
	}
	sl.level = 0
	sl.rngState = seed
}

// nextRandom 是 32-bit xorshift（13/17/5），狀態就地更新
func (sl *ArenaSkipList) nextRandom() uint32 {
	x := sl.rngState
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	sl.rngState = x
	return x
}

// randomLevel 回傳幾何分布的節點高度，範圍 [0, maxLevel]
func (sl *ArenaSkipList) randomLevel() int {
	lvl := 0
	for lvl < maxLevel && sl.nextRandom()%2 == 0 {
		lvl++
	}
	return lvl
}

// getForward 讀取 ref 在指定層的後繼；ref 為 nilRef 時讀 head。
// 損壞的索引會直接造成越界 panic，視為不變量被破壞。
func (sl *ArenaSkipList) getForward(ref, level int) int {
	if ref == nilRef {
		return sl.headForward[level]
	}
	fw := sl.nodes[ref].forward
	if level >= len(fw) {
		return nilRef
	}
	return fw[level]
}

func (sl *ArenaSkipList) setForward(ref, level, target int) {
	if ref == nilRef {
		sl.headForward[level] = target
		return
	}
	sl.nodes[ref].forward[level] = target
}

// findUpdate 執行共用的下降走訪，回傳每層最後一個 value 小於 target 的
// 前驅位置（head 以 nilRef 表示）。只填入 [0, sl.level] 的層。
func (sl *ArenaSkipList) findUpdate(target skiplist.V) [maxLevel + 1]int {
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
func (sl *ArenaSkipList) Insert(value skiplist.V) {
	update := sl.findUpdate(value)

	if next := sl.getForward(update[0], 0); next != nilRef && sl.nodes[next].value == value {
		return // 重複值
	}

	newLevel := sl.randomLevel()
	if newLevel > sl.level {
		// 新增層的前驅必然是 head
		for l := sl.level + 1; l <= newLevel; l++ {
			update[l] = nilRef
		}
		sl.level = newLevel
	}

	newIdx := len(sl.nodes)
	nd := node{value: value, forward: make([]int, newLevel+1)}
	for l := 0; l <= newLevel; l++ {
		nd.forward[l] = sl.getForward(update[l], l)
	}
	sl.nodes = append(sl.nodes, nd)
	for l := 0; l <= newLevel; l++ {
		sl.setForward(update[l], l, newIdx)
	}
}

// Search 回傳 value 是否存在。下降途中遇到相等即提前回傳，
// 不必走到第 0 層。
func (sl *ArenaSkipList) Search(value skiplist.V) bool {
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

// Delete 移除 value，回傳是否真的移除。移除後 arena 會壓實，
// 所有大於被移除位置的索引減一。
func (sl *ArenaSkipList) Delete(value skiplist.V) bool {
	update := sl.findUpdate(value)

	target := sl.getForward(update[0], 0)
	if target == nilRef || sl.nodes[target].value != value {
		return false
	}

	height := len(sl.nodes[target].forward) - 1
	for l := 0; l <= height; l++ {
		sl.setForward(update[l], l, sl.nodes[target].forward[l])
	}

	sl.compact(target)

	for sl.level > 0 && sl.headForward[sl.level] == nilRef {
		sl.level--
	}
	return true
}

// compact 自 arena 移除 removed 位置並重編所有殘留索引。
// 等於 removed 的索引在 splice 後不應存在，仍清除以保持無懸空引用。
func (sl *ArenaSkipList) compact(removed int) {
	sl.nodes = append(sl.nodes[:removed], sl.nodes[removed+1:]...)

	for l := range sl.headForward {
		switch {
		case sl.headForward[l] == removed:
			sl.headForward[l] = nilRef
		case sl.headForward[l] > removed:
			sl.headForward[l]--
		}
	}
	for i := range sl.nodes {
		fw := sl.nodes[i].forward
		for l := range fw {
			switch {
			case fw[l] == removed:
				fw[l] = nilRef
			case fw[l] > removed:
				fw[l]--
			}
		}
	}
}

func (sl *ArenaSkipList) Len() int {
	return len(sl.nodes)
}

func (sl *ArenaSkipList) IsEmpty() bool {
	return len(sl.nodes) == 0
}

func (sl *ArenaSkipList) GetMaxStats() (int, int) {
	return len(sl.nodes), sl.level
}

// GetHead 回傳 head 的唯讀視圖，實現 skiplist.OrderedSet
func (sl *ArenaSkipList) GetHead() skiplist.Nodelike {
	return nodeRef{sl: sl, idx: nilRef}
}

// nodeRef 實作 Nodelike 介面；idx 為 nilRef 時代表 head。
// 僅供診斷走訪使用，list 一經修改即失效。
type nodeRef struct {
	sl  *ArenaSkipList
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
