package skiplist

type V = int64

type OrderedSet interface {
	Insert(value V)
	Search(value V) bool
	Delete(value V) bool
	Len() int
	IsEmpty() bool
	GetHead() Nodelike
}

// Analyable 提供分析功能的介面
type Analyable interface {
	OrderedSet
	// GetMaxStats 獲取目前節點數和最高層級
	GetMaxStats() (size int, maxLevel int)
}

// Nodelike 是走訪用的唯讀節點視圖，任何修改操作後即失效
type Nodelike interface {
	GetValue() V
	GetLevel() int32
	GetNextAt(level int32) Nodelike
}
