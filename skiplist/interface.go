package skiplist

type K = int64
type V = string

// List 鍵值有序映射的共用介面
type List interface {
	// Search 取得 key 對應的 value，不存在時回傳 false
	Search(key K) (V, bool)
	// Insert 插入新元素，key 已存在時不做任何事
	Insert(key K, value V)
	// Remove 刪除 key 並回傳原本的 value，不存在時回傳 false
	Remove(key K) (V, bool)
	Contains(key K) bool
	Size() int
	Level() int
	// Dump 由底層依序輸出每個節點一列，value 依節點高度重複
	Dump() []string
}

// Analyable 提供分析功能的介面
type Analyable interface {
	List
	// Head 取得哨兵節點，供外部走訪各層連結
	Head() Nodelike
}

type Nodelike interface {
	Key() K
	Value() V
	// Height 節點參與的層數，等於 forward 陣列長度
	Height() int
	// Next 取得第 level 層的下一個節點，超出高度時回傳 nil
	Next(level int) Nodelike
}
