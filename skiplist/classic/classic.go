package classic

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/toki5537/skiplab/skiplist"
)

const (
	maxLevel    = 32
	probability = 0.5
)

// Coin 擲硬幣用的隨機來源，測試時可注入固定序列
type Coin interface {
	Float64() float64
}

type classicNode struct {
	key   skiplist.K
	value skiplist.V
	next  []*classicNode
}

func newNode(key skiplist.K, value skiplist.V, height int) *classicNode {
	return &classicNode{
		key:   key,
		value: value,
		next:  make([]*classicNode, height),
	}
}

// ClassicSkipList 經典 skip list，head 的 forward 陣列長度恆等於 level
type ClassicSkipList struct {
	head  *classicNode
	level int
	size  int
	coin  Coin
}

func New(seed int64) *ClassicSkipList {
	return NewWithCoin(rand.New(rand.NewSource(seed)))
}

// NewWithCoin 以外部提供的隨機來源建立，空 list 的 level 為 1
func NewWithCoin(coin Coin) *ClassicSkipList {
	return &ClassicSkipList{
		head:  newNode(0, "", 1),
		level: 1,
		coin:  coin,
	}
}

// findWithUpdate 自最高層往下走訪，回傳底層第一個 key 不小於目標的節點。
// update 不為 nil 時記錄每一層的前驅節點（長度須等於 level），
// 即 insert 與 remove 的接合點。
func (sl *ClassicSkipList) findWithUpdate(key skiplist.K, update []*classicNode) *classicNode {
	cur := sl.head
	for i := sl.level - 1; i >= 0; i-- {
		for cur.next[i] != nil && cur.next[i].key < key {
			cur = cur.next[i]
		}
		if update != nil {
			update[i] = cur
		}
	}
	return cur.next[0]
}

// randomHeight 幾何分布抽高度：由 1 起跳，擲硬幣成功則加一，上限 maxLevel
func (sl *ClassicSkipList) randomHeight() int {
	h := 1
	for h < maxLevel && sl.coin.Float64() < probability {
		h++
	}
	return h
}

// growHead 以較高的新哨兵取代 head，搬移既有各層的 forward
func (sl *ClassicSkipList) growHead(newLevel int) {
	old := sl.head
	sl.head = newNode(0, "", newLevel)
	copy(sl.head.next, old.next)
	sl.level = newLevel
}

// Search 取得 key 對應的 value
func (sl *ClassicSkipList) Search(key skiplist.K) (skiplist.V, bool) {
	x := sl.findWithUpdate(key, nil)
	if x != nil && x.key == key {
		return x.value, true
	}
	return "", false
}

// Contains 判斷 key 是否存在
func (sl *ClassicSkipList) Contains(key skiplist.K) bool {
	_, ok := sl.Search(key)
	return ok
}

// Insert 插入新元素，key 已存在時不做任何事
func (sl *ClassicSkipList) Insert(key skiplist.K, value skiplist.V) {
	if _, ok := sl.Search(key); ok {
		return
	}

	h := sl.randomHeight()
	// 先長高再找前驅，新增的頂層前驅即為新 head
	if h > sl.level {
		sl.growHead(h)
	}

	update := make([]*classicNode, sl.level)
	sl.findWithUpdate(key, update)

	n := newNode(key, value, h)
	for i := 0; i < h; i++ {
		n.next[i] = update[i].next[i]
		update[i].next[i] = n
	}
	sl.size++
}

// Remove 刪除 key 並回傳原本的 value，不存在時回傳 false
func (sl *ClassicSkipList) Remove(key skiplist.K) (skiplist.V, bool) {
	update := make([]*classicNode, sl.level)
	x := sl.findWithUpdate(key, update)
	if x == nil || x.key != key {
		return "", false
	}

	for i := 0; i < sl.level; i++ {
		// 前驅不再指向目標表示目標未參與更高層
		if update[i].next[i] != x {
			break
		}
		update[i].next[i] = x.next[i]
	}
	sl.size--

	for sl.level > 1 && sl.head.next[sl.level-1] == nil {
		sl.level--
	}
	sl.head.next = sl.head.next[:sl.level]

	return x.value, true
}

func (sl *ClassicSkipList) Size() int {
	return sl.size
}

func (sl *ClassicSkipList) Level() int {
	return sl.level
}

// Dump 由底層依序輸出每個節點一列（含哨兵），value 依節點高度重複
func (sl *ClassicSkipList) Dump() []string {
	rows := make([]string, 0, sl.size+1)
	for cur := sl.head; cur != nil; cur = cur.next[0] {
		var b strings.Builder
		for range cur.next {
			fmt.Fprintf(&b, " [ %s ] ", cur.value)
		}
		rows = append(rows, b.String())
	}
	return rows
}

func (sl *ClassicSkipList) Head() skiplist.Nodelike {
	return sl.head
}

func (nd *classicNode) Key() skiplist.K {
	return nd.key
}

func (nd *classicNode) Value() skiplist.V {
	return nd.value
}

func (nd *classicNode) Height() int {
	return len(nd.next)
}

func (nd *classicNode) Next(level int) skiplist.Nodelike {
	if level < 0 || level >= len(nd.next) {
		return nil
	}
	if nd.next[level] == nil {
		return nil
	}
	return nd.next[level]
}
