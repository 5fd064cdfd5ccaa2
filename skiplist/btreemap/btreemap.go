package btreemap

import (
	"fmt"

	"github.com/google/btree"

	"github.com/toki5537/skiplab/skiplist"
)

const defaultDegree = 32

// item 實作 btree.Item 介面
type item struct {
	key   skiplist.K
	value skiplist.V
}

func (it *item) Less(than btree.Item) bool {
	return it.key < than.(*item).key
}

// BTreeMap 以 B-tree 實作 List 介面，作為 skip list 的比較基準
type BTreeMap struct {
	tree *btree.BTree
}

func New(degree int) *BTreeMap {
	if degree <= 0 {
		degree = defaultDegree
	}
	return &BTreeMap{tree: btree.New(degree)}
}

func (m *BTreeMap) Search(key skiplist.K) (skiplist.V, bool) {
	got := m.tree.Get(&item{key: key})
	if got == nil {
		return "", false
	}
	return got.(*item).value, true
}

func (m *BTreeMap) Contains(key skiplist.K) bool {
	return m.tree.Has(&item{key: key})
}

// Insert 插入新元素，與 skip list 相同，key 已存在時不做任何事
func (m *BTreeMap) Insert(key skiplist.K, value skiplist.V) {
	if m.tree.Has(&item{key: key}) {
		return
	}
	m.tree.ReplaceOrInsert(&item{key: key, value: value})
}

func (m *BTreeMap) Remove(key skiplist.K) (skiplist.V, bool) {
	got := m.tree.Delete(&item{key: key})
	if got == nil {
		return "", false
	}
	return got.(*item).value, true
}

func (m *BTreeMap) Size() int {
	return m.tree.Len()
}

// Level B-tree 沒有層級概念，固定回報 1
func (m *BTreeMap) Level() int {
	return 1
}

// Dump 輸出與 skip list 相同形狀的列：哨兵一列，之後每個元素一列
func (m *BTreeMap) Dump() []string {
	rows := make([]string, 0, m.tree.Len()+1)
	rows = append(rows, " [  ] ")
	m.tree.Ascend(func(i btree.Item) bool {
		rows = append(rows, fmt.Sprintf(" [ %s ] ", i.(*item).value))
		return true
	})
	return rows
}

// Keys 依鍵值升冪回傳所有 key
func (m *BTreeMap) Keys() []skiplist.K {
	keys := make([]skiplist.K, 0, m.tree.Len())
	m.tree.Ascend(func(i btree.Item) bool {
		keys = append(keys, i.(*item).key)
		return true
	})
	return keys
}
