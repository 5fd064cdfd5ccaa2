package workload

import "github.com/toki5537/skiplab/skiplist"

// OpType 表示操作種類
type OpType uint8

const (
	OpQuery OpType = iota
	OpInsert
	OpDelete
)

func (t OpType) String() string {
	switch t {
	case OpQuery:
		return "Query"
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Op 表示一筆操作
type Op struct {
	Type OpType
	Key  skiplist.K
}

// Generator 鍵值產生器的介面
type Generator interface {
	// Next 產生一筆查詢 (回傳索引 0~n-1)
	Next() int
	// Sequence 產生指定長度的查詢序列
	Sequence(k int) []int
	// KeyProbs 回傳每個 key 的出現機率
	KeyProbs() map[skiplist.K]float64
	// Entropy 分布的熵，單位 bit
	Entropy() float64
}

// Stream 以既有的 Op 序列提供順序重播
type Stream struct {
	ops []Op
	pos int
}

// NewStream 由外部供給的操作序列建立，內部保留拷貝
func NewStream(ops []Op) *Stream {
	cp := make([]Op, len(ops))
	copy(cp, ops)
	return &Stream{ops: cp}
}

// Next 回傳下一筆操作，若結束則回傳零值與 false
func (s *Stream) Next() (Op, bool) {
	if s.pos >= len(s.ops) {
		return Op{}, false
	}
	op := s.ops[s.pos]
	s.pos++
	return op, true
}

// Reset 游標重置到起點
func (s *Stream) Reset() { s.pos = 0 }

// Len 操作總筆數
func (s *Stream) Len() int { return len(s.ops) }
