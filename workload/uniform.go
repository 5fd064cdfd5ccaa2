package workload

import (
	"math"
	"math/rand"

	"github.com/toki5537/skiplab/skiplist"
)

// Uniform 產生符合平均分布的查詢序列，每個索引出現機率皆相同
type Uniform struct {
	n   int
	rng *rand.Rand
}

func NewUniform(n int, seed int64) *Uniform {
	return &Uniform{
		n:   n,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (u *Uniform) Next() int {
	return u.rng.Intn(u.n)
}

func (u *Uniform) Sequence(k int) []int {
	seq := make([]int, k)
	for i := range seq {
		seq[i] = u.Next()
	}
	return seq
}

func (u *Uniform) KeyProbs() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, u.n)
	for i := 0; i < u.n; i++ {
		result[skiplist.K(i)] = 1.0 / float64(u.n)
	}
	return result
}

func (u *Uniform) Entropy() float64 {
	return math.Log2(float64(u.n))
}
