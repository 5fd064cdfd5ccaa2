package workload

import (
	"math"
	"math/rand"

	"github.com/toki5537/skiplab/skiplist"
)

// Zipf 產生符合 Zipf 分布的查詢序列
// weight(i) = 1 / (i+b)^a，正規化後隨機打散到各索引
type Zipf struct {
	n       int
	a, b    float64
	weights []float64
	cdf     []float64
	rng     *rand.Rand
}

func NewZipf(n int, a, b float64, seed int64) *Zipf {
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, n)
	var sum float64
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	for i := range weights {
		weights[i] /= sum
	}
	rng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})

	cdf := make([]float64, n)
	cdf[0] = weights[0]
	for i := 1; i < n; i++ {
		cdf[i] = cdf[i-1] + weights[i]
	}
	return &Zipf{
		n:       n,
		a:       a,
		b:       b,
		weights: weights,
		cdf:     cdf,
		rng:     rng,
	}
}

// Next 產生一筆查詢，對 cdf 做二分搜尋
func (z *Zipf) Next() int {
	r := z.rng.Float64()
	lo, hi := 0, z.n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > z.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (z *Zipf) Sequence(k int) []int {
	seq := make([]int, k)
	for i := range seq {
		seq[i] = z.Next()
	}
	return seq
}

func (z *Zipf) KeyProbs() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, z.n)
	for i := 0; i < z.n; i++ {
		result[skiplist.K(i)] = z.weights[i]
	}
	return result
}

func (z *Zipf) Entropy() float64 {
	h := 0.0
	for _, p := range z.weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
