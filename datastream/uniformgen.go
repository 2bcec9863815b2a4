package datastream

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

// UniformDataGenerator 產生符合平均分布的取值序列，
// 每個索引出現機率皆相同
type UniformDataGenerator struct {
	n   int
	cdf []float64
	rng *rand.Rand
}

func NewUniformDataGenerator(n int, seed int64) *UniformDataGenerator {
	rng := rand.New(rand.NewSource(seed))
	cdf := make([]float64, n)
	for i := 0; i < n; i++ {
		cdf[i] = float64(i+1) / float64(n)
	}
	return &UniformDataGenerator{
		n:   n,
		cdf: cdf,
		rng: rng,
	}
}

// Next 產生一筆取值 (回傳索引 0~n-1)
func (u *UniformDataGenerator) Next() int {
	r := u.rng.Float64()
	lo, hi := 0, u.n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > u.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// GenerateSequence 產生指定長度的取值序列
func (u *UniformDataGenerator) GenerateSequence(seqLen int) []int {
	seq := make([]int, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = u.Next()
	}
	return seq
}

// GetDistribute 回傳每個取值的機率分布
func (u *UniformDataGenerator) GetDistribute() map[int]float64 {
	result := make(map[int]float64, u.n)
	for i := 0; i < u.n; i++ {
		result[i] = 1.0 / float64(u.n)
	}
	return result
}

func (u *UniformDataGenerator) Close() error {
	return nil
}

func (u *UniformDataGenerator) GetValueMap() map[skiplist.V]float64 {
	result := make(map[skiplist.V]float64, u.n)
	for i := 0; i < u.n; i++ {
		result[skiplist.V(i)] = 1.0 / float64(u.n)
	}
	return result
}

func (u *UniformDataGenerator) GetCDF() []float64 {
	cdf := make([]float64, u.n)
	for i := 0; i < u.n; i++ {
		cdf[i] = float64(i+1) / float64(u.n)
	}
	return cdf
}

func (u *UniformDataGenerator) GetPDF() []float64 {
	pdf := make([]float64, u.n)
	for i := 0; i < u.n; i++ {
		pdf[i] = 1.0 / float64(u.n)
	}
	return pdf
}

func (u *UniformDataGenerator) Entropy() float64 {
	p := 1.0 / float64(u.n)
	return -float64(u.n) * p * math.Log2(p)
}
