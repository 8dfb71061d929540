package metrics

import (
	"math"
	"sort"
)

// NDCGAtK computes Normalized Discounted Cumulative Gain at rank K.
// DCG = sum((2^rel - 1) / log2(rank+1)) for rank in 1..K; unjudged items count as 0.
// A query with no relevant judgments scores 0.
func NDCGAtK(ranked []string, grades map[string]int, k int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}

	idcg := IdealDCGAtK(grades, k)
	if idcg == 0 {
		return 0
	}

	return DCGAtK(ranked, grades, k) / idcg
}

func DCGAtK(ranked []string, grades map[string]int, k int) float64 {
	n := min(k, len(ranked))
	var dcg float64

	for i := 0; i < n; i++ {
		dcg += gain(grades[ranked[i]]) / discount(i+1)
	}

	return dcg
}

// IdealDCGAtK is the DCG of the best possible ordering of the judged items.
// It copies the grades it sorts and never touches the input map.
func IdealDCGAtK(grades map[string]int, k int) float64 {
	return DCGOfGrades(IdealGrades(grades), k)
}

// IdealGrades returns the positive grades in descending order.
func IdealGrades(grades map[string]int) []int {
	rels := make([]int, 0, len(grades))
	for _, rel := range grades {
		if rel > 0 {
			rels = append(rels, rel)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rels)))
	return rels
}

func DCGOfGrades(rels []int, k int) float64 {
	n := min(k, len(rels))
	var dcg float64
	for i := 0; i < n; i++ {
		dcg += gain(rels[i]) / discount(i+1)
	}
	return dcg
}

func gain(grade int) float64 {
	if grade <= 0 {
		return 0
	}
	return math.Pow(2, float64(grade)) - 1
}

// discount uses a 1-indexed rank.
func discount(rank int) float64 {
	return math.Log2(float64(rank + 1))
}
