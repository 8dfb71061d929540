package metrics

// AveragePrecisionAtK averages precision at each relevant rank within the top K,
// normalized by min(K, total relevant).
func AveragePrecisionAtK(ranked []string, grades map[string]int, k int, relevanceThreshold int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}

	totalRelevant := CountRelevant(grades, relevanceThreshold)
	if totalRelevant == 0 {
		return 0
	}

	n := min(k, len(ranked))
	var sumPrecision float64
	var relevantSeen int

	for i := 0; i < n; i++ {
		if grades[ranked[i]] >= relevanceThreshold {
			relevantSeen++
			sumPrecision += float64(relevantSeen) / float64(i+1)
		}
	}

	return sumPrecision / float64(min(k, totalRelevant))
}

// ReciprocalRankAtK returns 1/rank of the first relevant item within the top K.
func ReciprocalRankAtK(ranked []string, grades map[string]int, k int, relevanceThreshold int) float64 {
	n := min(k, len(ranked))
	for i := 0; i < n; i++ {
		if grades[ranked[i]] >= relevanceThreshold {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}
