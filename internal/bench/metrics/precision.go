package metrics

// PrecisionAtK computes the fraction of top-K results that are relevant.
// A document is relevant if its judgment >= relevanceThreshold.
func PrecisionAtK(ranked []string, grades map[string]int, k int, relevanceThreshold int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}

	n := min(k, len(ranked))
	var relevant int

	for i := 0; i < n; i++ {
		if grades[ranked[i]] >= relevanceThreshold {
			relevant++
		}
	}

	return float64(relevant) / float64(k)
}

// RecallAtK computes the fraction of all known relevant items found in top-K.
// Repeated item ids in the ranking are counted once.
func RecallAtK(ranked []string, grades map[string]int, k int, relevanceThreshold int) float64 {
	if k <= 0 || len(ranked) == 0 {
		return 0
	}

	totalRelevant := CountRelevant(grades, relevanceThreshold)
	if totalRelevant == 0 {
		return 0
	}

	n := min(k, len(ranked))
	found := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		if grades[ranked[i]] >= relevanceThreshold {
			found[ranked[i]] = struct{}{}
		}
	}

	return float64(len(found)) / float64(totalRelevant)
}

// CountRelevant counts judged items at or above the threshold.
func CountRelevant(grades map[string]int, threshold int) int {
	var count int
	for _, rel := range grades {
		if rel >= threshold {
			count++
		}
	}
	return count
}
