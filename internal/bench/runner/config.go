package runner

import "github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"

const DefaultRelevanceThreshold = 1

type Config struct {
	// Specs are the metrics computed per query; the core three are always added.
	Specs []metrics.Spec
	// RelevanceThreshold applies to precision and AP; zero means DefaultRelevanceThreshold.
	RelevanceThreshold int
	// Workers bounds per-query parallelism; zero or less means one per CPU.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Specs:              metrics.CoreSpecs,
		RelevanceThreshold: DefaultRelevanceThreshold,
	}
}
