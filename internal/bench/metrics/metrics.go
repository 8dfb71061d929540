package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	GradeNotRelevant = 0
	GradeRelevant    = 1
	GradeHighly      = 2
)

// ValidGrade reports whether g is a judgment grade the engine accepts.
func ValidGrade(g int) bool {
	return g >= GradeNotRelevant && g <= GradeHighly
}

type Kind string

const (
	KindNDCG      Kind = "ndcg"
	KindMRR       Kind = "mrr"
	KindRecall    Kind = "recall"
	KindPrecision Kind = "precision"
	KindAP        Kind = "ap"
)

// DefaultCutoff applies when a specifier has no "@k" suffix.
const DefaultCutoff = 10

// Spec names a metric and its rank cutoff, e.g. ndcg@10.
type Spec struct {
	Kind Kind
	K    int
}

var (
	NDCG10   = Spec{Kind: KindNDCG, K: 10}
	MRR10    = Spec{Kind: KindMRR, K: 10}
	Recall50 = Spec{Kind: KindRecall, K: 50}
)

// CoreSpecs are the metrics the pass rule is evaluated on.
var CoreSpecs = []Spec{NDCG10, MRR10, Recall50}

func (s Spec) String() string {
	return fmt.Sprintf("%s@%d", s.Kind, s.K)
}

// ParseSpec parses "name@k" (or "name", which uses DefaultCutoff).
func ParseSpec(raw string) (Spec, error) {
	name, cutoff, hasCutoff := strings.Cut(strings.TrimSpace(raw), "@")
	kind := Kind(strings.ToLower(name))

	switch kind {
	case KindNDCG, KindMRR, KindRecall, KindPrecision, KindAP:
	default:
		return Spec{}, fmt.Errorf("unsupported metric %q", name)
	}

	if !hasCutoff {
		return Spec{Kind: kind, K: DefaultCutoff}, nil
	}
	if cutoff == "" {
		return Spec{}, fmt.Errorf("invalid metric specifier %q", raw)
	}
	k, err := strconv.Atoi(cutoff)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid cutoff in metric %q: %w", raw, err)
	}
	if k <= 0 {
		return Spec{}, fmt.Errorf("cutoff must be positive in metric %q", raw)
	}
	return Spec{Kind: kind, K: k}, nil
}

// ParseSpecs parses a list of specifiers, dropping duplicates but keeping order.
func ParseSpecs(raw []string) ([]Spec, error) {
	seen := make(map[Spec]bool, len(raw))
	specs := make([]Spec, 0, len(raw))
	for _, r := range raw {
		s, err := ParseSpec(r)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		specs = append(specs, s)
	}
	return specs, nil
}

// WithCore returns specs with any missing core spec appended.
func WithCore(specs []Spec) []Spec {
	out := make([]Spec, 0, len(specs)+len(CoreSpecs))
	seen := make(map[Spec]bool, len(specs))
	for _, s := range specs {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range CoreSpecs {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// Compute evaluates the metric for one query's ranking. MRR and recall always
// treat grade >= GradeRelevant as relevant; relevanceThreshold applies to
// precision and AP only. A threshold below GradeRelevant is raised to it.
func (s Spec) Compute(ranked []string, grades map[string]int, relevanceThreshold int) float64 {
	relevanceThreshold = max(relevanceThreshold, GradeRelevant)
	switch s.Kind {
	case KindNDCG:
		return NDCGAtK(ranked, grades, s.K)
	case KindMRR:
		return ReciprocalRankAtK(ranked, grades, s.K, GradeRelevant)
	case KindRecall:
		return RecallAtK(ranked, grades, s.K, GradeRelevant)
	case KindPrecision:
		return PrecisionAtK(ranked, grades, s.K, relevanceThreshold)
	case KindAP:
		return AveragePrecisionAtK(ranked, grades, s.K, relevanceThreshold)
	default:
		return 0
	}
}

// ScoreSet maps a canonical specifier ("ndcg@10") to its value.
type ScoreSet map[string]float64

func (s ScoreSet) Get(spec Spec) float64 {
	return s[spec.String()]
}

func ComputeAll(ranked []string, grades map[string]int, specs []Spec, relevanceThreshold int) ScoreSet {
	scores := make(ScoreSet, len(specs))
	for _, s := range specs {
		scores[s.String()] = s.Compute(ranked, grades, relevanceThreshold)
	}
	return scores
}
