package sampling

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Mode selects the strategy applied to the filtered candidates.
type Mode string

const (
	ModeAll          Mode = "all"
	ModeRandom       Mode = "random"
	ModeClassTargets Mode = "class_targets"
)

// Config is the sampling strategy for a dataset build. Seed makes
// random sampling reproducible; zero means a time-derived seed.
type Config struct {
	Mode         Mode           `json:"mode"`
	Count        int            `json:"count,omitempty"`
	ClassTargets map[string]int `json:"class_targets,omitempty"`
	Seed         int64          `json:"seed,omitempty"`
}

// Validate mirrors the backend's constraints so a bad config fails
// before any request is sent.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAll:
		return nil
	case ModeRandom:
		if c.Count <= 0 {
			return fmt.Errorf("random sampling requires a positive count, got %d", c.Count)
		}
		return nil
	case ModeClassTargets:
		if len(c.ClassTargets) == 0 {
			return fmt.Errorf("class-target sampling requires at least one target")
		}
		for class, target := range c.ClassTargets {
			if target <= 0 {
				return fmt.Errorf("class %q: target must be positive, got %d", class, target)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown sampling mode %q", c.Mode)
	}
}

// Candidate is a filtered sample considered for selection.
type Candidate struct {
	ID          string
	ClassCounts map[string]int
}

// Achievement reports how close the selection came to one class target.
type Achievement struct {
	Target int    `json:"target"`
	Actual int    `json:"actual"`
	Status string `json:"status"` // "achieved" or "partial"
}

// Result is the outcome of applying a sampling config.
type Result struct {
	Selected    []Candidate
	Achievement map[string]Achievement
}

// TotalSelected returns the number of selected candidates.
func (r *Result) TotalSelected() int { return len(r.Selected) }

// Select applies the sampling strategy client-side. The build preview
// runs this over the filtered candidates so the user sees the selection
// counts the backend will produce for the same config.
func Select(candidates []Candidate, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	switch cfg.Mode {
	case ModeAll:
		return Result{Selected: candidates}, nil
	case ModeRandom:
		return Result{Selected: randomSample(candidates, cfg.Count, cfg.Seed)}, nil
	default:
		return byClassTargets(candidates, cfg.ClassTargets), nil
	}
}

// randomSample picks count candidates uniformly without replacement.
// If count exceeds the candidate pool, everything is returned. The
// same seed over the same input yields the same selection.
func randomSample(candidates []Candidate, count int, seed int64) []Candidate {
	if count >= len(candidates) {
		out := make([]Candidate, len(candidates))
		copy(out, candidates)
		return out
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	picked := make([]Candidate, len(candidates))
	copy(picked, candidates)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:count]
}

// byClassTargets greedily selects candidates that still contribute to
// an unmet class target, in descending order of total contribution so
// dense samples are preferred.
func byClassTargets(candidates []Candidate, targets map[string]int) Result {
	actual := make(map[string]int, len(targets))

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return contribution(ordered[i], targets) > contribution(ordered[j], targets)
	})

	var selected []Candidate
	for _, c := range ordered {
		needed := false
		for class, target := range targets {
			if c.ClassCounts[class] > 0 && actual[class] < target {
				needed = true
				break
			}
		}
		if !needed {
			continue
		}
		selected = append(selected, c)
		for class := range targets {
			actual[class] += c.ClassCounts[class]
		}
	}

	achievement := make(map[string]Achievement, len(targets))
	for class, target := range targets {
		status := "partial"
		if actual[class] >= target {
			status = "achieved"
		}
		achievement[class] = Achievement{Target: target, Actual: actual[class], Status: status}
	}
	return Result{Selected: selected, Achievement: achievement}
}

func contribution(c Candidate, targets map[string]int) int {
	total := 0
	for class := range targets {
		total += c.ClassCounts[class]
	}
	return total
}
