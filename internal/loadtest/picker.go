package loadtest

import (
	"errors"
	"math/rand/v2"
	"sort"
)

// ErrNoTasks is returned when no task has a positive weight.
var ErrNoTasks = errors.New("loadtest: no task with positive weight")

// Picker chooses tasks with probability proportional to their weight.
type Picker struct {
	tasks []Task
	cum   []int
}

// NewPicker builds a picker. Tasks with a weight <= 0 are never picked.
func NewPicker(tasks []Task) (*Picker, error) {
	p := &Picker{}
	total := 0
	for _, t := range tasks {
		if t.Weight <= 0 {
			continue
		}
		total += t.Weight
		p.tasks = append(p.tasks, t)
		p.cum = append(p.cum, total)
	}
	if total == 0 {
		return nil, ErrNoTasks
	}
	return p, nil
}

// Total is the sum of all positive weights.
func (p *Picker) Total() int {
	return p.cum[len(p.cum)-1]
}

// Pick draws one task using r.
func (p *Picker) Pick(r *rand.Rand) Task {
	return p.tasks[pickIndex(p.cum, r.IntN(p.Total()))]
}

// pickIndex maps n in [0, cum[last]) to the first bucket whose cumulative weight exceeds n.
func pickIndex(cum []int, n int) int {
	return sort.SearchInts(cum, n+1)
}
