package loadtest

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
)

// AggregatedName labels the row that sums every endpoint.
const AggregatedName = "Aggregated"

// Summary is the computed view of one endpoint's samples.
type Summary struct {
	Name     string
	Requests int
	Failures int
	Min      time.Duration
	Avg      time.Duration
	P50      time.Duration
	P95      time.Duration
	Max      time.Duration
}

// Stats collects request latencies per endpoint name. It is safe for concurrent use.
type Stats struct {
	mu        sync.Mutex
	latencies map[string][]time.Duration
	failures  map[string]int
}

// NewStats returns an empty collector.
func NewStats() *Stats {
	return &Stats{
		latencies: make(map[string][]time.Duration),
		failures:  make(map[string]int),
	}
}

// Record adds one request outcome.
func (s *Stats) Record(name string, latency time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latencies[name] = append(s.latencies[name], latency)
	if failed {
		s.failures[name]++
	}
}

// Summaries returns one row per endpoint sorted by name, followed by the aggregated row.
// The aggregated row is omitted when nothing was recorded.
func (s *Stats) Summaries() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.latencies))
	for name := range s.latencies {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]Summary, 0, len(names)+1)
	var all []time.Duration
	failures := 0
	for _, name := range names {
		samples := s.latencies[name]
		out = append(out, summarize(name, samples, s.failures[name]))
		all = append(all, samples...)
		failures += s.failures[name]
	}
	if len(all) > 0 {
		out = append(out, summarize(AggregatedName, all, failures))
	}
	return out
}

func summarize(name string, samples []time.Duration, failures int) Summary {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	return Summary{
		Name:     name,
		Requests: len(sorted),
		Failures: failures,
		Min:      sorted[0],
		Avg:      sum / time.Duration(len(sorted)),
		P50:      percentile(sorted, 50),
		P95:      percentile(sorted, 95),
		Max:      sorted[len(sorted)-1],
	}
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	rank = max(1, min(rank, len(sorted)))
	return sorted[rank-1]
}

// WriteTable prints the summaries as an aligned table with latencies in milliseconds.
func (s *Stats) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join([]string{"Name", "Requests", "Failures", "Min(ms)", "Avg(ms)", "P50(ms)", "P95(ms)", "Max(ms)", ""}, "\t"))
	for _, sm := range s.Summaries() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			sm.Name, sm.Requests, sm.Failures, ms(sm.Min), ms(sm.Avg), ms(sm.P50), ms(sm.P95), ms(sm.Max))
	}
	return tw.Flush()
}

// Log emits one event per summary row.
func (s *Stats) Log(l zerolog.Logger) {
	for _, sm := range s.Summaries() {
		l.Info().
			Str("event", "loadtest_summary").
			Str("endpoint", sm.Name).
			Int("requests", sm.Requests).
			Int("failures", sm.Failures).
			Dur("min", sm.Min).
			Dur("avg", sm.Avg).
			Dur("p50", sm.P50).
			Dur("p95", sm.P95).
			Dur("max", sm.Max).
			Send()
	}
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.1f", float64(d)/float64(time.Millisecond))
}
