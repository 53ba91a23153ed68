// Package pipeline orchestrates one full scoring pass over a country's
// customer snapshot: aggregation, RFM scoring, segment classification
// and the summary cross-tab.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/aggregate"
	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
	"github.com/maralthesage/RFM-Pipeline/internal/scoring"
)

// Input is one country's immutable snapshot.
type Input struct {
	Customers []model.RawCustomerRecord
	Orders    []model.OrderRecord
	// PriorGroups carries the previous run's segment label per customer
	// id. Used only for the cross-tab, never for scoring.
	PriorGroups map[string]string
}

// Options controls a run.
type Options struct {
	// Reference is the "today" of the run. It is an explicit parameter
	// on purpose: the engine never reads the wall clock itself.
	Reference time.Time
	Country   string
	// Workers bounds the scoring worker pool; 0 means GOMAXPROCS.
	Workers int
	// Progress, when set, is called after each scored customer.
	Progress func(done, total int)
}

// Result is the outcome of one full pass.
type Result struct {
	Country      string
	PeriodNumber int
	Reference    time.Time
	Profiles     []*model.CustomerProfile
	Summary      []SummaryRow
	Totals       []TotalRow
}

// Run executes one complete batch pass. A run either completes fully or
// returns an error; there is no partial-result resumption.
func Run(in Input, opts Options) (*Result, error) {
	info, err := period.ForCountry(opts.Reference, opts.Country)
	if err != nil {
		return nil, fmt.Errorf("resolve half-year period: %w", err)
	}
	bins := period.NewRecencyBins(opts.Reference)

	profiles := aggregate.Build(in.Customers, in.Orders, aggregate.Options{
		Reference: opts.Reference,
	})

	scoreAll(profiles, bins, info, opts)

	for _, p := range profiles {
		p.PriorGroup = in.PriorGroups[p.CustomerID]
	}

	summary := Summarize(profiles)
	return &Result{
		Country:      opts.Country,
		PeriodNumber: info.Number,
		Reference:    opts.Reference,
		Profiles:     profiles,
		Summary:      summary,
		Totals:       Totals(summary),
	}, nil
}

// scoreAll shards the per-customer scoring across a bounded worker
// pool. Each profile is scored independently; no shared state is
// mutated across customers.
func scoreAll(profiles []*model.CustomerProfile, bins period.RecencyBins, info period.Info, opts Options) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(profiles) {
		workers = len(profiles)
	}
	if workers <= 1 {
		for i, p := range profiles {
			scoring.Apply(p, bins)
			scoring.Classify(p, info, opts.Reference)
			if opts.Progress != nil {
				opts.Progress(i+1, len(profiles))
			}
		}
		return
	}

	var wg sync.WaitGroup
	var done int64
	var mu sync.Mutex
	jobs := make(chan *model.CustomerProfile)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				scoring.Apply(p, bins)
				scoring.Classify(p, info, opts.Reference)
				if opts.Progress != nil {
					mu.Lock()
					done++
					opts.Progress(int(done), len(profiles))
					mu.Unlock()
				}
			}
		}()
	}
	for _, p := range profiles {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
}
