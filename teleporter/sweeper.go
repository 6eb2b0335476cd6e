package teleporter

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SweepConfig holds the bounds of one sweep. DomainMax is the inclusive
// upper bound for r7; the sweep starts at 1 because the source problem
// excludes 0.
type SweepConfig struct {
	DomainMax Word
	Start0    Word
	Start1    Word
	Target    Word
	Workers   int
}

// Match records one r7 whose evaluation hit the target.
type Match struct {
	R7     Word
	Result Word
}

type SweepStats struct {
	Trials  int
	Elapsed time.Duration
}

// Sweeper runs one trial per candidate r7. Trials share nothing but the
// match list: each owns its memo table exclusively, so they can run in
// parallel without locks around the evaluation itself.
type Sweeper struct {
	cfg SweepConfig
	log *logrus.Logger
}

func NewSweeper(cfg SweepConfig, log *logrus.Logger) *Sweeper {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sweeper{cfg: cfg, log: log}
}

// Sweep scans r7 over [1, DomainMax]. It never stops at the first match:
// the whole domain is scanned so the caller can see whether the answer
// is unique. Cancellation is honored between trials; in-flight trials
// finish and their matches are kept.
func (self *Sweeper) Sweep(ctx context.Context) ([]Match, SweepStats, error) {
	start := time.Now()

	var (
		mu      sync.Mutex
		matches []Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(self.cfg.Workers)

	trials := 0
	for i := 1; i <= int(self.cfg.DomainMax); i++ {
		if gctx.Err() != nil {
			break
		}
		r7 := Word(i)
		trials++
		g.Go(func() error {
			self.trial(r7, &mu, &matches)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(matches, func(i, j int) bool { return matches[i].R7 < matches[j].R7 })
	stats := SweepStats{Trials: trials, Elapsed: time.Since(start)}

	if err := ctx.Err(); err != nil {
		self.log.WithFields(logrus.Fields{
			"trials":  stats.Trials,
			"matches": len(matches),
		}).Warn("sweep cancelled")
		return matches, stats, err
	}
	self.log.WithFields(logrus.Fields{
		"trials":  stats.Trials,
		"matches": len(matches),
		"elapsed": stats.Elapsed,
	}).Info("sweep complete")
	return matches, stats, nil
}

func (self *Sweeper) trial(r7 Word, mu *sync.Mutex, matches *[]Match) {
	self.log.WithField("r7", r7).Debug("trial")
	if r7%1024 == 0 {
		self.log.WithField("r7", r7).Info("sweep progress")
	}

	memo := NewMemoize()
	result, err := NewEvaluator(r7, memo).Evaluate(self.cfg.Start0, self.cfg.Start1)
	if err != nil {
		self.log.WithError(err).WithField("r7", r7).Warn("trial aborted")
		return
	}
	if result != self.cfg.Target {
		return
	}

	hits, misses := memo.Stats()
	self.log.WithFields(logrus.Fields{
		"r7":     r7,
		"result": result,
		"states": memo.Size(),
		"hits":   hits,
		"misses": misses,
	}).Info("match")

	mu.Lock()
	*matches = append(*matches, Match{R7: r7, Result: result})
	mu.Unlock()
}

// Search runs a sequential sweep with the given bounds and returns the
// matching r7 values in ascending order.
func Search(ctx context.Context, domainMax, start0, start1, target Word) ([]Word, error) {
	sw := NewSweeper(SweepConfig{
		DomainMax: domainMax,
		Start0:    start0,
		Start1:    start1,
		Target:    target,
		Workers:   1,
	}, nil)
	matches, _, err := sw.Sweep(ctx)
	found := make([]Word, 0, len(matches))
	for _, m := range matches {
		found = append(found, m.R7)
	}
	return found, err
}
