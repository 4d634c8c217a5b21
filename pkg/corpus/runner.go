// Package corpus classifies every logo of a ranked brand list and keeps the
// results in an explicit, caller-owned Store.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/BitPonyLLC/logohue/internal/image_matcher"
	"github.com/BitPonyLLC/logohue/pkg/cache"
	"github.com/BitPonyLLC/logohue/pkg/events"
	"github.com/BitPonyLLC/logohue/pkg/logocolor"
	"github.com/BitPonyLLC/logohue/pkg/ranking"
	"github.com/BitPonyLLC/logohue/pkg/util"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Options control a corpus run.
type Options struct {
	AssetsDir  string
	Workers    int
	Classifier logocolor.Classifier

	// SkipMissing records unreadable logos in the Store instead of failing the run.
	SkipMissing bool
	// Prominent also computes the k-means prominent color of each logo.
	Prominent bool

	Cache  *cache.Cache
	Events *events.Manager
}

// Runner classifies a corpus of logos using a pool of workers.
type Runner struct {
	opts Options
	log  *zerolog.Logger

	done   atomic.Int64
	cached atomic.Int64
}

// NewRunner prepares a Runner. A non-positive worker count uses one per CPU.
func NewRunner(opts Options, log *zerolog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Runner{opts: opts, log: log}
}

// Processed returns how many logos of the current run have been resolved.
func (r *Runner) Processed() int {
	return int(r.done.Load())
}

// CacheHits returns how many logos of the current run came from the cache.
func (r *Runner) CacheHits() int {
	return int(r.cached.Load())
}

// Run classifies the logo of every brand, in parallel, and returns the
// results in rank order. Unless SkipMissing is set, the first logo that
// cannot be loaded or classified stops the run and its error is returned.
func (r *Runner) Run(ctx context.Context, brands []string) (*Store, error) {
	r.done.Store(0)
	r.cached.Store(0)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make([]Entry, len(brands))
	files := ranking.FileNames(brands)
	jobs := make(chan int)

	var firstErr error
	var errOnce sync.Once

	var wg sync.WaitGroup
	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer util.LogRecover()

			for i := range jobs {
				entry := &entries[i]
				entry.Rank = i + 1
				entry.Brand = brands[i]
				entry.File = files[i]

				err := r.classifyRecovered(entry)
				if err != nil {
					entry.Err = err
					if !r.opts.SkipMissing {
						errOnce.Do(func() {
							firstErr = err
							cancel()
						})
					}
				}

				r.report(entry, len(brands))
			}
		}()
	}

feed:
	for i := range brands {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("corpus run interrupted: %w", err)
	}

	if r.opts.Cache != nil {
		err := r.opts.Cache.Save()
		if err != nil {
			r.log.Warn().Err(err).Msg("unable to save cache")
		}
	}

	return NewStore(entries), nil
}

//--------------------------------------------------------------------------------
// private

// classifyRecovered keeps a panicking job from taking its worker down with it.
// The entry is reset so no partial result is counted.
func (r *Runner) classifyRecovered(entry *Entry) (err error) {
	defer func() {
		if p := recover(); p != nil {
			entry.Result = logocolor.LogoResult{Brand: entry.Brand}
			entry.Prominent = ""
			entry.Cached = false
			err = fmt.Errorf("unable to classify %s: %w", entry.File, util.RecoveredError(p))
		}
	}()

	return r.classify(entry)
}

func (r *Runner) classify(entry *Entry) error {
	pathname := filepath.Join(r.opts.AssetsDir, entry.File)
	elog := r.log.With().Int("rank", entry.Rank).Str("brand", entry.Brand).Logger()

	data, err := os.ReadFile(pathname)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", pathname, err)
	}

	var key string
	if r.opts.Cache != nil {
		key = cache.Key(data, r.opts.Classifier)
		if hit, ok := r.opts.Cache.Get(key); ok && (hit.Prominent != "" || !r.opts.Prominent) {
			entry.Result = logocolor.LogoResult{Brand: entry.Brand, Category: hit.Category}
			entry.Prominent = hit.Prominent
			entry.Cached = true
			r.cached.Inc()
			elog.Trace().Str("category", hit.Category.String()).Msg("cached")
			return nil
		}
	}

	img, err := image_matcher.Decode(data)
	if err != nil {
		return fmt.Errorf("unable to decode %s: %w", pathname, err)
	}

	category, err := r.opts.Classifier.ClassifyImage(image_matcher.PixelsOf(img))
	if err != nil {
		return fmt.Errorf("unable to classify %s: %w", pathname, err)
	}

	entry.Result = logocolor.LogoResult{Brand: entry.Brand, Category: category}

	if r.opts.Prominent {
		entry.Prominent, err = image_matcher.ProminentColorOf(img)
		if err != nil {
			elog.Debug().Err(err).Msg("no prominent color")
		}
	}

	if r.opts.Cache != nil {
		r.opts.Cache.Put(key, cache.Entry{Category: category, Prominent: entry.Prominent})
	}

	elog.Debug().Str("category", category.String()).Msg("classified")
	return nil
}

func (r *Runner) report(entry *Entry, total int) {
	done := int(r.done.Inc())

	if entry.Err != nil {
		r.log.Warn().Err(entry.Err).Int("rank", entry.Rank).Str("brand", entry.Brand).Msg("logo failed")
	}

	if r.opts.Events != nil {
		r.opts.Events.Emit(events.Progress{Done: done, Total: total, Brand: entry.Brand, Err: entry.Err})
	}
}
