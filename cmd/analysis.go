package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BitPonyLLC/logohue/pkg/cache"
	"github.com/BitPonyLLC/logohue/pkg/chart"
	"github.com/BitPonyLLC/logohue/pkg/corpus"
	"github.com/BitPonyLLC/logohue/pkg/events"
	"github.com/BitPonyLLC/logohue/pkg/logocolor"
	"github.com/BitPonyLLC/logohue/pkg/ranking"
	"github.com/BitPonyLLC/logohue/pkg/termwrap"
	"github.com/BitPonyLLC/logohue/pkg/util"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func init() {
	rootCmd.PersistentFlags().String("chart", "", "write a pie chart PNG here after each analysis ({year} is replaced)")
	viper.BindPFlag("chart", rootCmd.PersistentFlags().Lookup("chart"))

	rootCmd.PersistentFlags().Int("chart-size", chart.DefaultSize, "diameter of the pie chart in pixels")
	viper.BindPFlag("chart-size", rootCmd.PersistentFlags().Lookup("chart-size"))
}

type analysisOptions struct {
	skipMissing bool
	prominent   bool
	progress    io.Writer
}

func classifier() logocolor.Classifier {
	return logocolor.Classifier{SaturationFloor: viper.GetFloat64("saturation-floor")}
}

func rankingYears() ranking.Years {
	return ranking.Years{Min: viper.GetInt("years.min"), Max: viper.GetInt("years.max")}
}

func openCache() (*cache.Cache, error) {
	pathname := viper.GetString("cache")
	if pathname == "" {
		return nil, nil
	}
	return cache.Open(pathname)
}

// progressWriter is stderr when it is a terminal, otherwise nil
func progressWriter() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return os.Stderr
	}
	return nil
}

func analyzeYear(ctx context.Context, year int, opts analysisOptions) (*corpus.Store, error) {
	file, err := rankingYears().FileForYear(year)
	if err != nil {
		return nil, fail(5, err)
	}

	brands, err := ranking.LoadBrandsFile(filepath.Join(viper.GetString("data-dir"), file))
	if err != nil {
		return nil, fail(6, err)
	}

	resultCache, err := openCache()
	if err != nil {
		log.Warn().Err(err).Msg("continuing without cache")
		resultCache = nil
	}

	manager := &events.Manager{}
	if opts.progress != nil {
		watcher := manager.Watch()
		done := make(chan struct{})
		shown := make(chan struct{})

		go func() {
			defer close(shown)
			showProgress(watcher, done, opts.progress)
		}()

		// the last lines must be out before anything else is printed
		defer func() {
			close(done)
			<-shown
			watcher.Stop()
		}()
	}

	ylog := log.With().Int("year", year).Logger()
	runner := corpus.NewRunner(corpus.Options{
		AssetsDir:   viper.GetString("assets-dir"),
		Workers:     viper.GetInt("workers"),
		Classifier:  classifier(),
		SkipMissing: opts.skipMissing,
		Prominent:   opts.prominent,
		Cache:       resultCache,
		Events:      manager,
	}, &ylog)

	store, err := runner.Run(ctx, brands)
	if err != nil {
		return nil, fail(7, "unable to analyze %d: %w", year, err)
	}

	ylog.Info().Int("logos", store.Len()).Int("processed", runner.Processed()).Int("cached", runner.CacheHits()).
		Int("failed", len(store.Failed())).Msg("analyzed")

	return store, nil
}

// showProgress prints each Progress event until done is closed, then prints
// whatever is still buffered on the watcher.
func showProgress(watcher *events.Watcher, done <-chan struct{}, w io.Writer) {
	defer util.LogRecover()

	pp := &progressPrinter{w: w}
	for {
		select {
		case ev := <-watcher.Ch:
			pp.print(ev)
		case <-done:
			for {
				select {
				case ev := <-watcher.Ch:
					pp.print(ev)
				default:
					return
				}
			}
		}
	}
}

// workers may report out of order, so only a higher count is printed
type progressPrinter struct {
	w    io.Writer
	last int
}

func (pp *progressPrinter) print(ev events.Event) {
	p, ok := ev.(events.Progress)
	if !ok || p.Done <= pp.last {
		return
	}

	pp.last = p.Done
	fmt.Fprintf(pp.w, "\ranalysed %d/%d", p.Done, p.Total)
	if p.Finished() {
		fmt.Fprintln(pp.w)
	}
}

func report(w io.Writer, year int, store *corpus.Store) error {
	wrap := tw
	if wrap == nil {
		wrap = termwrap.NewTermWrap(-1, 80, 24)
	}

	tally := store.Tally()
	fmt.Fprint(w, wrap.IndentedParagraph("  ", chart.Summary(tally, year, store.Len()), 40))
	fmt.Fprintln(w)
	fmt.Fprint(w, chart.Breakdown(tally))

	if failed := store.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "%d logos could not be analysed and are not counted\n", len(failed))
	}

	chartPath := viper.GetString("chart")
	if chartPath == "" {
		return nil
	}

	chartPath = strings.ReplaceAll(chartPath, "{year}", strconv.Itoa(year))
	err := chart.SavePie(chartPath, tally, viper.GetInt("chart-size"))
	if err != nil {
		return fail(8, err)
	}

	fmt.Fprintf(w, "Pie chart written to %s\n", chartPath)
	return nil
}
