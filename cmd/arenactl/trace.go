package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/pavanmanishd/pagearena"
)

// step records where one allocation of a trace landed.
type step struct {
	Size   int
	Page   int
	Offset int
	Grew   bool
	Err    error
}

func pageSizeAction(c *cli.Context) error {
	n := pagearena.HostPageSize()
	fmt.Fprintf(c.App.Writer, "%d (%s)\n", n, units.BytesSize(float64(n)))
	return nil
}

func traceAction(c *cli.Context) error {
	sizes, err := collectSizes(c.Args(), c.String("file"))
	if err != nil {
		return err
	}
	opts, err := arenaOptions(c.String("page-size"), c.String("limit"), c.String("backing"))
	if err != nil {
		return err
	}

	a, err := pagearena.NewArena(opts...)
	if err != nil {
		return errors.Wrap(err, "create arena")
	}
	defer a.Release()

	steps := replay(a, sizes)
	printSteps(c.App.Writer, steps)
	printPages(c.App.Writer, a)

	if addr := c.String("metrics-addr"); addr != "" {
		return serveMetrics(addr, a)
	}
	return nil
}

func arenaOptions(pageSize, limit, backing string) ([]pagearena.Option, error) {
	b, err := newBacking(backing)
	if err != nil {
		return nil, err
	}
	opts := []pagearena.Option{
		pagearena.WithBacking(b),
		pagearena.WithLogger(log.Logger),
	}
	if pageSize != "" {
		n, err := parseSize(pageSize)
		if err != nil {
			return nil, errors.Wrap(err, "page-size")
		}
		opts = append(opts, pagearena.WithPageSize(n))
	}
	if limit != "" {
		n, err := parseSize(limit)
		if err != nil {
			return nil, errors.Wrap(err, "limit")
		}
		opts = append(opts, pagearena.WithLimit(n))
	}
	return opts, nil
}

// collectSizes gathers sizes from args, then from file if one is given.
func collectSizes(args []string, file string) ([]int, error) {
	var sizes []int
	for _, arg := range args {
		n, err := parseSize(arg)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	if file == "" {
		return sizes, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, "open trace")
	}
	defer f.Close()
	fromFile, err := readSizes(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read trace %s", file)
	}
	return append(sizes, fromFile...), nil
}

// readSizes parses one size per line. Blank lines and lines starting with
// '#' are skipped.
func readSizes(r io.Reader) ([]int, error) {
	var sizes []int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		n, err := parseSize(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		sizes = append(sizes, n)
	}
	return sizes, sc.Err()
}

// parseSize accepts plain byte counts and binary suffixes such as 4k or 16KiB.
func parseSize(s string) (int, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid size %q", s)
	}
	if n < 0 || int64(int(n)) != n {
		return 0, errors.Errorf("size %q out of range", s)
	}
	return int(n), nil
}

// replay performs every allocation in order and works out, from page table
// snapshots, which page and offset served it.
func replay(a *pagearena.Arena, sizes []int) []step {
	steps := make([]step, 0, len(sizes))
	for _, n := range sizes {
		before := a.Pages()
		_, err := a.AllocBytes(n)
		if err != nil {
			steps = append(steps, step{Size: n, Page: -1, Offset: -1, Err: err})
			continue
		}
		steps = append(steps, locate(before, a.Pages(), n))
	}
	return steps
}

func locate(before, after []pagearena.PageInfo, n int) step {
	if len(after) > len(before) {
		return step{Size: n, Page: len(after) - 1, Grew: true}
	}
	for i := range before {
		if after[i].Used != before[i].Used {
			return step{Size: n, Page: i, Offset: before[i].Used}
		}
	}
	// Zero-sized requests are served by the first page without moving it.
	return step{Size: n, Page: 0, Offset: after[0].Used}
}

func printSteps(w io.Writer, steps []step) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSIZE\tPAGE\tOFFSET\tNOTE")
	for i, s := range steps {
		switch {
		case s.Err != nil:
			fmt.Fprintf(tw, "%d\t%d\t-\t-\tfailed: %v\n", i, s.Size, s.Err)
		case s.Grew:
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\tnew page\n", i, s.Size, s.Page, s.Offset)
		default:
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", i, s.Size, s.Page, s.Offset)
		}
	}
	tw.Flush()
}

func printPages(w io.Writer, a *pagearena.Arena) {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tUSED\tCAPACITY\tFREE")
	for i, p := range a.Pages() {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", i, p.Used, p.Capacity, p.Capacity-p.Used)
	}
	tw.Flush()
	m := a.Metrics()
	fmt.Fprintf(w, "\n%d pages, %s of %s in use (%.1f%%)\n",
		m.NumPages, units.BytesSize(float64(m.SizeInUse)), units.BytesSize(float64(m.Capacity)), m.Utilization*100)
}

// serveMetrics exposes the arena on addr until the process is interrupted.
// Allocation has finished by now, so scraping the plain Arena is safe.
func serveMetrics(addr string, a *pagearena.Arena) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(pagearena.NewCollector(a, "trace"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "metrics server")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
