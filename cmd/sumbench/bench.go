package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"math/rand"
	"runtime"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	"github.com/amikos-tech/pure-strided/native"
	"github.com/amikos-tech/pure-strided/summation"
)

// oraclePrecision is wide enough to hold any sum of float64 values exactly.
const oraclePrecision = 2200

type benchConfig struct {
	sizes      []int
	iterations int
	seed       int64
	dispatcher *native.Dispatcher
}

type method struct {
	name string
	sum  func(values []float64) float64
}

type result struct {
	size    int
	method  string
	perCall time.Duration
	value   float64
	exact   float64
}

func (c benchConfig) validate() error {
	if c.iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.iterations)
	}
	if len(c.sizes) == 0 {
		return errors.New("at least one size is required")
	}
	for _, n := range c.sizes {
		if n <= 0 {
			return fmt.Errorf("sizes must be positive, got %d", n)
		}
	}
	return nil
}

func methods(d *native.Dispatcher) []method {
	return []method{
		{name: "naive", sum: summation.Naive},
		{name: "balanced", sum: func(values []float64) float64 {
			return summation.Balanced(values, 0, 1, len(values))
		}},
		{name: d.State().String(), sum: func(values []float64) float64 {
			return d.Sum(values, 0, len(values))
		}},
	}
}

func inputs(seed int64, sizes []int) [][]float64 {
	out := make([][]float64, len(sizes))
	for i, n := range sizes {
		rng := rand.New(rand.NewSource(seed + int64(n)))
		values := make([]float64, n)
		for j := range values {
			values[j] = rng.Float64()
		}
		out[i] = values
	}
	return out
}

// exactSums computes the reference sums concurrently, one input per goroutine.
func exactSums(ctx context.Context, data [][]float64) ([]float64, error) {
	sums := make([]float64, len(data))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.GOMAXPROCS(0)-1, 1))
	for i, values := range data {
		g.Go(func() error {
			acc := new(big.Float).SetPrec(oraclePrecision)
			term := new(big.Float).SetPrec(oraclePrecision)
			for j, v := range values {
				if j%(1<<16) == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				acc.Add(acc, term.SetFloat64(v))
			}
			sums[i], _ = acc.Float64()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}

func timeMethod(m method, values []float64, iterations int) (time.Duration, float64) {
	var got float64
	start := time.Now()
	for range iterations {
		got = m.sum(values)
	}
	return time.Since(start) / time.Duration(iterations), got
}

func measure(ctx context.Context, cfg benchConfig) ([]result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.dispatcher == nil {
		cfg.dispatcher = native.Fallback()
	}

	data := inputs(cfg.seed, cfg.sizes)
	exact, err := exactSums(ctx, data)
	if err != nil {
		return nil, err
	}

	var results []result
	for i, values := range data {
		for _, m := range methods(cfg.dispatcher) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			perCall, value := timeMethod(m, values, cfg.iterations)
			results = append(results, result{
				size:    len(values),
				method:  m.name,
				perCall: perCall,
				value:   value,
				exact:   exact[i],
			})
		}
	}
	return results, nil
}

func runBench(ctx context.Context, w io.Writer, cfg benchConfig) error {
	results, err := measure(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.dispatcher != nil && cfg.dispatcher.Native() {
		lib := cfg.dispatcher.Library()
		fmt.Fprintf(w, "native kernel %s (version %s)\n\n", lib.Path, lib.Version)
	} else {
		fmt.Fprint(w, "native kernel unavailable, dispatch uses the fallback sum\n\n")
	}

	var data [][]string
	for _, r := range results {
		absErr := math.Abs(r.value - r.exact)
		data = append(data, []string{
			strconv.Itoa(r.size),
			r.method,
			r.perCall.String(),
			strconv.FormatFloat(absErr, 'e', 3, 64),
			strconv.FormatFloat(absErr/math.Abs(r.exact), 'e', 3, 64),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"SIZE", "METHOD", "TIME/OP", "ABS ERROR", "REL ERROR"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
	return nil
}
