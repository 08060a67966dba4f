package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"iter"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/jdb"
)

// table is one CSV output file.
type table struct {
	suffix string
	what   string
	header []string
	count  int
	rows   iter.Seq[[]string]
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatOb(ob jdb.Ob) string {
	return strconv.FormatUint(uint64(ob), 10)
}

func eqnRows(eqns iter.Seq[jdb.Eqn]) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for e := range eqns {
			if !yield([]string{formatOb(e.Lhs), formatOb(e.Rhs), formatOb(e.Result)}) {
				return
			}
		}
	}
}

func tables(db *jdb.Database) []table {
	params := [][]string{
		{"ob_count", strconv.Itoa(db.ObCount())},
		{"app_prob", formatFloat(db.AppProb())},
		{"comp_prob", formatFloat(db.CompProb())},
		{"join_prob", formatFloat(db.JoinProb())},
		{"atom_prob", formatFloat(db.AtomProb())},
	}

	return []table{
		{
			suffix: ".params.csv",
			what:   "parameters",
			header: []string{"parameter", "value"},
			count:  len(params),
			rows: func(yield func([]string) bool) {
				for _, p := range params {
					if !yield(p) {
						return
					}
				}
			},
		},
		{".apps.csv", "app equations", []string{"lhs", "rhs", "app"}, db.AppCount(), eqnRows(db.Apps())},
		{".comps.csv", "comp equations", []string{"lhs", "rhs", "comp"}, db.CompCount(), eqnRows(db.Comps())},
		{".joins.csv", "join equations", []string{"lhs", "rhs", "join"}, db.JoinCount(), eqnRows(db.Joins())},
		{
			suffix: ".weights.csv",
			what:   "atom weights",
			header: []string{"ob", "probability"},
			count:  db.WeightCount(),
			rows: func(yield func([]string) bool) {
				for ob, p := range db.AtomProbs() {
					if !yield([]string{formatOb(ob), formatFloat(p)}) {
						return
					}
				}
			},
		},
		{
			suffix: ".names.csv",
			what:   "atom names",
			header: []string{"ob", "name"},
			count:  db.NameCount(),
			rows: func(yield func([]string) bool) {
				for name, ob := range db.Names() {
					if !yield([]string{formatOb(ob), name}) {
						return
					}
				}
			},
		},
	}
}

// export writes every table of db to stem+suffix concurrently.
func export(ctx context.Context, db *jdb.Database, stem string, logger *jdb.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tables(db) {
		path := stem + t.suffix
		g.Go(func() error {
			logger.InfoContext(ctx, "writing table", "table", t.what, "rows", t.count, "path", path)
			return writeTable(ctx, path, t)
		})
	}
	return g.Wait()
}

func writeTable(ctx context.Context, path string, t table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for row := range t.rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
