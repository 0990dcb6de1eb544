package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/xtding233/chaos-gacha/internal/draw"
	"github.com/xtding233/chaos-gacha/internal/history"
	"github.com/xtding233/chaos-gacha/internal/pool"
)

func cmdDraw(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("draw", stderr)
	var win windowFlags
	win.register(fs)
	category := fs.String("category", string(pool.Random), "Ability, Item, Familiar, Trait, Skill or Random")
	count := fs.Int("count", 1, "number of pulls")
	boost := fs.Bool("boost", false, "spend token points to raise the upgrade chance")
	historyPath := fs.String("history", "", "append results to this history CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := win.resolve(fs, a.cfg)
	if err != nil {
		return err
	}
	cat, err := pool.ParseCategory(*category)
	if err != nil {
		return err
	}

	results, drawErr := a.orchestrator().Draw(draw.Request{Category: cat, Window: w, Count: *count, Boost: *boost})
	for _, r := range results {
		printResult(stdout, r)
	}
	if len(results) < *count && drawErr == nil {
		fmt.Fprintf(stdout, "%d of %d pulls found nothing in range; try widening the window\n", *count-len(results), *count)
	}
	fmt.Fprintf(stdout, "TP balance: %d\n", a.tracker.Points())

	if *historyPath != "" && len(results) > 0 {
		if err := appendHistory(*historyPath, results); err != nil {
			return errors.Join(drawErr, err)
		}
	}
	return drawErr
}

func printResult(w io.Writer, r draw.Result) {
	fmt.Fprintf(w, "[%s] %s  %s  rarity %.2f  luck %.2f%% (%s)\n", r.Category, r.Tier, r.Element, r.Rarity, r.Luck, r.LuckRating)
	if r.Notes != "" {
		fmt.Fprintf(w, "    %s\n", r.Notes)
	}
}

func appendHistory(path string, results []draw.Result) error {
	var recs []history.Record
	if f, err := os.Open(path); err == nil {
		recs, err = history.Read(f)
		f.Close()
		if err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("open history: %w", err)
	}
	for _, r := range results {
		recs = append(recs, history.FromResult(r))
	}
	var buf bytes.Buffer
	if err := history.Write(&buf, recs); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func cmdPoints(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("points", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()
	fmt.Fprintf(stdout, "TP balance: %d\nDistinct pulls: %d\n", a.tracker.Points(), a.tracker.SeenCount())
	return nil
}

func cmdReset(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("reset", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.tracker.ClearAll(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Progression cleared.")
	return nil
}

func cmdReconcile(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("reconcile", stderr)
	historyPath := fs.String("history", "", "history CSV to rebuild progression from (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *historyPath == "" {
		return errors.New("-history is required")
	}
	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(*historyPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	recs, err := history.Read(f)
	f.Close()
	if err != nil {
		return err
	}
	if err := a.tracker.LoadFromLog(history.ToLogEntries(recs)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Reconciled %d records: TP balance %d, %d distinct pulls\n", len(recs), a.tracker.Points(), a.tracker.SeenCount())
	return nil
}

func cmdSimulate(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("simulate", stderr)
	var win windowFlags
	win.register(fs)
	category := fs.String("category", string(pool.Item), "category to simulate (Random is resolved once)")
	trials := fs.Int("trials", 10000, "number of simulated pulls")
	points := fs.Int("points", 0, "token points assumed for the boost chance")
	boost := fs.Bool("boost", false, "apply the point boost")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := win.resolve(fs, a.cfg)
	if err != nil {
		return err
	}
	cat, err := pool.ParseCategory(*category)
	if err != nil {
		return err
	}
	resolved, rep, err := a.orchestrator().Simulate(draw.Request{Category: cat, Window: w, Boost: *boost}, *points, *trials)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s  window %.2f/%.2f/%.2f  trials %d\n", resolved, w.Min, w.Target, w.Max, rep.Trials)
	fmt.Fprintf(stdout, "hit rate  %.4f  (%d hits, %d upgrades)\n", rep.HitRate, rep.Hits, rep.Upgrades)
	fmt.Fprintf(stdout, "attempts  mean %.2f  p90 %.0f  p99 %.0f\n", rep.Attempts.Mean, rep.Attempts.P90, rep.Attempts.P99)
	fmt.Fprintf(stdout, "rarity    mean %.2f  sd %.2f  p50 %.2f  p90 %.2f  p99 %.2f\n",
		rep.Rarity.Mean, rep.Rarity.StdDev, rep.Rarity.P50, rep.Rarity.P90, rep.Rarity.P99)
	tiers := make([]string, 0, len(rep.ByTier))
	for t := range rep.ByTier {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return rep.ByTier[tiers[i]] > rep.ByTier[tiers[j]] })
	for _, t := range tiers {
		fmt.Fprintf(stdout, "  %-14s %d\n", t, rep.ByTier[t])
	}
	return nil
}

func cmdWatch(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("watch", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := pool.NewWatcher(a.pools, func(cat pool.Category) {
		parsed, err := a.pools.Parsed(cat)
		if err != nil {
			a.log.Warn().Err(err).Str("category", string(cat)).Msg("pool unreadable after edit")
			return
		}
		fmt.Fprintf(stdout, "%s reloaded: %d entries, %d skipped\n", cat, len(parsed.Records), len(parsed.Skipped))
	}, a.log)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(stdout, "Watching %s (Ctrl-C to stop)\n", a.cfg.PoolsDir)
	<-ctx.Done()
	return nil
}

func cmdPresets(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("presets", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := c.load()
	if err != nil {
		return err
	}
	for _, p := range cfg.Presets {
		fmt.Fprintf(stdout, "%-10s min %.1f  target %.1f  max %.1f  %s\n", p.Name, p.Window.Min, p.Window.Target, p.Window.Max, p.Color)
	}
	return nil
}

func cmdCheck(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("check", stderr)
	verbose := fs.Bool("v", false, "list every skipped line")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := openApp(c, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	var missing []error
	for _, cat := range pool.Concrete {
		parsed, err := a.pools.Parsed(cat)
		if err != nil {
			fmt.Fprintf(stdout, "%-9s missing (%s)\n", cat, a.pools.Paths().PoolPath(cat))
			missing = append(missing, err)
			continue
		}
		fmt.Fprintf(stdout, "%-9s %d entries, %d skipped, %d orphan lines\n", cat, len(parsed.Records), len(parsed.Skipped), parsed.Orphans)
		if *verbose {
			for _, s := range parsed.Skipped {
				fmt.Fprintf(stdout, "    line %d: %s (%s)\n", s.Line, s.Text, s.Reason)
			}
		}
	}
	return errors.Join(missing...)
}
