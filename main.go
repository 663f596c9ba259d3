package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"neugym/pkg/engine/input"
	"neugym/pkg/game/generator"
	"neugym/pkg/game/gridworld"
	"neugym/pkg/game/layout"
	"neugym/pkg/game/recorder"
	"neugym/pkg/game/renderer"
	"neugym/pkg/game/reward"
	"neugym/pkg/game/rollout"
	"neugym/pkg/game/server"
	"neugym/pkg/logger"
)

type options struct {
	layout   string
	mode     string
	episodes int
	maxSteps int
	seed     int64
	store    string
	db       string
	export   string
	addr     string
	noColor  bool
	level    int
	gen      string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("neugym", flag.ContinueOnError)
	fs.StringVar(&o.layout, "layout", "layouts/two_rooms.yaml", "world layout file")
	fs.StringVar(&o.mode, "mode", "dump", "one of dump, play, rollout, serve, generate")
	fs.IntVar(&o.episodes, "episodes", 10, "number of rollout episodes")
	fs.IntVar(&o.maxSteps, "max-steps", 200, "step limit per rollout episode")
	fs.Int64Var(&o.seed, "seed", 1, "seed for the reward sampler and the random policy")
	fs.StringVar(&o.store, "store", "memory", "transition store: memory or sqlite")
	fs.StringVar(&o.db, "db", "neugym.db", "sqlite database path")
	fs.StringVar(&o.export, "export", "", "write rollout transitions to this .jsonl.zst file")
	fs.StringVar(&o.addr, "addr", ":8080", "listen address for serve mode")
	fs.BoolVar(&o.noColor, "no-color", false, "disable colours")
	fs.IntVar(&o.level, "level", 1, "difficulty level for generate mode")
	fs.StringVar(&o.gen, "generator", "tree", "layout generator for generate mode: tree or chain")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func initLocale() {
	lang := os.Getenv("LANG")
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		lang = "en_GB"
	}
	gotext.Configure("locales", lang, "default")
}

func main() {
	logger.Init()
	initLocale()

	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		logger.Log.WithError(err).Error("neugym failed")
		os.Exit(1)
	}
}

func buildWorld(o options, log logrus.FieldLogger) (*gridworld.World, error) {
	l, err := layout.Load(o.layout)
	if err != nil {
		return nil, err
	}
	return l.Build(gridworld.WithLogger(log), gridworld.WithSampler(reward.NewRandom(o.seed)))
}

func run(ctx context.Context, o options, out io.Writer) error {
	if o.mode == "generate" {
		return generateLayout(o, out)
	}

	log := logger.Log.WithField("layout", o.layout)
	w, err := buildWorld(o, log)
	if err != nil {
		return err
	}

	switch o.mode {
	case "dump":
		fmt.Fprint(out, renderer.Render(w, renderer.Options{NoColor: o.noColor}))
		fmt.Fprintln(out, renderer.Legend(o.noColor))
		return nil
	case "play":
		in := input.NewReader(os.Stdin, os.Stdout)
		return play(w, in, out, o.noColor, in.IsTerminal())
	case "rollout":
		return runRollout(ctx, w, o, out, log)
	case "serve":
		return serve(ctx, w, o.addr, log)
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
}

func generateLayout(o options, out io.Writer) error {
	g, err := generator.ByName(o.gen)
	if err != nil {
		return err
	}
	l, err := g.Generate(o.level, rand.New(rand.NewSource(o.seed)))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %s, level %d, seed %d\n", g.Name(), o.level, o.seed)
	fmt.Fprint(out, l.String())
	return nil
}

func runRollout(ctx context.Context, w *gridworld.World, o options, out io.Writer, log logrus.FieldLogger) error {
	store, err := recorder.NewStore(o.store, o.db)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Init(ctx); err != nil {
		return err
	}

	r := rollout.Runner{
		World:    w,
		Policy:   rollout.RandomPolicy(o.seed),
		Store:    store,
		MaxSteps: o.maxSteps,
		RunID:    recorder.NewRunID(),
		Log:      log,
	}
	res, err := r.Run(ctx, o.episodes)
	if err != nil {
		return err
	}

	total := 0.0
	for i, ret := range res.Returns {
		fmt.Fprintln(out, gotext.Get("episode %d: return %.3f in %d steps", i, ret, res.Steps[i]))
		total += ret
	}
	if n := len(res.Returns); n > 0 {
		fmt.Fprintln(out, gotext.Get("run %s: mean return %.3f", res.RunID, total/float64(n)))
	}

	if o.export == "" {
		return nil
	}
	ts, err := store.Transitions(ctx, res.RunID)
	if err != nil {
		return err
	}
	if err := recorder.ExportFile(o.export, ts); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": o.export, "transitions": len(ts)}).Info("transitions exported")
	return nil
}

func serve(ctx context.Context, w *gridworld.World, addr string, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", server.New(w, log).Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.WithField("addr", addr).Info("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
