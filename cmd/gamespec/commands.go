package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/promptplay/gamecore/internal/export"
	"github.com/promptplay/gamecore/internal/gamespec"
	"github.com/promptplay/gamecore/internal/project"
	"github.com/promptplay/gamecore/internal/scripting"
	"github.com/promptplay/gamecore/internal/world"
)

// load reads a spec file, or the spec of a project directory.
func (a *app) load(path string) (*world.World, gamespec.Report, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return project.Open(path, a.log).Load()
	}
	return project.LoadFile(path, a.log)
}

func (a *app) document(path string) (*gamespec.Document, error) {
	w, _, err := a.load(path)
	if err != nil {
		return nil, err
	}
	return gamespec.Serialize(w)
}

type validation struct {
	path   string
	report gamespec.Report
	err    error
}

func runValidate(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	// Decoder warnings are printed below; keep them out of the log.
	quiet := &app{cfg: a.cfg, log: a.log.WithOptions(zap.IncreaseLevel(zap.ErrorLevel)), out: a.out}

	results := make([]validation, len(args))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, rep, err := quiet.load(path)
			results[i] = validation{path: path, report: rep, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(a.out, "FAIL %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(a.out, "ok   %s (%d entities, %d warnings)\n", r.path, r.report.Entities, len(r.report.Warnings))
		for _, w := range r.report.Warnings {
			fmt.Fprintf(a.out, "     warning %s\n", w)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d specs invalid", failed, len(results))
	}
	return nil
}

func runFmt(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "rewrite the file in place")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}
	path := fs.Arg(0)
	doc, err := a.document(path)
	if err != nil {
		return err
	}
	if *write {
		return project.WriteFile(path, doc, a.cfg.Project.Indent)
	}
	data, err := gamespec.MarshalJSON(doc, true)
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

func runConvert(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	doc, err := a.document(args[0])
	if err != nil {
		return err
	}
	if err := project.WriteFile(args[1], doc, a.cfg.Project.Indent); err != nil {
		return err
	}
	a.log.Info("spec converted", zap.String("from", args[0]), zap.String("to", args[1]))
	return nil
}

func runFingerprint(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, path := range args {
		doc, err := a.document(path)
		if err != nil {
			return err
		}
		fp, err := gamespec.Fingerprint(doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%016x  %s\n", fp, path)
	}
	return nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	title := fs.String("title", "", "page title (default metadata.title)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return errUsage
	}
	doc, err := a.document(fs.Arg(0))
	if err != nil {
		return err
	}
	f, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	err = export.HTML(f, doc, export.Options{
		Title:        *title,
		RuntimeURL:   a.cfg.Export.RuntimeURL,
		CanvasWidth:  a.cfg.Export.CanvasWidth,
		CanvasHeight: a.cfg.Export.CanvasHeight,
		Credits:      a.cfg.Export.Credits,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	a.log.Info("page exported", zap.String("out", fs.Arg(1)), zap.String("title", export.Title(doc, *title)))
	return nil
}

func runScript(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	eng, err := scripting.NewEngine(a.cfg.Scripting.ScriptsDir, a.log)
	if err != nil {
		return err
	}
	defer eng.Close()

	if a.cfg.Scripting.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Scripting.Timeout)
		defer cancel()
	}
	res, err := eng.BuildFile(ctx, args[0])
	if err != nil {
		return err
	}
	doc, err := gamespec.Serialize(res.World)
	if err != nil {
		return err
	}
	if err := project.WriteFile(args[1], doc, a.cfg.Project.Indent); err != nil {
		return err
	}
	a.log.Info("spec built",
		zap.String("script", filepath.Base(args[0])),
		zap.Int("entities", len(doc.Entities)),
		zap.Int("warnings", len(res.Warnings)))
	return nil
}

func runWatch(ctx context.Context, a *app, args []string) error {
	dir := a.cfg.Project.Dir
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return errUsage
	}
	p := project.Open(dir, a.log)
	p.Indent = a.cfg.Project.Indent
	if _, err := p.SpecPath(); err != nil {
		return err
	}
	a.log.Info("watching project", zap.String("dir", dir), zap.Duration("debounce", a.cfg.Project.WatchInterval))
	return p.Watch(ctx, a.cfg.Project.WatchInterval, func(c project.Change) {
		if c.Err != nil {
			a.log.Error("spec reload failed", zap.String("path", c.Path), zap.Error(c.Err))
			return
		}
		fmt.Fprintf(a.out, "%s  %016x  %s (%d entities)\n",
			time.Now().Format("15:04:05"), c.Fingerprint, c.Path, c.World.Len())
	})
}
