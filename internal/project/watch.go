package project

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/promptplay/gamecore/internal/gamespec"
	"github.com/promptplay/gamecore/internal/world"
)

// Change is delivered by Watch when the project's spec changes, or fails to
// load after a change.
type Change struct {
	Path        string
	World       *world.World
	Report      gamespec.Report
	Fingerprint uint64
	Err         error
}

// ignored reports editor and atomic-save leftovers that never count as
// project changes.
func ignored(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".tmp")
}

// Watch follows the project directory until ctx is done. Events are
// coalesced: the spec is reloaded once no visible file has changed for
// debounce, and fn is called if the loaded World serializes differently from
// the last good load (or if the load fails). The state at call time is the
// baseline and is not reported.
func (p *Project) Watch(ctx context.Context, debounce time.Duration, fn func(Change)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", p.Dir, err)
	}
	defer watcher.Close()
	if err := watcher.Add(p.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", p.Dir, err)
	}

	var lastSpec uint64
	if base := p.reload(); base.Err == nil {
		lastSpec = base.Fingerprint
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(filepath.Base(ev.Name)) {
				continue
			}
			p.log.Debug("project event", zap.String("name", ev.Name), zap.Stringer("op", ev.Op))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("watch error", zap.String("dir", p.Dir), zap.Error(err))

		case <-fire:
			fire = nil
			ch := p.reload()
			if ch.Err == nil && ch.Fingerprint == lastSpec {
				continue
			}
			if ch.Err == nil {
				lastSpec = ch.Fingerprint
			}
			p.log.Info("spec changed", zap.String("path", ch.Path), zap.Error(ch.Err))
			fn(ch)
		}
	}
}

func (p *Project) reload() Change {
	path, err := p.SpecPath()
	if err != nil {
		return Change{Err: err}
	}
	w, rep, err := LoadFile(path, p.log)
	if err != nil {
		return Change{Path: path, Err: err}
	}
	doc, err := gamespec.Serialize(w)
	if err != nil {
		return Change{Path: path, Err: err}
	}
	fp, err := gamespec.Fingerprint(doc)
	if err != nil {
		return Change{Path: path, Err: err}
	}
	return Change{Path: path, World: w, Report: rep, Fingerprint: fp}
}
