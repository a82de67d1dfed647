package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads templates whenever a file in TemplatesDir changes, until ctx
// is done. It returns immediately when templates are embedded.
func (s *Site) Watch(ctx context.Context) error {
	if s.opts.TemplatesDir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(s.opts.TemplatesDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.opts.TemplatesDir, err)
	}
	s.logger.Info("watching templates", "dir", s.opts.TemplatesDir)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("template change detected", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					s.logger.Error("template reload failed", "error", err)
					return
				}
				s.logger.Info("templates reloaded")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.logger.Warn("template watcher overflow")
				continue
			}
			s.logger.Error("template watcher error", "error", err)
		}
	}
}
