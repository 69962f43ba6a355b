package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watch runs fn once and again after every write to path until the command
// context is cancelled. Failures of fn are logged and do not stop the watch.
// Editors that replace files on save produce create events, so the parent
// directory is watched rather than the file itself.
func (a *app) watch(cmd *cobra.Command, path string, fn func() error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	run := func() {
		if err := fn(); err != nil {
			a.logger.Error("schema rejected", slog.String("schema", path), slog.Any("error", err))
		}
	}

	run()

	ctx := cmd.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			a.logger.Debug("schema changed", slog.String("schema", path), slog.String("op", event.Op.String()))
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			a.logger.Warn("watch error", slog.Any("error", err))
		}
	}
}
