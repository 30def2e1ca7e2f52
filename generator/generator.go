package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"znkr.io/doxymd/generator/config"
	"znkr.io/doxymd/generator/server"
	"znkr.io/doxymd/generator/site"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Renders all compounds and renders them again whenever the XML changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		s, err := loadSite(cfg, log)
		if err != nil {
			return err
		}
		if err := s.Write(cfg.Output, log); err != nil {
			return err
		}
		return watch(cfg, log, nil, func(s *site.Site) error {
			return s.Write(cfg.Output, log)
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves a preview of the pages without writing any file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		s, err := loadSite(cfg, log)
		if err != nil {
			return err
		}

		server, err := server.Run(cfg.Serve.Addr, s, log)
		if err != nil {
			return err
		}
		defer server.Shutdown(context.Background())
		log.Info("now serving, press Ctrl-C to shut down", "url", "http://"+server.Addr()+cfg.BaseURL)

		return watch(cfg, log, server.Error(), func(s *site.Site) error {
			server.ReplaceSite(s)
			return nil
		})
	},
}

// settle is how long the input has to stay unchanged before the site is reloaded. Doxygen
// rewrites all files on every run.
const settle = 250 * time.Millisecond

// watch reloads the site whenever something in cfg.Input changes and passes it to update. It
// returns when errc yields an error or on Ctrl-C.
func watch(cfg *config.Config, log *slog.Logger, errc <-chan error, update func(*site.Site) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %v", err)
	}
	defer watcher.Close()
	if err := watchDir(watcher, cfg.Input); err != nil {
		return fmt.Errorf("starting watch: %v", err)
	}
	log.Info("watching", "dirs", watcher.WatchList())

	// Setup signals to react to Ctrl-C.
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	reload := time.NewTimer(settle)
	reload.Stop()

	for {
		select {
		case event := <-watcher.Events:
			// Absolutely no need to react to chmod.
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if stat, err := os.Stat(event.Name); err == nil && event.Has(fsnotify.Create) && stat.IsDir() {
				if err := watchDir(watcher, event.Name); err != nil {
					return fmt.Errorf("adding watch: %v", err)
				}
				log.Debug("added watch directory", "dir", event.Name)
			}
			reload.Reset(settle)
		case <-reload.C:
			start := time.Now()
			s, err := site.Load(cfg, log)
			if err != nil {
				log.Error("failed to reload site", "error", err)
				continue
			}
			if err := update(s); err != nil {
				log.Error("failed to update site", "error", err)
				continue
			}
			log.Info("site reloaded", "duration", time.Since(start))
		case err := <-watcher.Errors:
			return fmt.Errorf("watching: %v", err)
		case err := <-errc:
			return err
		case <-sigint:
			fmt.Print("\r") // remove Ctrl-C output characters
			log.Info("received Ctrl-C, shutting down")
			return nil
		}
	}
}

func watchDir(watcher *fsnotify.Watcher, dir string) error {
	walkfn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := watcher.Add(path); err != nil {
				return err
			}
		}
		return nil
	}
	return filepath.WalkDir(dir, walkfn)
}
