package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/philipparndt/gohoneycomb/internal/datfile"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/philipparndt/gohoneycomb/pkg/honeycomb"
	"github.com/philipparndt/gohoneycomb/pkg/watcher"
)

func loadChannels(filename string) (geometry.Points, []*honeycomb.Channel, error) {
	lattice, err := datfile.ReadFile(filename)
	if err != nil {
		return geometry.Points{}, nil, err
	}
	channels, err := honeycomb.SplitIntoChannels(lattice, cfg.Split)
	if err != nil {
		return lattice, nil, err
	}
	return lattice, channels, nil
}

func pickChannel(channels []*honeycomb.Channel, index int) (*honeycomb.Channel, error) {
	if index < 0 || index >= len(channels) {
		return nil, fmt.Errorf("channel %d out of range, found %d channels", index, len(channels))
	}
	return channels[index], nil
}

// runWatched runs fn once and, when watch is set, again after every change
// of one of the files until ctx is cancelled.
func runWatched(ctx context.Context, watch bool, files []string, fn func() error) error {
	if err := fn(); err != nil && !watch {
		return err
	} else if err != nil {
		logger.Error("run failed", "error", err)
	}
	if !watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(200*time.Millisecond, logger)
	if err != nil {
		return err
	}
	rerun := make(chan string, 1)
	if err := fw.Watch(files, func(path string) {
		select {
		case rerun <- path:
		default:
		}
	}); err != nil {
		fw.Close()
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- fw.Run(ctx) }()
	logger.Info("watching for changes", "files", files)
	for {
		select {
		case path := <-rerun:
			logger.Info("input changed, running again", "path", path)
			if err := fn(); err != nil {
				logger.Error("run failed", "error", err)
			}
		case err := <-errc:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
