package main

import (
	"strings"

	"github.com/kluelabs/extdev/pkg/extdev/watch"
	"github.com/spf13/viper"
)

// buildWatchSet creates a watch.WatchSet for the given root from the
// flag/config/env values viper has resolved.
func buildWatchSet(root string) *watch.WatchSet {
	var opts []watch.SetOption

	exts := splitList(viper.GetStringSlice("watch.extensions"))
	if len(exts) > 0 {
		opts = append(opts, watch.WithExtensions(exts...))
	}

	ignore := splitList(viper.GetStringSlice("watch.ignore"))
	if len(ignore) > 0 {
		opts = append(opts, watch.WithIgnore(ignore...))
	}

	patterns := splitList(viper.GetStringSlice("watch.ignore_patterns"))
	if len(patterns) > 0 {
		opts = append(opts, watch.WithIgnorePatterns(patterns...))
	}

	return watch.NewSet(root, opts...)
}

// splitList flattens comma-separated entries and trims whitespace.
// Environment variables arrive as a single "a,b,c" string while flags
// arrive pre-split; both normalize to one flat list.
func splitList(values []string) []string {
	var result []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
	}
	return result
}
