package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/veda-client/pkg/veda/client"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	prepareEvents bool
	eventID       string
	watch         bool
)

var putCmd = &cobra.Command{
	Use:   "put [glob]...",
	Short: "Store individuals read from json files",
	Long: `Store the individuals found in the json files matching the glob patterns.
A file holds either a single individual or an array of individuals. Patterns
support ** to match any number of directories.

With --watch the files are stored again whenever they change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		files, err := expandPatterns(args)
		if err != nil {
			return err
		}

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		err = putFiles(ctx, c, files, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if watch {
			return watchFiles(ctx, c, files, cmd.OutOrStdout())
		}

		return nil
	},
}

// expandPatterns returns the absolute paths of all files matching any of the patterns
func expandPatterns(patterns []string) ([]string, error) {
	files := []string{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}

		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(files, abs) {
				files = append(files, abs)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %v", patterns)
	}

	slices.Sort(files)

	return files, nil
}

func readIndividuals(path string) ([]*individuals.Individual, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	b = bytes.TrimSpace(b)

	if bytes.HasPrefix(b, []byte("[")) {
		return individuals.NewFromSlice(b)
	}

	i, err := individuals.NewFromJSON(b)
	if err != nil {
		return nil, err
	}

	return []*individuals.Individual{i}, nil
}

func putFile(ctx context.Context, c client.VedaClient, path string, w io.Writer) error {
	list, err := readIndividuals(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(list) == 0 {
		return nil
	}

	params := eventParams()

	var opID int64

	if len(list) == 1 {
		result, err := c.PutIndividual(ctx, list[0], params...)
		if err != nil {
			return fmt.Errorf("failed to put %s: %w", list[0].URI(), err)
		}
		opID = result.OpID
	} else {
		result, err := c.PutIndividuals(ctx, list, params...)
		if err != nil {
			return fmt.Errorf("failed to put individuals from %s: %w", path, err)
		}
		opID = result.OpID
	}

	fmt.Fprintf(w, "%s: %d stored (op_id %d)\n", path, len(list), opID)

	return nil
}

// putFiles stops at the first file that fails. Files stored before that are kept.
func putFiles(ctx context.Context, c client.VedaClient, files []string, w io.Writer) error {
	for _, f := range files {
		err := putFile(ctx, c, f, w)
		if err != nil {
			return err
		}
	}
	return nil
}

// watchFiles stores a file again each time it is written, until the context is cancelled
func watchFiles(ctx context.Context, c client.VedaClient, files []string, w io.Writer) error {
	logger := logging.GetFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := []string{}
	for _, f := range files {
		dir := filepath.Dir(f)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	// editors often replace files instead of writing them, so the directories are watched
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", "path", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			path := filepath.Clean(event.Name)
			if !slices.Contains(files, path) {
				continue
			}

			err := putFile(ctx, c, path, w)
			if err != nil {
				logger.Error("failed to store changed file", "path", path, "err", err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err.Error())
		}
	}
}

// eventParams only asks for events when --prepare-events is given
func eventParams() []client.RequestDecoratorFunc {
	params := []client.RequestDecoratorFunc{client.EventID(eventID)}
	if prepareEvents {
		params = append(params, client.PrepareEvents(true))
	}
	return params
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().BoolVar(&prepareEvents, "prepare-events", false, "Let the platform notify subscribers")
	putCmd.Flags().StringVar(&eventID, "event-id", "", "Event id to attach to the changes")
	putCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Store the files again when they change")
}
