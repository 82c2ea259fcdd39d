package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	dferr "dataforge/pkg/error"
	"dataforge/pkg/frame"
	"dataforge/pkg/logging"
)

// Load reads one file and parses it by extension: ".json" or ".csv".
func Load(path string) (*frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return parse(path, data)
}

// LoadFiles reads and parses paths concurrently and returns the frames in
// argument order. The first failure cancels the remaining reads.
func LoadFiles(ctx context.Context, paths ...string) ([]*frame.Frame, error) {
	frames := make([]*frame.Frame, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Load(path)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.WithOp("loader", "LoadFiles").Warn("load failed", "error", err)
		return nil, err
	}
	return frames, nil
}

func parse(path string, data []byte) (*frame.Frame, error) {
	var (
		f   *frame.Frame
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		f, err = FromJSON(data)
	case ".csv":
		f, err = FromCSV(bytes.NewReader(data))
	default:
		return nil, dferr.Newf(dferr.ErrCategoryInput, dferr.CodeUnsupportedType,
			"unsupported file extension %q", ext).
			WithDetail(path).
			WithHint("use a .json or .csv file").
			In("Load", "loader")
	}
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return f, nil
}
