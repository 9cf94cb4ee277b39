package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ericlevine/qrio"
	"github.com/ericlevine/qrio/binarizer"
	"github.com/ericlevine/qrio/diagnostics"
	"github.com/ericlevine/qrio/imageload"
)

type config struct {
	charset   string
	workers   int
	method    binarizer.Method
	threshold uint8
	dumpDir   string
	crop      bool
	verbose   bool
}

type fileResult struct {
	path   string
	result *qrio.Result
	err    error
}

func main() {
	charset := flag.String("charset", "", "character set of byte segments without an ECI designator (default: guess)")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "number of files decoded concurrently")
	method := flag.String("binarize", "fixed", "binarization method: fixed, histogram or local")
	threshold := flag.Uint("threshold", imageload.DefaultThreshold, "luminance at or below which a pixel is dark, for -binarize fixed (0 means the default)")
	dumpDir := flag.String("dump", "", "write an annotated PNG of every scan into this directory")
	crop := flag.Bool("crop", false, "crop annotated images to the symbol")
	verbose := flag.Bool("v", false, "log progress of each stage to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrscan [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(os.Stderr, "Detect and decode a QR code in each image file (PNG, JPEG, GIF, BMP, TIFF, WebP).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	m, err := binarizer.ParseMethod(*method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *threshold > 255 {
		fmt.Fprintf(os.Stderr, "error: threshold %d out of range\n", *threshold)
		os.Exit(1)
	}

	cfg := config{
		charset:   *charset,
		workers:   *workers,
		method:    m,
		threshold: uint8(*threshold),
		dumpDir:   *dumpDir,
		crop:      *crop,
		verbose:   *verbose,
	}
	logger := log.New(io.Discard, "qrscan: ", log.LstdFlags)
	if cfg.verbose {
		logger.SetOutput(os.Stderr)
	}

	exitCode := 0
	results := scanFiles(context.Background(), afero.NewOsFs(), flag.Args(), cfg, logger)
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", r.path, r.err)
			exitCode = 1
			continue
		}
		if len(results) > 1 {
			fmt.Printf("%s: ", r.path)
		}
		fmt.Printf("[%d-%s] %s\n", r.result.Version, r.result.ECLevel, r.result.Text)
	}
	os.Exit(exitCode)
}

// scanFiles decodes paths concurrently and returns their results in order.
func scanFiles(ctx context.Context, fs afero.Fs, paths []string, cfg config, logger *log.Logger) []fileResult {
	loader := &imageload.Loader{Fs: fs, Method: cfg.method, Threshold: cfg.threshold}
	opts := &qrio.Options{CharacterSet: cfg.charset}
	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.workers > 0 {
		g.SetLimit(cfg.workers)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = fileResult{path: path}
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].result, results[i].err = scanFile(fs, loader, path, opts, cfg, logger)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func scanFile(fs afero.Fs, loader *imageload.Loader, path string, opts *qrio.Options, cfg config, logger *log.Logger) (*qrio.Result, error) {
	bitmap, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Printf("%s: loaded %dx%d with %s binarization", path, bitmap.Width(), bitmap.Height(), cfg.method)

	s := qrio.NewScan(bitmap, opts)
	runErr := s.Run()
	logStages(logger, path, s)

	if cfg.dumpDir != "" {
		if err := dump(fs, path, s, cfg); err != nil {
			logger.Printf("%s: dump: %v", path, err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	return s.Result(), nil
}

func logStages(logger *log.Logger, path string, s *qrio.Scan) {
	logger.Printf("%s: %d finder patterns", path, len(s.FinderPatterns()))
	if grid := s.SamplingGrid(); grid != nil {
		logger.Printf("%s: orientation %d, module %.2fx%.2f px, provisional version %d",
			path, grid.Orientation(), grid.BlockWidth(), grid.BlockHeight(), grid.ProvisionalVersion())
	}
	if m := s.Matrix(); m != nil {
		logger.Printf("%s: version %d-%s mask %d", path, m.Version(), m.ECLevel(), m.MaskPattern())
	}
	if d := s.Decoded(); d != nil {
		logger.Printf("%s: %d segments, %d data bytes", path, len(d.Segments), len(d.DataBytes))
	}
}

// dump writes <dir>/<name>.annotated.png. Crop is skipped when no symbol
// was located.
func dump(fs afero.Fs, path string, s *qrio.Scan, cfg config) error {
	if err := fs.MkdirAll(cfg.dumpDir, 0o755); err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".annotated.png"
	opts := diagnostics.Options{
		Features: diagnostics.AllFeatures,
		Crop:     cfg.crop && s.SamplingGrid() != nil,
	}
	return diagnostics.Write(fs, filepath.Join(cfg.dumpDir, name), s, opts)
}
