package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tocconv/common"
	"tocconv/config"
	"tocconv/state"
	"tocconv/toc"
)

// ErrFileNotFound is returned when input file does not exist or cannot be
// opened for reading.
var ErrFileNotFound = errors.New("input file not found")

// Run is the convert command action: reads SOURCE in format "from" and writes
// DESTINATION in format "to".
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	from, err := common.ParseFormat(cmd.String("from"))
	if err != nil {
		return fmt.Errorf("unsupported source format: %w", err)
	}
	to, err := common.ParseFormat(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("unsupported destination format: %w", err)
	}

	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if len(dst) == 0 {
		return errors.New("no destination has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst),
		zap.Stringer("from", from), zap.Stringer("to", to))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, from, to, log)
}

// Show is the show command action: reads SOURCE in format "from" and prints
// its tree.
func Show(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("show")

	from, err := common.ParseFormat(cmd.String("from"))
	if err != nil {
		return fmt.Errorf("unsupported source format: %w", err)
	}

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	t, err := readToc(src, from, readOptions(env.Cfg), log)
	if err != nil {
		return err
	}
	storeTree(env.Rpt, t, log)

	var out io.Writer = os.Stdout
	if w := cmd.Root().Writer; w != nil {
		out = w
	}
	if err := t.Dump(out); err != nil {
		return fmt.Errorf("unable to print table of contents: %w", err)
	}
	return nil
}

// process handles the core conversion logic independently of CLI framework.
// Destination is not touched until source has been parsed successfully.
func process(ctx context.Context, src, dst string, from, to common.Format, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	t, err := readToc(src, from, readOptions(env.Cfg), log)
	if err != nil {
		return err
	}
	log.Debug("Table of contents parsed", zap.Int("entries", t.Count()), zap.Int("depth", t.Depth()))

	if err := env.Rpt.StoreCopy("source"+from.Ext(), src); err != nil {
		log.Warn("Unable to store source in report", zap.String("file", src), zap.Error(err))
	}
	storeTree(env.Rpt, t, log)

	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := buildDocument(t, to, &env.Cfg.Document)
	if err != nil {
		return err
	}
	if err := writeDocument(dst, doc, env.Cfg.Document.Indent, env.Overwrite, log); err != nil {
		return err
	}

	if err := env.Rpt.StoreCopy("result"+to.Ext(), dst); err != nil {
		log.Warn("Unable to store result in report", zap.String("file", dst), zap.Error(err))
	}
	return nil
}

func readOptions(cfg *config.Config) toc.ReadOptions {
	return toc.ReadOptions{TrimText: cfg.Document.TrimText}
}

// readToc opens and parses input file. Missing, inaccessible files and
// directories are reported as ErrFileNotFound.
func readToc(path string, format common.Format, opts toc.ReadOptions, log *zap.Logger) (*toc.Toc, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("unable to open input: %w", err)
	}
	defer f.Close()

	if fi, err := f.Stat(); err != nil {
		return nil, fmt.Errorf("unable to access input: %w", err)
	} else if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	var t *toc.Toc
	switch format {
	case common.FormatNcx:
		t, err = toc.ReadNCX(f, opts, log)
	case common.FormatXhtml:
		t, err = toc.ReadXHTML(f, opts, log)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s source (%s): %w", format, path, err)
	}
	return t, nil
}

func buildDocument(t *toc.Toc, format common.Format, conf *config.DocumentConfig) (*etree.Document, error) {
	switch format {
	case common.FormatNcx:
		return toc.NCXDocument(t, toc.NCXHeader{
			UID:       conf.NCX.UID,
			Title:     conf.NCX.Title,
			PageCount: conf.NCX.PageCount,
		}), nil
	case common.FormatXhtml:
		return toc.XHTMLDocument(t, toc.XHTMLHeader{
			Title:   conf.XHTML.Title,
			Heading: conf.XHTML.Heading,
		}), nil
	}
	return nil, fmt.Errorf("unsupported destination format: %s", format)
}

// writeDocument serializes document into temporary file next to destination
// and renames it into place.
func writeDocument(path string, doc *etree.Document, indent int, overwrite bool, log *zap.Logger) (err error) {
	if fi, err := os.Stat(path); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("destination is a directory: %s", path)
		}
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", path)
		}
		log.Warn("Overwriting existing file", zap.String("file", path))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to access destination: %w", err)
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if err = toc.WriteDocument(tmp, doc, indent); err != nil {
		return multierr.Append(fmt.Errorf("unable to write output: %w", err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("unable to set output permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("unable to move output into place: %w", err)
	}
	log.Debug("Output written", zap.String("file", path))
	return nil
}

// storeTree puts human readable dump of parsed tree into debug report.
func storeTree(rpt *config.Report, t *toc.Toc, log *zap.Logger) {
	if rpt == nil {
		return
	}
	buf := new(bytes.Buffer)
	if err := t.Dump(buf); err != nil {
		log.Warn("Unable to dump table of contents", zap.Error(err))
		return
	}
	rpt.StoreData("toc.txt", buf.Bytes())
}
