package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hupe1980/kubesplit/internal/config"
	"github.com/hupe1980/kubesplit/internal/logging"
	"github.com/hupe1980/kubesplit/internal/output"
	"github.com/hupe1980/kubesplit/pkg/kubesplit"
)

// runSplit reads the manifest stream from the command's input, groups it and
// writes one file per group.
func runSplit(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	format, err := output.DefaultRegistry().Format(cfg.Format)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	res, err := kubesplit.SplitReader(ctx, cmd.InOrStdin(),
		kubesplit.WithCollisionPolicy(kubesplit.CollisionPolicy(cfg.OnCollision)),
		kubesplit.WithExcludeKinds(cfg.ExcludeKinds...),
		kubesplit.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	files, err := output.Plan(res.Groups, cfg.OutputDir, format)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), cfg)

	if cfg.DryRun {
		for _, f := range files {
			p.planned(f.Path)
		}

		return nil
	}

	if err := output.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}

	newWriter := func(path string) output.Writer {
		return output.NewFileWriter(path, output.WithLogger(logger))
	}

	if err := output.WriteFiles(files, format, newWriter, func(f output.File) { p.wrote(f.Path) }); err != nil {
		return err
	}

	logger.Debug("split complete",
		slog.Int("documents", res.Documents),
		slog.Int("files", len(files)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("collisions", len(res.Collisions)),
	)

	return nil
}

// printer emits the per-file confirmation lines on stdout.
type printer struct {
	out     io.Writer
	quiet   bool
	success *color.Color
}

func newPrinter(out io.Writer, cfg *config.Config) *printer {
	success := color.New(color.FgGreen)
	if cfg.NoColor {
		success.DisableColor()
	}

	return &printer{out: out, quiet: cfg.Quiet, success: success}
}

func (p *printer) wrote(path string) {
	if p.quiet {
		return
	}

	_, _ = p.success.Fprintf(p.out, "Wrote %s\n", path)
}

func (p *printer) planned(path string) {
	_, _ = fmt.Fprintf(p.out, "Would write %s\n", path)
}
