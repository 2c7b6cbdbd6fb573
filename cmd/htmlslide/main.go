// Command htmlslide converts one or more rendered HTML slide pages into a
// single PPTX presentation.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VantageDataChat/htmlslide"
	"github.com/VantageDataChat/htmlslide/pptx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}
}

func newRootCmd() *cobra.Command {
	var (
		outPath       string
		tmpDir        string
		viewportScale float64
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "htmlslide [html files or directory...]",
		Short: "Convert rendered HTML slide pages into a PPTX presentation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Read back through viper so HTMLSLIDE_* environment variables
			// apply when the corresponding flag is not given.
			outPath = viper.GetString("out")
			tmpDir = viper.GetString("tmp-dir")
			viewportScale = viper.GetFloat64("scale")
			verbose = viper.GetBool("verbose")
			configureLogging(verbose)

			paths, err := expandInputs(args)
			if err != nil {
				return err
			}

			presentation := pptx.New()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			for i, p := range paths {
				opts := htmlslide.ConvertOptions{
					TmpDir:        tmpDir,
					ViewportScale: viewportScale,
					Timeouts:      htmlslide.DefaultTimeouts(),
				}
				if i == 0 {
					// pptx.New() already seeds one blank slide; populate it
					// for the first file instead of leaving it stray ahead
					// of the converted deck.
					opts.Slide = presentation.GetActiveSlide()
				}

				log.Info().Str("file", p).Msg("converting")
				result, err := htmlslide.ConvertSlide(ctx, p, presentation, opts, htmlslide.NewChromedpBrowser, htmlslide.SnapshotDOM)
				if err != nil {
					return fmt.Errorf("convert %s: %w", p, err)
				}
				for _, d := range result.Diagnostics {
					log.Warn().Str("file", p).Msg(d.String())
				}
			}

			writer, err := pptx.NewWriter(presentation, pptx.WriterPowerPoint2007)
			if err != nil {
				return fmt.Errorf("create writer: %w", err)
			}
			if err := writer.Save(outPath); err != nil {
				return fmt.Errorf("save %s: %w", outPath, err)
			}

			log.Info().Str("out", outPath).Int("slides", presentation.GetSlideCount()).Msg("wrote presentation")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&outPath, "out", "o", "presentation.pptx", "output PPTX path")
	flags.StringVar(&tmpDir, "tmp-dir", "", "temp directory for raster captures (defaults to OS temp)")
	flags.Float64Var(&viewportScale, "scale", 3, "device scale factor for raster captures")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.SetEnvPrefix("HTMLSLIDE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"out", "tmp-dir", "scale", "verbose"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", a, err)
		}
		if !info.IsDir() {
			paths = append(paths, absPath(a))
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", a, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".html") {
				continue
			}
			paths = append(paths, absPath(filepath.Join(a, e.Name())))
		}
	}
	return paths, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

func configureLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
