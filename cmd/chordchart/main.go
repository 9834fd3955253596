// Command chordchart renders Nashville number chord charts,
// written in YAML, to SVG, PNG or PDF images.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/chordchart/canvas"
	"github.com/benoitkugler/chordchart/chartdraw"
	"github.com/benoitkugler/chordchart/chartparse"
	"github.com/benoitkugler/chordchart/chartpdf"
	"github.com/benoitkugler/chordchart/chartraster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds the state shared by the sub commands,
// resolved before running them.
type app struct {
	v      *viper.Viper
	stderr io.Writer

	cfg config
	log *zap.Logger
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chordchart:", err)
		os.Exit(1)
	}
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{v: newViper(), stderr: stderr, log: zap.NewNop()}

	var configFile string
	root := &cobra.Command{
		Use:           "chordchart",
		Short:         "Render chord charts written in the Nashville number system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(configFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(a.newRenderCmd(), a.newRasterizeCmd())
	return root
}

func (a *app) setup(configFile string) error {
	cfg, err := loadConfig(a.v, configFile)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel, a.stderr)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) newRenderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <input.yaml>",
		Short: "Render a chord, measure, measure collection or line chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(args[0], output)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (default: the input with the format extension)")
	flags.Bool("compact", false, "use the compact notation (-, +, °)")
	flags.Bool("diagram", false, "draw standalone chords as diagrams")
	flags.StringP("format", "f", formatSVG, "output format: svg, png or pdf")
	for _, name := range []string{"compact", "diagram", "format"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func (a *app) render(input, output string) error {
	doc, err := chartparse.NewParser(a.log).ParseFile(input)
	if err != nil {
		return err
	}

	r := chartdraw.NewRenderer(chartdraw.Options{Notation: a.cfg.notation(), Diagram: a.cfg.Diagram, Log: a.log})
	if err = r.InitBackground().RenderDocument(doc, chartdraw.StartX, chartdraw.StartY); err != nil {
		return err
	}

	if output == "" {
		output = outputPath(input, a.cfg.Format)
	}
	switch a.cfg.Format {
	case formatPNG:
		err = chartraster.SavePNG(r.Canvas(), output)
	case formatPDF:
		err = chartpdf.SavePDF(r.Canvas(), output)
	default:
		err = r.Save(output)
	}
	if err != nil {
		return err
	}
	a.log.Info("chart rendered", zap.String("input", input), zap.Stringer("kind", doc.Kind),
		zap.String("notation", a.cfg.notation().String()), zap.String("output", output))
	return nil
}

func (a *app) newRasterizeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "rasterize <chart.svg>",
		Short: "Convert an SVG chart produced by render to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.rasterize(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: the input with the .png extension)")
	return cmd
}

func (a *app) rasterize(input, output string) error {
	c, err := canvas.ReadCanvasFile(input, canvas.WarnErrorMode, a.log)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if output == "" {
		output = outputPath(input, formatPNG)
	}
	if err = chartraster.SavePNG(c, output); err != nil {
		return err
	}
	a.log.Info("chart rasterized", zap.String("input", input), zap.String("output", output))
	return nil
}
