package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/setanarut/stylizer"
	"github.com/setanarut/stylizer/utils"
	"github.com/spf13/cobra"
)

type runFlags struct {
	style     string
	intensity float64
	palette   int
	method    string
	upscale   int
	workers   int
	maxPixels int
	verbose   bool
}

func newRootCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:           "stylize [flags] <input> <output>",
		Short:         "Stylize a photo as anime, cartoon or manga",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stylizer.SetLogger(newLogger(f.verbose))
			return run(f, args[0], args[1])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.style, "style", "s", string(stylizer.StyleAnime), "preset: "+styleList())
	fl.Float64VarP(&f.intensity, "intensity", "i", 0.5, "effect strength in [0,1]")
	fl.IntVar(&f.palette, "palette", 0, "map the result onto an extracted palette of this many colours (0 = off)")
	fl.StringVar(&f.method, "method", "dominantcolor", "palette extraction: dominantcolor or kmeans")
	fl.IntVar(&f.upscale, "upscale", 1, "upscale the result by 2, 3 or 4")
	fl.IntVarP(&f.workers, "workers", "j", 0, "worker goroutines (0 = GOMAXPROCS)")
	fl.IntVar(&f.maxPixels, "max-pixels", stylizer.DefaultOptions().MaxPixels, "reject images larger than this many pixels")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log every stage")

	cmd.AddCommand(newPresetsCmd())
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List presets and their stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, s := range stylizer.Styles() {
				p, err := stylizer.Preset(s, 0.5, stylizer.DefaultOptions())
				if err != nil {
					return err
				}
				names := lo.Map(p.Stages, func(st stylizer.Stage, _ int) string { return st.Name() })
				fmt.Fprintf(w, "%-8s %v\n", s, names)
			}
			return nil
		},
	}
}

func styleList() string {
	names := lo.Map(stylizer.Styles(), func(s stylizer.Style, _ int) string { return string(s) })
	slices.Sort(names)
	return fmt.Sprint(names)
}

func run(f runFlags, in, out string) error {
	log := stylizer.Logger()
	style, err := stylizer.ParseStyle(f.style)
	if err != nil {
		return err
	}
	method, ok := utils.ParsePaletteMethod(f.method)
	if !ok {
		return fmt.Errorf("%w: unknown palette method %q", stylizer.ErrInvalidParameters, f.method)
	}

	buf, err := utils.ReadImage(in)
	if err != nil {
		return err
	}
	opts := stylizer.OptionsFromSize(buf.Bounds().Size())
	if f.workers > 0 {
		opts.Workers = f.workers
	}
	opts.MaxPixels = f.maxPixels

	p, err := stylizer.Preset(style, f.intensity, opts)
	if err != nil {
		return err
	}
	if f.palette > 0 {
		// Extract from the source before Apply consumes it.
		palette := utils.ExtractPalette(buf, f.palette, method)
		p.Stages = append(p.Stages, stylizer.PaletteStage{Palette: palette})
	}

	start := time.Now()
	res, err := p.Apply(buf)
	if err != nil {
		return err
	}
	log.Info("stylized", "style", style, "size", fmt.Sprintf("%dx%d", res.W, res.H), "elapsed", time.Since(start))

	if f.upscale > 1 {
		res, err = utils.ResampleUpscaler{MaxPixels: f.maxPixels}.Upscale(res, f.upscale)
		if err != nil {
			return err
		}
	}
	return utils.SaveImage(res, out)
}
