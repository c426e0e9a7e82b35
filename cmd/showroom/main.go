// Showroom renders a brochure page described in YAML with scroll-triggered
// reveals and count-ups.
//
//	showroom run page.yaml                      # open a window
//	showroom run page.yaml --headless           # print the motion timeline
//	showroom run page.yaml --script scroll.json # replay a scroll script
//	showroom plan page.yaml                     # print per-section delays
//	showroom curves --out curves.png            # plot easing curves
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phanxgames/unveil"
	"github.com/phanxgames/unveil/internal/showroom"
)

func main() {
	setupLogging(false)
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("showroom failed")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "showroom",
		Short:         "Scroll-reveal brochure pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and scene debug mode")
	root.AddCommand(newRunCmd(&debug), newPlanCmd(), newCurvesCmd())
	return root
}

func newRunCmd(debug *bool) *cobra.Command {
	var (
		reduced  bool
		script   string
		headless bool
		maxTime  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run <page.yaml>",
		Short: "Open the page in a window, or simulate it headlessly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := showroom.LoadPage(args[0])
			if err != nil {
				return err
			}
			if reduced {
				page.ReducedMotion = true
			}

			scene := unveil.NewScene()
			scene.SetLogger(log.Logger)
			scene.SetDebugMode(*debug)
			built, err := showroom.Build(scene, page)
			if err != nil {
				return err
			}
			log.Info().
				Str("title", page.Title).
				Int("sections", len(built.Sections)).
				Float64("height", built.Height).
				Bool("reduced_motion", page.ReducedMotion).
				Msg("page built")

			var runner *unveil.TestRunner
			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if runner, err = unveil.LoadTestScript(data); err != nil {
					return err
				}
			}

			if headless {
				events := showroom.Simulate(scene, runner, showroom.SimulateOptions{
					MaxFrames: int(maxTime / showroom.DefaultFrame),
				})
				return showroom.WriteTimeline(cmd.OutOrStdout(), events)
			}
			if runner != nil {
				scene.SetTestRunner(runner)
			}
			return unveil.Run(scene, unveil.RunConfig{
				Title:   page.Title,
				Width:   page.Width,
				Height:  page.Height,
				ShowFPS: *debug,
			})
		},
	}
	cmd.Flags().BoolVar(&reduced, "reduced-motion", false, "Prefer reduced motion")
	cmd.Flags().StringVar(&script, "script", "", "JSON scroll script to replay")
	cmd.Flags().BoolVar(&headless, "headless", false, "Simulate without a window and print the timeline")
	cmd.Flags().DurationVar(&maxTime, "max-time", time.Minute, "Upper bound on simulated time in headless mode")
	return cmd
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <page.yaml>",
		Short: "Print each section's reveal delays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := showroom.LoadPage(args[0])
			if err != nil {
				return err
			}
			return showroom.WritePlan(cmd.OutOrStdout(), showroom.Plan(page))
		},
	}
}

func newCurvesCmd() *cobra.Command {
	var (
		out   string
		names []string
	)
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Plot easing curves to an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showroom.WriteCurves(out, names); err != nil {
				return err
			}
			log.Info().Str("out", out).Msg("curves written")
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "curves.png", "Output image path (.png, .svg, .pdf)")
	cmd.Flags().StringSliceVar(&names, "easing", nil, "Easing names to plot (default: all built-ins)")
	return cmd
}
