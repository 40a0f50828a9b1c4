// Command shutterdump resolves a YAML scene for one frame and prints the
// motion samples a renderer would receive for every node.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/shutter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose   bool
	format    string
	frame     float64
	fps       float64
	open      float64
	closeTime float64
	parallel  bool
	instances bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shutterdump",
	Short: "Resolve motion blur samples for a transform hierarchy",
	Long: `shutterdump loads a YAML scene, selects the sample times each node needs
to cover the shutter window of one frame, and prints the resulting
world-space motion blocks.

Frame, fps and shutter flags override the values stored in the scene.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [scene.yaml]",
	Short: "Print world motion blocks for every node",
	Long: `Resolves every node of the scene and prints one entry per node in
depth-first order: its path, its frame-relative sample times and the
flattened world matrices at those times.

With --instances, nodes whose samples duplicate an earlier node's carry the
earlier node's path in "instance".`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var timesCmd = &cobra.Command{
	Use:   "times [scene.yaml]",
	Short: "Print the local sample times selected for every node",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimes,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml or cbor")
	rootCmd.PersistentFlags().Float64Var(&frame, "frame", 0, "Frame to resolve (default: scene frame)")
	rootCmd.PersistentFlags().Float64Var(&fps, "fps", 0, "Frames per second (default: scene fps)")
	rootCmd.PersistentFlags().Float64Var(&open, "shutter-open", 0, "Shutter open offset in frames (default: scene value)")
	rootCmd.PersistentFlags().Float64Var(&closeTime, "shutter-close", 0, "Shutter close offset in frames (default: scene value)")

	resolveCmd.Flags().BoolVar(&parallel, "parallel", false, "Resolve sibling subtrees concurrently")
	resolveCmd.Flags().BoolVar(&instances, "instances", false, "Report nodes with identical motion blocks")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(timesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type nodeOutput struct {
	Path     string              `json:"path" yaml:"path" cbor:"1,keyasint"`
	Instance string              `json:"instance,omitempty" yaml:"instance,omitempty" cbor:"2,keyasint,omitempty"`
	Block    shutter.MotionBlock `json:"block" yaml:"block" cbor:"3,keyasint"`
}

type timesOutput struct {
	Path  string    `json:"path" yaml:"path" cbor:"1,keyasint"`
	Times []float64 `json:"times" yaml:"times,flow" cbor:"2,keyasint"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	out, err := resolveScene(cmd, args[0])
	if err != nil {
		return err
	}
	nodes := make([]nodeOutput, len(out))
	for i, res := range out {
		nodes[i] = nodeOutput{Path: res.Node.Path(), Block: res.Block}
		if res.Instance != "" && res.Instance != nodes[i].Path {
			nodes[i].Instance = res.Instance
		}
	}
	return write(cmd, nodes)
}

func runTimes(cmd *cobra.Command, args []string) error {
	out, err := resolveScene(cmd, args[0])
	if err != nil {
		return err
	}
	nodes := make([]timesOutput, len(out))
	for i, res := range out {
		nodes[i] = timesOutput{Path: res.Node.Path(), Times: res.Times}
	}
	return write(cmd, nodes)
}

// resolveScene loads path, applies flag overrides and resolves every root.
func resolveScene(cmd *cobra.Command, path string) ([]shutter.Resolved, error) {
	scene, err := shutter.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	applyOverrides(cmd, scene)
	if scene.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", scene.FPS)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := scene.Window()
	r := shutter.NewResolver(w)
	r.Logger = logger
	r.Parallel = parallel
	r.Debug = verbose
	if instances {
		r.Instances = shutter.NewInstanceTable()
	}

	logger.Info("resolving scene",
		zap.String("scene", path),
		zap.Float64("frame", scene.Frame),
		zap.Float64("fps", scene.FPS),
		zap.Float64("open", scene.ShutterOpen),
		zap.Float64("close", scene.ShutterClose),
		zap.Bool("motion_blur", !w.Static()),
	)

	var all []shutter.Resolved
	for _, root := range scene.Roots {
		out, err := r.Resolve(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", root.Path(), err)
		}
		all = append(all, out...)
	}
	return all, nil
}

func applyOverrides(cmd *cobra.Command, scene *shutter.Scene) {
	flags := cmd.Flags()
	if flags.Changed("frame") {
		scene.Frame = frame
	}
	if flags.Changed("fps") {
		scene.FPS = fps
	}
	if flags.Changed("shutter-open") {
		scene.ShutterOpen = open
	}
	if flags.Changed("shutter-close") {
		scene.ShutterClose = closeTime
	}
}

func write(cmd *cobra.Command, v any) error {
	f, err := shutter.ParseFormat(format)
	if err != nil {
		return err
	}
	return shutter.Encode(cmd.OutOrStdout(), f, v)
}
