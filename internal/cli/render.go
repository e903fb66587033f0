package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/pipeline"
	"github.com/matzehuels/metro/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path (multiple)
	formats  string // comma-separated output formats
	input    string // script format, overrides the file extension
	collapse string // collapse style, overrides the config file
	compact  bool   // shorthand for --collapse compact
	noRoot   bool   // start without the root track
	detailed bool   // track ids in dot/svg labels
	noCache  bool
	refresh  bool
}

// fileExt maps output formats to file extensions.
var fileExt = map[string]string{
	pipeline.FormatText: ".txt",
	pipeline.FormatJSON: ".rows.json", // never the script itself
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatSVG:  ".svg",
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <script|->",
		Short: "Render a metro script",
		Long: `Render a metro script to a text diagram or another output format.

The script is a JSON, YAML or TOML file with a list of events; "-" reads it
from stdin (JSON unless --input says otherwise). With a single format and no
--output the result goes to stdout. Multiple formats are written next to the
script, or to the base path given with --output.

Rendered artifacts are cached; use --no-cache or --refresh to bypass it.`,
		Example: `  metro render tour.yaml
  metro render -f text,svg -o out/tour tour.json
  cat tour.json | metro render --compact -`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScript,
		RunE:              func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVar(&opts.input, "input", "", "script format: json, yaml, toml (default from extension)")
	cmd.Flags().StringVar(&opts.collapse, "collapse", "", "collapse style: stepwise, compact (default from config)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "draw multi-column joins and stops in as few rows as possible")
	cmd.Flags().BoolVar(&opts.noRoot, "no-root", false, "start without the root track")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show track ids in dot and svg output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	completeFlagValues(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	stderr := cmd.ErrOrStderr()

	popts, err := c.pipelineOptions(input, opts)
	if err != nil {
		return err
	}

	script, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := execute(ctx, runner, script, popts, stderr)
	if err != nil {
		toStdout := opts.output == "" && len(popts.Formats) == 1
		if result != nil && len(result.Rows) > 0 && toStdout && popts.Formats[0] == pipeline.FormatText {
			// Show how far the diagram got before the failing event.
			fmt.Fprintln(cmd.OutOrStdout(), render.String(result.Rows))
			printWarning(stderr, "diagram is partial: %d rows drawn before the failing event", len(result.Rows))
		}
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(popts.Formats, ", ")))

	if opts.output == "" && len(popts.Formats) == 1 {
		out := result.Artifacts[popts.Formats[0]]
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	}

	paths, err := writeArtifacts(result.Artifacts, popts.Formats, input, opts.output)
	if err != nil {
		return err
	}
	printSuccess(stderr, "Rendered %s", displayName(input))
	printStats(stderr, result.Stats.EventCount, result.Stats.RowCount, result.CacheHit)
	for _, p := range paths {
		printFile(stderr, p)
	}
	return nil
}

// pipelineOptions merges flags with the config file.
func (c *CLI) pipelineOptions(input string, opts renderOpts) (pipeline.Options, error) {
	format, err := inputFormat(input, opts.input)
	if err != nil {
		return pipeline.Options{}, err
	}
	collapse := c.config.Collapse
	if opts.collapse != "" {
		collapse = opts.collapse
	}
	if opts.compact {
		collapse = layout.CollapseCompact.String()
	}
	popts := pipeline.Options{
		Input:    format,
		Formats:  parseFormats(opts.formats),
		Collapse: collapse,
		NoRoot:   opts.noRoot,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	}
	return popts, popts.ValidateAndSetDefaults()
}

// execute runs the pipeline. When Graphviz is involved and stderr is a
// terminal, a spinner shows the running stage.
func execute(ctx context.Context, runner *pipeline.Runner, script []byte, opts pipeline.Options, stderr io.Writer) (*pipeline.Result, error) {
	if !slices.Contains(opts.Formats, pipeline.FormatSVG) || !isTerminal(stderr) {
		return runner.Execute(ctx, script, opts)
	}
	var (
		result *pipeline.Result
		err    error
	)
	withSpinner(newSpinner(ctx, stderr, "Starting..."), func() {
		result, err = runner.Execute(ctx, script, opts)
	})
	return result, err
}

// writeArtifacts writes one file per format and returns the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := basePath(output, input)
	if len(formats) == 1 && output != "" {
		base = ""
	}
	var paths []string
	for _, f := range formats {
		path := output
		if base != "" {
			path = base + fileExt[f]
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, err
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path. Without an output it strips the
// script's extension ("metro" for stdin); a known format extension is
// stripped from an explicit output.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range fileExt {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}
