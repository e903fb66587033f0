package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/event"
	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/pipeline"
	"github.com/matzehuels/metro/pkg/track"
)

// checkSummary describes a script that laid out cleanly.
type checkSummary struct {
	Events  int
	Rows    int
	Columns int // widest row
	Tracks  []track.Track
}

func (s checkSummary) count(st track.Status) int {
	n := 0
	for _, t := range s.Tracks {
		if t.Status == st {
			n++
		}
	}
	return n
}

func (c *CLI) checkCommand() *cobra.Command {
	var (
		input      string
		noRoot     bool
		showTracks bool
	)

	cmd := &cobra.Command{
		Use:   "check <script|->",
		Short: "Validate a metro script without rendering it",
		Long: `Validate a metro script: decode it and run every event through the
layout engine. Prints a summary on success; exits non-zero on the first
invalid event.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScript,
		RunE:              func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args[0], input, noRoot, showTracks)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "script format: json, yaml, toml (default from extension)")
	cmd.Flags().BoolVar(&noRoot, "no-root", false, "start without the root track")
	cmd.Flags().BoolVar(&showTracks, "tracks", false, "list every track with its final state")
	completeFlagValues(cmd)

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, path, input string, noRoot, showTracks bool) error {
	out := cmd.OutOrStdout()
	name := displayName(path)

	format, err := inputFormat(path, input)
	if err != nil {
		return err
	}
	script, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	events, err := pipeline.Decode(cmd.Context(), script, format)
	if err != nil {
		printError(out, "%s: %s", name, metroerrors.UserMessage(err))
		return fmt.Errorf("check %s: %w", name, err)
	}

	s, err := check(events, layout.Options{NoRoot: noRoot})
	if err != nil {
		printError(out, "%s: %s", name, metroerrors.UserMessage(err))
		printDetail(out, "%d rows laid out before the failing event", s.Rows)
		return fmt.Errorf("check %s: %w", name, err)
	}

	printSuccess(out, "%s is valid", name)
	printKeyValue(out, "events", s.Events)
	printKeyValue(out, "rows", s.Rows)
	printKeyValue(out, "columns", s.Columns)
	printKeyValue(out, "tracks", fmt.Sprintf("%d (%d active, %d joined, %d stopped)",
		len(s.Tracks), s.count(track.Active), s.count(track.Joined), s.count(track.Stopped)))
	if showTracks {
		printTrackTable(out, s.Tracks)
	}
	return nil
}

// check runs events through a layout engine and summarizes the result.
// On error the summary covers the events before the failing one.
func check(events []event.Event, opts layout.Options) (checkSummary, error) {
	e := layout.New(opts)
	s := checkSummary{Events: len(events)}
	var ids []track.ID
	if !opts.NoRoot {
		ids = append(ids, layout.RootTrack)
	}

	for i, ev := range events {
		rows, err := e.Process(ev)
		if err != nil {
			return s, fmt.Errorf("event %d: %w", i, err)
		}
		s.Rows += len(rows)
		for _, r := range rows {
			s.Columns = max(s.Columns, r.Columns())
		}
		ids = append(ids, event.Tracks(ev)...)
	}

	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if t, ok := e.Registry().Track(id); ok {
			s.Tracks = append(s.Tracks, t)
		}
	}
	return s, nil
}

func printTrackTable(w io.Writer, tracks []track.Track) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		col := "-"
		if t.Column >= 0 {
			col = strconv.Itoa(t.Column)
		}
		rows = append(rows, []string{strconv.Itoa(int(t.ID)), t.Status.String(), col})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Track", "Status", "Column").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	fmt.Fprintln(w, tbl.Render())
}
