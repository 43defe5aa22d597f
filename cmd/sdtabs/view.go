package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NexusOnePlus/spacedrive/schema"
)

type viewFlags struct {
	tab          string
	mode         string
	sort         string
	gridSize     int
	gapSize      int
	foldersFirst bool
	columnStack  []string
	scrollTop    float64
	scrollLeft   float64
}

func newViewCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Inspect and change per-tab explorer view state",
	}
	cmd.AddCommand(newViewShowCmd(cfgPath))
	cmd.AddCommand(newViewSetCmd(cfgPath))
	cmd.AddCommand(newViewResetCmd(cfgPath))
	return cmd
}

func printView(out io.Writer, state schema.ExplorerViewState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func newViewShowCmd(cfgPath *string) *cobra.Command {
	var tabRef string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a tab's explorer view state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, tabRef)
				if err != nil {
					return err
				}
				return printView(cmd.OutOrStdout(), ws.manager.ExplorerState(tab.ID))
			})
		},
	}
	cmd.Flags().StringVar(&tabRef, "tab", "", "tab id or position (default: active tab)")
	return cmd
}

func newViewSetCmd(cfgPath *string) *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Merge the given fields into a tab's explorer view state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return fmt.Errorf("no view fields given")
			}
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, flags.tab)
				if err != nil {
					return err
				}
				state, ok := ws.manager.UpdateExplorerState(tab.ID, patch)
				if !ok {
					return fmt.Errorf("%w: view state for %s", schema.ErrInvalidExplorerState, tab.ID)
				}
				return printView(cmd.OutOrStdout(), state)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.tab, "tab", "", "tab id or position (default: active tab)")
	f.StringVar(&flags.mode, "mode", "", "view mode: grid, list, column, media or size")
	f.StringVar(&flags.sort, "sort", "", "sort key: name, size, modified, created or kind")
	f.IntVar(&flags.gridSize, "grid-size", 0, "grid item size")
	f.IntVar(&flags.gapSize, "gap-size", 0, "grid gap size")
	f.BoolVar(&flags.foldersFirst, "folders-first", false, "list folders before files")
	f.StringSliceVar(&flags.columnStack, "column-stack", nil, "column view path stack")
	f.Float64Var(&flags.scrollTop, "scroll-top", 0, "vertical scroll offset")
	f.Float64Var(&flags.scrollLeft, "scroll-left", 0, "horizontal scroll offset")
	return cmd
}

// patch builds an ExplorerPatch from the flags the user actually passed.
func (v *viewFlags) patch(cmd *cobra.Command) (schema.ExplorerPatch, error) {
	var patch schema.ExplorerPatch
	changed := cmd.Flags().Changed
	if changed("mode") {
		mode, err := schema.NormalizeViewMode(v.mode)
		if err != nil {
			return patch, err
		}
		patch.ViewMode = &mode
	}
	if changed("sort") {
		sortBy, err := schema.NormalizeSortBy(v.sort)
		if err != nil {
			return patch, err
		}
		patch.SortBy = &sortBy
	}
	if changed("grid-size") {
		if v.gridSize <= 0 {
			return patch, fmt.Errorf("grid-size must be positive")
		}
		patch.GridSize = &v.gridSize
	}
	if changed("gap-size") {
		if v.gapSize < 0 {
			return patch, fmt.Errorf("gap-size must not be negative")
		}
		patch.GapSize = &v.gapSize
	}
	if changed("folders-first") {
		patch.FoldersFirst = &v.foldersFirst
	}
	if changed("column-stack") {
		stack := append([]string{}, v.columnStack...)
		patch.ColumnStack = &stack
	}
	if changed("scroll-top") || changed("scroll-left") {
		patch.ScrollPosition = &schema.ScrollPosition{Top: v.scrollTop, Left: v.scrollLeft}
	}
	return patch, nil
}

func newViewResetCmd(cfgPath *string) *cobra.Command {
	var tabRef string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore a tab's explorer view state to the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, tabRef)
				if err != nil {
					return err
				}
				ws.manager.SetExplorerState(tab.ID, schema.DefaultExplorerState())
				return printView(cmd.OutOrStdout(), ws.manager.ExplorerState(tab.ID))
			})
		},
	}
	cmd.Flags().StringVar(&tabRef, "tab", "", "tab id or position (default: active tab)")
	return cmd
}
