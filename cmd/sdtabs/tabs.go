package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/NexusOnePlus/spacedrive/core"
	"github.com/NexusOnePlus/spacedrive/schema"
)

func newTabsCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List and manage explorer tabs",
	}

	cmd.AddCommand(newTabsListCmd(cfgPath))
	cmd.AddCommand(newTabsNewCmd(cfgPath))
	cmd.AddCommand(newTabsCloseCmd(cfgPath))
	cmd.AddCommand(newTabsSwitchCmd(cfgPath))
	cmd.AddCommand(newTabsStepCmd(cfgPath, "next", "Activate the next tab", (*core.Manager).NextTab))
	cmd.AddCommand(newTabsStepCmd(cfgPath, "prev", "Activate the previous tab", (*core.Manager).PreviousTab))
	cmd.AddCommand(newTabsSelectCmd(cfgPath))
	cmd.AddCommand(newTabsMoveCmd(cfgPath))
	cmd.AddCommand(newTabsRenameCmd(cfgPath))
	cmd.AddCommand(newTabsNavigateCmd(cfgPath))
	cmd.AddCommand(newTabsDefaultPathCmd(cfgPath))

	return cmd
}

func printTabs(out io.Writer, m *core.Manager) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	active := m.ActiveTabID()
	for i, tab := range m.Tabs() {
		marker := " "
		if tab.ID == active {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", marker, i+1, tab.ID, tab.Title, tab.SavedPath); err != nil {
			return err
		}
	}
	return w.Flush()
}

func newTabsListCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tabs in order; the active tab is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
}

func newTabsNewCmd(cfgPath *string) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "new [path]",
		Short: "Open a new tab and make it active",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := core.CreateTabRequest{Title: title}
			if len(args) == 1 {
				req.Path = args[0]
			}
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab := ws.manager.CreateTab(cmd.Context(), req)
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tab.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "explicit tab title")
	return cmd
}

func newTabsCloseCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "close [tab]",
		Short: "Close a tab (default: the active tab); the last tab stays open",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, firstArg(args))
				if err != nil {
					return err
				}
				if !ws.manager.CloseTab(cmd.Context(), tab.ID) {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "last tab stays open")
					return err
				}
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
}

func newTabsSwitchCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <tab>",
		Short: "Activate a tab by id or position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, args[0])
				if err != nil {
					return err
				}
				ws.manager.SwitchTab(cmd.Context(), tab.ID)
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
}

func newTabsStepCmd(cfgPath *string, use, short string, step func(*core.Manager, context.Context) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				step(ws.manager, cmd.Context())
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
}

func newTabsSelectCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "select <position>",
		Short: "Activate the tab at a 1-based position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				if n < 1 || n > len(ws.manager.Tabs()) {
					return fmt.Errorf("%w: position %d", schema.ErrTabNotFound, n)
				}
				ws.manager.SelectTabAtIndex(cmd.Context(), n-1)
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
}

func newTabsMoveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "move <tab> <target>",
		Short: "Move a tab to the position currently held by target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				moved, err := resolveTab(ws.manager, args[0])
				if err != nil {
					return err
				}
				target, err := resolveTab(ws.manager, args[1])
				if err != nil {
					return err
				}
				ws.manager.ReorderTabs(cmd.Context(), moved.ID, target.ID)
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
}

func newTabsRenameCmd(cfgPath *string) *cobra.Command {
	var tabRef string
	cmd := &cobra.Command{
		Use:   "rename [title]",
		Short: "Set a tab title; without a title the derived title is restored",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, tabRef)
				if err != nil {
					return err
				}
				ws.manager.UpdateTabTitle(cmd.Context(), tab.ID, firstArg(args))
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
	cmd.Flags().StringVar(&tabRef, "tab", "", "tab id or position (default: active tab)")
	return cmd
}

func newTabsNavigateCmd(cfgPath *string) *cobra.Command {
	var tabRef string
	cmd := &cobra.Command{
		Use:   "navigate <path>",
		Short: "Point a tab at a route, e.g. /explorer?view=device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				tab, err := resolveTab(ws.manager, tabRef)
				if err != nil {
					return err
				}
				ws.manager.UpdateTabPath(cmd.Context(), tab.ID, args[0])
				return printTabs(cmd.OutOrStdout(), ws.manager)
			})
		},
	}
	cmd.Flags().StringVar(&tabRef, "tab", "", "tab id or position (default: active tab)")
	return cmd
}

func newTabsDefaultPathCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "default-path [path]",
		Short: "Show or set the path new tabs open at",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd.Context(), *cfgPath, func(ws *workspace) error {
				if len(args) == 1 {
					ws.manager.SetDefaultNewTabPath(cmd.Context(), args[0])
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), ws.manager.DefaultNewTabPath())
				return err
			})
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
