// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Manage the thesis outline",
	Long: `Outline manages the two-level outline: numbered main points and
lettered sub-points. Points are shown with their ids so research notes
can be attached to them.`,
}

var outlineListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the outline as a numbered tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		for i, branch := range w.Tree() {
			fmt.Printf("%d. %s  [%s]\n", i+1, branch.Point.Text, branch.Point.ID)
			for j, sub := range branch.Children {
				fmt.Printf("   %s. %s  [%s]\n", subLabel(j), sub.Text, sub.ID)
			}
		}
		return nil
	},
}

var outlineAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a main point, or a sub-point with --parent",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		parentID, _ := cmd.Flags().GetString("parent")
		level := types.LevelMain
		if parentID != "" {
			level = types.LevelSub
		}
		p, ok := w.AddPoint(cmd.Context(), strings.Join(args, " "), level, parentID)
		if !ok {
			return fmt.Errorf("point rejected: blank text or unknown parent")
		}
		warnStorage(w)
		fmt.Println(p.ID)
		return nil
	},
}

var outlineDeleteCmd = &cobra.Command{
	Use:   "delete <point-id>",
	Short: "Delete a point and, for a main point, its sub-points and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		removed := w.DeletePoint(cmd.Context(), args[0])
		if len(removed) == 0 {
			return fmt.Errorf("point %s not found", args[0])
		}
		warnStorage(w)
		fmt.Printf("removed %d point(s)\n", len(removed))
		return nil
	},
}

var outlineMoveCmd = &cobra.Command{
	Use:   "move <index> <up|down>",
	Short: "Reorder a main point (1-based index)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index int
		if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
			return fmt.Errorf("index must be a number: %q", args[0])
		}
		var dir outline.Direction
		switch args[1] {
		case "up":
			dir = outline.MoveUp
		case "down":
			dir = outline.MoveDown
		default:
			return fmt.Errorf("direction must be up or down, got %q", args[1])
		}

		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		if !w.MovePoint(cmd.Context(), index-1, dir) {
			fmt.Println("no move (already at the boundary)")
			return nil
		}
		warnStorage(w)
		return nil
	},
}

// subLabel formats the 0-based sub-point index as a, b, ..., z, aa, ab, ...
func subLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('a'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

func init() {
	outlineAddCmd.Flags().String("parent", "", "parent main-point id (makes this a sub-point)")

	outlineCmd.AddCommand(outlineListCmd)
	outlineCmd.AddCommand(outlineAddCmd)
	outlineCmd.AddCommand(outlineDeleteCmd)
	outlineCmd.AddCommand(outlineMoveCmd)
	rootCmd.AddCommand(outlineCmd)
}
