// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var thesisCmd = &cobra.Command{
	Use:   "thesis [statement]",
	Short: "Show or set the thesis statement",
	Long: `Thesis shows the stored thesis statement, or replaces it when a new
statement is given as arguments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		if len(args) == 0 {
			fmt.Println(w.Thesis())
			return nil
		}
		w.SetThesis(cmd.Context(), strings.Join(args, " "))
		warnStorage(w)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thesisCmd)
}
