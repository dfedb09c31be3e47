// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the document and bibliography",
	Long: `Export renders the thesis, outline, notes, and citations into a
downloadable document, or the distinct bibliographies alone as BibTeX
or CSL-YAML.`,
}

var exportDocCmd = &cobra.Command{
	Use:   "doc",
	Short: "Write the formatted document (" + export.Filename + ")",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		doc, err := w.ExportDocument(exportStyle(cmd))
		if err != nil {
			return fmt.Errorf("rendering document: %w", err)
		}

		outDir, _ := cmd.Flags().GetString("out")
		path := filepath.Join(outDir, export.Filename)
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println(path)
		return nil
	},
}

var exportBibtexCmd = &cobra.Command{
	Use:   "bibtex",
	Short: "Print the distinct bibliographies as BibTeX",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		fmt.Print(w.ExportBibTeX())
		return nil
	},
}

var exportCSLCmd = &cobra.Command{
	Use:   "csl",
	Short: "Print the distinct bibliographies as CSL-YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		return w.ExportCSL(cmd.OutOrStdout())
	},
}

func init() {
	exportDocCmd.Flags().String("style", "", "citation style: turabian, apa, mla, chicago, ieee")
	exportDocCmd.Flags().String("out", ".", "directory to write the document into")

	exportCmd.AddCommand(exportDocCmd)
	exportCmd.AddCommand(exportBibtexCmd)
	exportCmd.AddCommand(exportCSLCmd)
	rootCmd.AddCommand(exportCmd)
}
