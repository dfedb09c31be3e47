// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/ocr"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr <image-file>",
	Short: "Extract text from an image via the cloud vision API",
	Long: `Ocr sends an image to the configured cloud vision API and prints the
recognized text. The image is never stored; a failed extraction leaves
no trace. Requires ocr.endpoint in the config and a vision-api-key
secret (or ocr.api_key).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig().OCR
		if cfg.Endpoint == "" {
			return fmt.Errorf("ocr.endpoint is not configured")
		}

		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}

		var counter *ocr.RequestCounter
		if cfg.DailyLimit > 0 || cfg.MonthlyLimit > 0 {
			counter = ocr.NewRequestCounter(cfg.DailyLimit, cfg.MonthlyLimit, time.Now)
		}
		gw := ocr.NewGateway(cfg, counter)

		text, err := gw.Extract(cmd.Context(), image)
		if errors.Is(err, ocr.ErrNoText) {
			return fmt.Errorf("no text found in %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ocrCmd)
}
