/*
Copyright © 2025 mohamadmonzer-a
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohamadmonzer-a/railwayBackend/utils"
)

// batchUploadDocumentCmd represents the batch-upload-document command
var batchUploadDocumentCmd = &cobra.Command{
	Use:   "batch-upload-document",
	Short: "Upload every PDF in a directory",
	Long: `Runs the upload pipeline on each .pdf file directly inside a directory.
Failures are reported and the remaining files are still processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		directory, _ := cmd.Flags().GetString("directory")
		sessionID, _ := cmd.Flags().GetString("session-id")
		if directory == "" {
			return errors.New("--directory is required")
		}

		files, err := os.ReadDir(directory)
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.cleanup()

		failed := 0
		for _, file := range files {
			if file.IsDir() || !utils.HasExtension(file.Name(), ".pdf") {
				continue
			}
			filePath := filepath.Join(directory, file.Name())
			if err := uploadFile(cmd, a, filePath, sessionID); err != nil {
				a.logger.Error("failed to upload document", zap.String("file", filePath), zap.Error(err))
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d document(s) failed to upload", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchUploadDocumentCmd)

	batchUploadDocumentCmd.Flags().StringP("directory", "d", "", "Directory containing the PDFs to upload")
	batchUploadDocumentCmd.Flags().StringP("session-id", "s", "", "Session identifier stored with every record")
}
