/*
Copyright © 2025 mohamadmonzer-a
*/
package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mohamadmonzer-a/railwayBackend/types"
	"github.com/mohamadmonzer-a/railwayBackend/utils"
)

// uploadDocumentCmd represents the upload-document command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Upload a single PDF without going through HTTP",
	Long: `Runs the upload pipeline on a local file: extract, check for a duplicate,
embed and store. Example:

  railwayBackend upload-document -f report.pdf -s my-session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		sessionID, _ := cmd.Flags().GetString("session-id")
		if filePath == "" {
			return errors.New("--file is required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.cleanup()

		return uploadFile(cmd, a, filePath, sessionID)
	},
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)

	uploadDocumentCmd.Flags().StringP("file", "f", "", "Path to the PDF to upload")
	uploadDocumentCmd.Flags().StringP("session-id", "s", "", "Session identifier stored with the record")
}

func uploadFile(cmd *cobra.Command, a *app, filePath, sessionID string) error {
	content, err := utils.ReadFileLimited(filePath, a.cfg.MaxUploadBytes)
	if err != nil {
		return err
	}
	result, err := a.uploads.Upload(cmd.Context(), types.UploadedDocument{
		FileName:  filepath.Base(filePath),
		Content:   content,
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}

	if result.Duplicate {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", filePath, types.MessageDuplicate)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s id=%v\n", filePath, types.MessageUploaded, result.ID)
	return nil
}
