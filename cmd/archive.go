// cmd/archive.go

package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayaseen/openshift-monitor-web/pkg/reports"
)

var archivePassword string

// archiveCmd bundles the generated reports into an encrypted ZIP archive
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Create a password-protected ZIP of all generated reports",
	Long: `This command collects every generated HTML report and writes it into a
single password-protected ZIP archive next to the reports, so report bundles
can be handed over without exposing cluster details in transit.

When no password is given a random one is generated and printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		password := archivePassword
		if password == "" {
			password, err = randomPassword()
			if err != nil {
				return fmt.Errorf("failed to generate password: %v", err)
			}
		}

		zipPath, err := reports.Archive(cfg.Execution.ReportsDir, password)
		if err != nil {
			return fmt.Errorf("failed to archive reports: %v", err)
		}

		color.Green("Compressed report archive generated at: %s", zipPath)
		fmt.Printf("Password: %s\n", password)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	// Define flags for the archive command
	archiveCmd.Flags().StringVar(&archivePassword, "password", "", "Password for the ZIP archive (generated when empty)")
}

// randomPassword returns a 32 character hex password
func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
