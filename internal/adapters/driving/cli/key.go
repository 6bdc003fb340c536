package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// keyCmd groups credential management commands.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the insight credential",
}

// keySetCmd prompts for and stores the credential.
var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the credential for generated reflections",
	Long: `Set the credential used to request generated reflections.

The credential is read from the terminal without echo and stored
locally. Ripple works fully without one; reflections then fall back to
fixed text.`,
	RunE: runKeySet,
}

// keyStatusCmd reports whether a credential is configured.
var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a credential is configured",
	RunE:  runKeyStatus,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyStatusCmd)
	rootCmd.AddCommand(keyCmd)
}

func runKeySet(cmd *cobra.Command, _ []string) error {
	svcs, err := getServices()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("credential entry needs an interactive terminal")
	}

	cmd.Print("Credential: ")
	raw, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading credential: %w", err)
	}

	if err := svcs.Insight.SetCredential(string(raw)); err != nil {
		return err
	}

	cmd.Println("Credential saved.")
	return nil
}

func runKeyStatus(cmd *cobra.Command, _ []string) error {
	svcs, err := getServices()
	if err != nil {
		return err
	}

	if svcs.Insight.IsAvailable() {
		cmd.Println("Credential: configured")
	} else {
		cmd.Println("Credential: not configured")
	}
	return nil
}
