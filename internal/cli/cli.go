package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fonsecabarber/barber-api/pkg/client"
)

const defaultAPIURL = "http://localhost:3000"

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// apiClient builds a client from the --api flag, falling back to BARBER_API_URL.
func apiClient(cmd *cobra.Command) *client.Client {
	url, _ := cmd.Flags().GetString("api")
	if url == "" {
		url = os.Getenv("BARBER_API_URL")
	}
	if url == "" {
		url = defaultAPIURL
	}
	return client.New(url)
}

// AddAPIFlag registers the persistent --api flag on root.
func AddAPIFlag(root *cobra.Command) {
	root.PersistentFlags().String("api", "", "API base URL (default $BARBER_API_URL or "+defaultAPIURL+")")
}
