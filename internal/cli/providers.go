package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported external feedback providers",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROVIDER\tAUTH\tDEFAULT ENDPOINT")
		fmt.Fprintln(w, "openai\tOPENAI_API_KEY\thttps://api.openai.com/v1")
		fmt.Fprintln(w, "ollama\tnone\thttp://localhost:11434")
		fmt.Fprintln(w, "lmstudio\tnone\thttp://localhost:1234/v1")
		w.Flush()
	},
}
