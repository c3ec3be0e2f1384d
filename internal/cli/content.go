package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/pkg/client"
)

func ContentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content",
		Short: "Show the content the public page would render",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := client.NewStore()
			doc, err := store.Refresh(cmd.Context(), apiClient(cmd))
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "%s Could not reach the API, showing defaults: %v\n\n", warnMark, err)
			}
			printContent(out, doc)
			return nil
		},
	}
}

func printContent(out io.Writer, doc model.ContentDocument) {
	fmt.Fprintln(out, "Settings:")
	keys := make([]string, 0, len(doc.Settings))
	for k := range doc.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%s\n", k, doc.Settings[k])
	}
	w.Flush()

	fmt.Fprintf(out, "\nServices (%d):\n", len(doc.Services))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range doc.Services {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", s.Name, s.Price, s.Desc)
	}
	w.Flush()

	fmt.Fprintf(out, "\nGallery: %d images, %d videos\n", len(doc.Gallery), len(doc.VideoGallery))
	fmt.Fprintf(out, "\nRecent appointments (%d):\n", len(doc.Appointments))
	printAppointments(out, doc.Appointments)
}

func printAppointments(out io.Writer, list []model.Appointment) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, a := range list {
		fmt.Fprintf(w, "  #%d\t%s %s\t%s\t%s\t%s\n", a.ID, a.Date, a.Time, a.ClientName, a.ServiceName, statusLabel(a.Status))
	}
	w.Flush()
}
