package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/pkg/client"
	"github.com/fonsecabarber/barber-api/pkg/validator"
)

func statusLabel(s model.AppointmentStatus) string {
	switch s {
	case model.AppointmentStatusCompleted:
		return color.New(color.FgGreen).Sprint(s)
	case model.AppointmentStatusCancelled:
		return color.New(color.FgRed).Sprint(s)
	default:
		return color.New(color.FgYellow).Sprint(s)
	}
}

func BookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment and print the WhatsApp link",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			service, _ := cmd.Flags().GetString("service")
			date, _ := cmd.Flags().GetString("date")
			at, _ := cmd.Flags().GetString("time")

			req := model.CreateAppointmentRequest{ClientName: name, ServiceName: service, Date: date, Time: at}
			if err := validator.New().Validate(req); err != nil {
				return err
			}

			c := apiClient(cmd)
			store := client.NewStore()
			// The link uses the shop's number, so load it first.
			_, _ = store.Refresh(cmd.Context(), c)

			link, err := client.NewBooker(c, store).Book(cmd.Context(), req)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "%s %v\n", warnMark, err)
			} else {
				fmt.Fprintf(out, "%s Appointment recorded for %s on %s at %s\n", okMark, name, date, at)
			}
			fmt.Fprintln(out, link)
			return err
		},
	}
	cmd.Flags().String("name", "", "Client name (required)")
	cmd.Flags().String("service", "", "Service name (default Geral)")
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD (required)")
	cmd.Flags().String("time", "", "Time as HH:MM (required)")
	return cmd
}

func AppointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "List and manage appointments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every appointment, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := apiClient(cmd).ListAppointments(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments")
				return nil
			}
			printAppointments(cmd.OutOrStdout(), list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status [id] [Pendente|Concluído|Cancelado]",
		Short: "Change an appointment's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment ID: %s", args[0])
			}
			status := model.AppointmentStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("invalid status: %s\nValid statuses: Pendente, Concluído, Cancelado", args[1])
			}
			if err := apiClient(cmd).UpdateAppointmentStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Appointment #%d is now %s\n", okMark, id, statusLabel(status))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid appointment ID: %s", args[0])
			}
			if err := apiClient(cmd).DeleteAppointment(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Appointment #%d deleted\n", okMark, id)
			return nil
		},
	})

	return cmd
}
