package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fonsecabarber/barber-api/internal/cli"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "barberctl",
		Short:         "Operate the barbershop API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddAPIFlag(rootCmd)

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.ContentCmd())
	rootCmd.AddCommand(cli.BookCmd())
	rootCmd.AddCommand(cli.AppointmentCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
