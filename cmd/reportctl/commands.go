package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"delizzia_backoffice/internal/app"
	"delizzia_backoffice/internal/config"
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/export"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/pkg/utils"
)

type options struct {
	seedPath     string
	settingsPath string
	timezone     string
	format       string
	out          string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "reportctl",
		Short:        "Render sales, inventory and forecast reports",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.seedPath, "seed", utils.Getenv("SEED_PATH", ""), "seed dataset (YAML); built-in demo data when empty")
	flags.StringVar(&opts.settingsPath, "settings", utils.Getenv("SETTINGS_PATH", ""), "business settings file (YAML)")
	flags.StringVar(&opts.timezone, "timezone", utils.Getenv("TIMEZONE", "America/Guayaquil"), "location used for report periods")
	flags.StringVarP(&opts.format, "format", "f", "json", "output format: json, csv or xlsx")
	flags.StringVarP(&opts.out, "out", "o", "", "output file; stdout when empty")

	root.AddCommand(
		salesCmd(opts, "daily [YYYY-MM-DD]", "Sales for one day, today by default",
			func(svc *app.Services, arg string) (*models.SalesReport, error) {
				return svc.Reports.GetDailySalesReport(arg)
			}),
		salesCmd(opts, "weekly [YYYY-MM-DD]", "Sales for the seven days starting at the given day",
			func(svc *app.Services, arg string) (*models.SalesReport, error) {
				return svc.Reports.GetWeeklySalesReport(arg)
			}),
		salesCmd(opts, "monthly [YYYY-MM]", "Sales for one calendar month, bucketed by week",
			func(svc *app.Services, arg string) (*models.SalesReport, error) {
				return svc.Reports.GetMonthlySalesReport(arg)
			}),
		inventoryCmd(opts),
		forecastCmd(opts),
	)
	return root
}

func salesCmd(opts *options, use, short string, build func(*app.Services, string) (*models.SalesReport, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.services()
			if err != nil {
				return err
			}
			defer svc.Close()
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			report, err := build(svc, arg)
			if err != nil {
				return err
			}
			return opts.write(cmd, report,
				func(w io.Writer) error { return export.SalesCSV(w, report) },
				func(w io.Writer) error { return export.SalesXLSX(w, report) })
		},
	}
}

func inventoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "Stock levels, status and value of every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.services()
			if err != nil {
				return err
			}
			defer svc.Close()
			report := svc.Reports.GetInventoryReport()
			return opts.write(cmd, report,
				func(w io.Writer) error { return export.InventoryCSV(w, report) },
				func(w io.Writer) error { return export.InventoryXLSX(w, report) })
		},
	}
}

func forecastCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Projected daily revenue from recent sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.services()
			if err != nil {
				return err
			}
			defer svc.Close()
			forecast, err := svc.Reports.GetSalesForecast()
			if err != nil {
				return err
			}
			return opts.write(cmd, forecast,
				func(w io.Writer) error { return export.ForecastCSV(w, forecast) },
				func(w io.Writer) error { return export.ForecastXLSX(w, forecast) })
		},
	}
}

func (o *options) services() (*app.Services, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", o.timezone, err)
	}
	settings, err := config.LoadSettings(o.settingsPath)
	if err != nil {
		return nil, err
	}
	ds, err := database.LoadSeed(o.seedPath)
	if err != nil {
		return nil, err
	}
	return app.New(ds, app.Options{Settings: settings, Location: loc, NodeID: 1})
}

// write renders body in the selected format to --out or the command's output.
func (o *options) write(cmd *cobra.Command, body interface{}, csv, xlsx func(io.Writer) error) error {
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("could not create %s: %w", o.out, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case export.FormatCSV:
		return csv(w)
	case export.FormatXLSX:
		return xlsx(w)
	default:
		decimal.MarshalJSONWithoutQuotes = true
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(body)
	}
}
