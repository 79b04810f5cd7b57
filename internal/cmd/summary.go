package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/dashboard"
)

func newSummaryCmd() *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard", "overview"},
		Short:   "Show stock totals, inventory value and low-stock alerts",
		Long: `Fetch products, stores, suppliers and stock concurrently and print an
overview: record counts, units in stock, inventory value per store and every
stock line at or below its product's alert threshold.`,
		Example: `  stockpro summary
  stockpro summary --store Plateau
  stockpro summary -o json --jq '.alertes[].produit_nom'`,
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)

			storeID, err := resolveStoreID(ctx, client, store)
			if err != nil {
				return err
			}

			summary, err := dashboard.Load(ctx, dashboard.FromClient(client), storeID)
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, summary)
			}
			return printSummary(cmd, summary)
		}),
	}

	cmd.Flags().StringVar(&store, "store", "", "Restrict stock figures to one store (ID or name)")
	return cmd
}

func printSummary(cmd *cobra.Command, s *dashboard.Summary) error {
	f := newFormatter(cmd)
	out := ioStreams(cmd).Out

	f.Field("Products", s.Products)
	f.Field("Stores", s.Stores)
	f.Field("Suppliers", s.Suppliers)
	f.Field("Stock lines", s.StockLines)
	f.Field("Units in stock", s.TotalUnits)
	f.Field("Inventory value", s.InventoryValue.StringFixed(2))
	if err := f.EndTable(); err != nil {
		return err
	}

	if len(s.ByStore) > 0 {
		_, _ = fmt.Fprintln(out)
		f.StartTable([]string{"STORE", "UNITS", "VALUE"})
		for _, t := range s.ByStore {
			f.Row(t.Store, strconv.Itoa(t.Units), t.Value.StringFixed(2))
		}
		if err := f.EndTable(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out)
	if len(s.LowStock) == 0 {
		_, _ = fmt.Fprintln(out, colorize(cmd, "No low-stock alerts.", colorGreen))
		return nil
	}
	_, _ = fmt.Fprintln(out, colorize(cmd, fmt.Sprintf("Low stock (%d)", len(s.LowStock)), colorBold+colorRed))
	f.StartTable([]string{"PRODUCT", "STORE", "QUANTITY", "THRESHOLD"})
	for _, l := range s.LowStock {
		f.Row(l.Product, l.Store, colorize(cmd, strconv.Itoa(l.Quantite), colorRed), strconv.Itoa(l.Seuil))
	}
	return f.EndTable()
}
