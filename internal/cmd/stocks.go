package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
)

func newStocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stocks",
		Aliases: []string{"stock", "st"},
		Short:   "Manage stock levels and movements",
	}

	cmd.AddCommand(newStocksListCmd())
	cmd.AddCommand(NewGetCommand(GetConfig[api.Stock]{
		Resource: "stock",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.Stock, error) {
			return client.Stocks().Get(ctx, id)
		},
		Detail: printStockDetails,
	}))
	cmd.AddCommand(newStocksCreateCmd())
	cmd.AddCommand(newStocksUpdateCmd())
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "stock",
		Path:     "stocks/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Stocks().Delete(ctx, id)
		},
	}))
	cmd.AddCommand(newMovementsCmd())

	return cmd
}

func newStocksListCmd() *cobra.Command {
	var storeID, productID int

	return NewListCommand(ListConfig[api.Stock]{
		Use:          "list",
		Short:        "List stock lines",
		EmptyMessage: "No stock found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Stock, error) {
			return client.Stocks().List(ctx)
		},
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().IntVar(&storeID, "store-id", 0, "Only show stock held by this store")
			cmd.Flags().IntVar(&productID, "product-id", 0, "Only show stock of this product")
		},
		Filter: func(_ *cobra.Command, s api.Stock) bool {
			return (storeID == 0 || s.Magasin.ID == storeID) && (productID == 0 || s.Produit.ID == productID)
		},
		Headers: []string{"ID", "PRODUCT", "STORE", "QUANTITY", "UPDATED"},
		RowFunc: func(s api.Stock) []string {
			return []string{
				strconv.Itoa(s.ID),
				refLabel(s.Produit),
				refLabel(s.Magasin),
				strconv.Itoa(int(s.Quantite)),
				orDash(s.DateMiseAJour),
			}
		},
	})
}

func newStocksCreateCmd() *cobra.Command {
	var (
		product, store string
		quantity       int
	)

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a stock line for a product in a store",
		Example: "  stockpro stocks create --product RIZ-25 --store Plateau --quantity 40",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if product == "" || store == "" {
				return fmt.Errorf("--product and --store are required")
			}
			if quantity < 0 {
				return fmt.Errorf("--quantity must be >= 0")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			productID, err := resolveProductID(ctx, client, product)
			if err != nil {
				return err
			}
			storeID, err := resolveStoreID(ctx, client, store)
			if err != nil {
				return err
			}

			in := api.StockInput{Produit: productID, Magasin: storeID, Quantite: &quantity}
			if handled, err := maybeDryRun(cmd, bodyPreview("create", "stock", "POST", "stocks/", in.CreateBody())); handled {
				return err
			}

			stock, err := client.Stocks().Create(ctx, in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, stock)
			}
			printAction(cmd, "Created", "stock", stock.ID, "")
			return nil
		}),
	}

	cmd.Flags().StringVar(&product, "product", "", "Product (ID, name or reference)")
	cmd.Flags().StringVar(&store, "store", "", "Store (ID or name)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Initial quantity")
	return cmd
}

func newStocksUpdateCmd() *cobra.Command {
	var (
		product, store string
		quantity       int
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Aliases: []string{"set"},
		Short:   "Update a stock line",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "stock")
			if err != nil {
				return err
			}
			qty := intPtrIfChanged(cmd, "quantity", quantity)
			if product == "" && store == "" && qty == nil {
				return fmt.Errorf("at least one of --product, --store or --quantity is required")
			}
			if qty != nil && *qty < 0 {
				return fmt.Errorf("--quantity must be >= 0")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			in := api.StockInput{Quantite: qty}
			if in.Produit, err = resolveProductID(ctx, client, product); err != nil {
				return err
			}
			if in.Magasin, err = resolveStoreID(ctx, client, store); err != nil {
				return err
			}

			if handled, err := maybeDryRun(cmd, bodyPreview("update", fmt.Sprintf("stock #%d", id), "PATCH", itemPath("stocks/", id), in.UpdateBody())); handled {
				return err
			}

			stock, err := client.Stocks().Update(ctx, id, in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, stock)
			}
			printAction(cmd, "Updated", "stock", stock.ID, "")
			return nil
		}),
	}

	cmd.Flags().StringVar(&product, "product", "", "Product (ID, name or reference)")
	cmd.Flags().StringVar(&store, "store", "", "Store (ID or name)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "New quantity")
	return cmd
}

func newMovementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "movements",
		Aliases: []string{"movement", "mv"},
		Short:   "List and record stock entries and exits",
	}

	var (
		kind    string
		storeID int
		window  timeWindow
	)
	cmd.AddCommand(NewListCommand(ListConfig[api.Movement]{
		Use:          "list",
		Short:        "List stock movements",
		EmptyMessage: "No movements found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Movement, error) {
			return client.Stocks().Movements().List(ctx)
		},
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&kind, "type", "", "Only show this direction (entree|sortie)")
			cmd.Flags().IntVar(&storeID, "store-id", 0, "Only show movements of this store")
			window.register(cmd, "movements")
		},
		Validate: func(*cobra.Command) error {
			return window.parse(time.Now())
		},
		Filter: func(_ *cobra.Command, m api.Movement) bool {
			return (kind == "" || string(m.TypeMouvement) == kind) &&
				(storeID == 0 || m.Magasin.ID == storeID) &&
				window.contains(m.Date)
		},
		Headers: []string{"ID", "DATE", "TYPE", "PRODUCT", "STORE", "QUANTITY", "REASON"},
		RowFunc: func(m api.Movement) []string {
			return []string{
				strconv.Itoa(m.ID),
				orDash(m.Date),
				string(m.TypeMouvement),
				refLabel(m.Produit),
				refLabel(m.Magasin),
				strconv.Itoa(int(m.Quantite)),
				orDash(m.Motif),
			}
		},
	}))
	cmd.AddCommand(newMovementsCreateCmd())

	return cmd
}

func newMovementsCreateCmd() *cobra.Command {
	var (
		product, store, kind, reason string
		quantity                     int
	)

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Record a stock entry or exit",
		Example: "  stockpro stocks movements create --type entree --product RIZ-25 --store Plateau --quantity 20 --reason \"Livraison\"",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if !api.MovementType(kind).Valid() {
				return fmt.Errorf("invalid --type %q (use %s or %s)", kind, api.MovementIn, api.MovementOut)
			}
			if product == "" || store == "" {
				return fmt.Errorf("--product and --store are required")
			}
			if quantity <= 0 {
				return fmt.Errorf("--quantity must be > 0")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			in := api.MovementInput{TypeMouvement: api.MovementType(kind), Quantite: quantity, Motif: reason}
			if in.Produit, err = resolveProductID(ctx, client, product); err != nil {
				return err
			}
			if in.Magasin, err = resolveStoreID(ctx, client, store); err != nil {
				return err
			}

			if handled, err := maybeDryRun(cmd, bodyPreview("create", "movement", "POST", "stocks/movements/", in.Body())); handled {
				return err
			}

			movement, err := client.Stocks().Movements().Create(ctx, in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, movement)
			}
			printAction(cmd, "Recorded", "movement", movement.ID, fmt.Sprintf("%s %d", movement.TypeMouvement, movement.Quantite))
			return nil
		}),
	}

	cmd.Flags().StringVar(&kind, "type", "", "Direction: entree|sortie (required)")
	cmd.Flags().StringVar(&product, "product", "", "Product (ID, name or reference)")
	cmd.Flags().StringVar(&store, "store", "", "Store (ID or name)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity moved")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the movement")
	return cmd
}
