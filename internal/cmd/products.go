package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage the product catalog",
	}

	cmd.AddCommand(newProductsListCmd())
	cmd.AddCommand(NewGetCommand(GetConfig[api.Product]{
		Resource: "product",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.Product, error) {
			return client.Products().Get(ctx, id)
		},
		Detail: printProductDetails,
	}))
	cmd.AddCommand(newProductsCreateCmd())
	cmd.AddCommand(newProductsUpdateCmd(false))
	cmd.AddCommand(newProductsUpdateCmd(true))
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "product",
		Path:     "products/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Products().Delete(ctx, id)
		},
	}))

	return cmd
}

func newProductsListCmd() *cobra.Command {
	var (
		category   string
		supplierID int
		search     string
	)

	return NewListCommand(ListConfig[api.Product]{
		Use:          "list",
		Short:        "List products",
		EmptyMessage: "No products found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Product, error) {
			return client.Products().List(ctx)
		},
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&category, "category", "", "Only show products in this category")
			cmd.Flags().IntVar(&supplierID, "supplier-id", 0, "Only show products from this supplier")
			cmd.Flags().StringVar(&search, "search", "", "Only show products whose name or reference contains this text")
		},
		Filter: func(_ *cobra.Command, p api.Product) bool {
			if category != "" && !strings.EqualFold(p.Categorie, category) {
				return false
			}
			if supplierID != 0 && p.Fournisseur.ID != supplierID {
				return false
			}
			if search != "" {
				needle := strings.ToLower(search)
				if !strings.Contains(strings.ToLower(p.Nom), needle) && !strings.Contains(strings.ToLower(p.Reference), needle) {
					return false
				}
			}
			return true
		},
		Headers: []string{"ID", "REFERENCE", "NAME", "CATEGORY", "PRICE", "THRESHOLD", "SUPPLIER"},
		RowFunc: func(p api.Product) []string {
			return []string{
				strconv.Itoa(p.ID),
				orDash(p.Reference),
				p.Nom,
				orDash(p.Categorie),
				p.PrixUnitaire.StringFixed(2),
				strconv.Itoa(int(p.SeuilAlerte)),
				refLabel(p.Fournisseur),
			}
		},
	})
}

type productFlags struct {
	nom       string
	reference string
	categorie string
	price     string
	threshold int
	supplier  string
	image     string
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nom, "name", "", "Product name")
	cmd.Flags().StringVar(&f.reference, "reference", "", "Product reference (SKU)")
	cmd.Flags().StringVar(&f.categorie, "category", "", "Category")
	cmd.Flags().StringVar(&f.price, "price", "", "Unit price (e.g. 4500 or 12.50)")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "Low-stock alert threshold")
	cmd.Flags().StringVar(&f.supplier, "supplier", "", "Supplier (ID or name)")
	cmd.Flags().StringVar(&f.image, "image", "", "Path to a product picture")
}

func (f *productFlags) empty(cmd *cobra.Command) bool {
	return f.nom == "" && f.reference == "" && f.categorie == "" && f.price == "" &&
		!cmd.Flags().Changed("threshold") && f.supplier == "" && f.image == ""
}

func (f *productFlags) input(cmd *cobra.Command, client *api.Client) (api.ProductInput, error) {
	in := api.ProductInput{
		Nom:         f.nom,
		Reference:   f.reference,
		Categorie:   f.categorie,
		SeuilAlerte: intPtrIfChanged(cmd, "threshold", f.threshold),
	}
	if in.SeuilAlerte != nil && *in.SeuilAlerte < 0 {
		return api.ProductInput{}, fmt.Errorf("--threshold must be >= 0")
	}
	if f.price != "" {
		price, err := parsePrice(f.price)
		if err != nil {
			return api.ProductInput{}, err
		}
		in.PrixUnitaire = &price
	}
	if f.supplier != "" {
		id, err := resolveSupplierID(cmdContext(cmd), client, f.supplier)
		if err != nil {
			return api.ProductInput{}, err
		}
		in.Fournisseur = id
	}
	image, err := loadImage(f.image)
	if err != nil {
		return api.ProductInput{}, err
	}
	in.Image = image
	return in, nil
}

// parsePrice accepts "4500", "12.50" and the French "12,50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid --price %q: must be a number", s)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("invalid --price %q: must be >= 0", s)
	}
	return price, nil
}

func newProductsCreateCmd() *cobra.Command {
	var f productFlags

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a product",
		Example: "  stockpro products create --name \"Riz parfumé 25kg\" --reference RIZ-25 --category Alimentation --price 17500 --threshold 10 --supplier Senegal",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			in, err := f.input(cmd, client)
			if err != nil {
				return err
			}

			if handled, err := maybeDryRun(cmd, formPreview("create", "product", "POST", "products/", in.CreateForm())); handled {
				return err
			}

			product, err := client.Products().Create(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, product)
			}
			printAction(cmd, "Created", "product", product.ID, product.Nom)
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}

// newProductsUpdateCmd builds "update" (PATCH, only the given fields) or
// "replace" (PUT, every field).
func newProductsUpdateCmd(replace bool) *cobra.Command {
	var f productFlags

	op, short, method, verb := "update", "Update a product", "PATCH", "Updated"
	if replace {
		op, short, method, verb = "replace", "Replace every field of a product", "PUT", "Replaced"
	}

	cmd := &cobra.Command{
		Use:   op + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "product")
			if err != nil {
				return err
			}
			if !replace && f.empty(cmd) {
				return fmt.Errorf("at least one field flag is required")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			in, err := f.input(cmd, client)
			if err != nil {
				return err
			}

			form := in.UpdateForm()
			if replace {
				form = in.CreateForm()
			}
			preview := formPreview(op, fmt.Sprintf("product #%d", id), method, itemPath("products/", id), form)
			if handled, err := maybeDryRun(cmd, preview); handled {
				return err
			}

			var product *api.Product
			if replace {
				product, err = client.Products().Replace(cmdContext(cmd), id, in)
			} else {
				product, err = client.Products().Update(cmdContext(cmd), id, in)
			}
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, product)
			}
			printAction(cmd, verb, "product", product.ID, product.Nom)
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}
