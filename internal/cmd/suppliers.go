package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
)

func newSuppliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppliers",
		Aliases: []string{"supplier", "fournisseurs"},
		Short:   "Manage suppliers",
	}

	cmd.AddCommand(NewListCommand(ListConfig[api.Supplier]{
		Use:          "list",
		Short:        "List suppliers",
		EmptyMessage: "No suppliers found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Supplier, error) {
			return client.Suppliers().List(ctx)
		},
		Headers: []string{"ID", "NAME", "CONTACT", "ADDRESS"},
		RowFunc: func(s api.Supplier) []string {
			return []string{strconv.Itoa(s.ID), s.Nom, orDash(s.Contact), orDash(s.Adresse)}
		},
	}))
	cmd.AddCommand(NewGetCommand(GetConfig[api.Supplier]{
		Resource: "supplier",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.Supplier, error) {
			return client.Suppliers().Get(ctx, id)
		},
		Detail: printSupplierDetails,
	}))
	cmd.AddCommand(newSuppliersCreateCmd())
	cmd.AddCommand(newSuppliersUpdateCmd(false))
	cmd.AddCommand(newSuppliersUpdateCmd(true))
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "supplier",
		Path:     "suppliers/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Suppliers().Delete(ctx, id)
		},
	}))

	return cmd
}

type supplierFlags struct {
	nom     string
	adresse string
	contact string
	image   string
}

func (f *supplierFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nom, "name", "", "Supplier name")
	cmd.Flags().StringVar(&f.adresse, "address", "", "Postal address")
	cmd.Flags().StringVar(&f.contact, "contact", "", "Phone number or email")
	cmd.Flags().StringVar(&f.image, "image", "", "Path to a logo")
}

func (f *supplierFlags) input() (api.SupplierInput, error) {
	image, err := loadImage(f.image)
	if err != nil {
		return api.SupplierInput{}, err
	}
	return api.SupplierInput{Nom: f.nom, Adresse: f.adresse, Contact: f.contact, Image: image}, nil
}

func newSuppliersCreateCmd() *cobra.Command {
	var f supplierFlags

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a supplier",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			if handled, err := maybeDryRun(cmd, formPreview("create", "supplier", "POST", "suppliers/", in.CreateForm())); handled {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			supplier, err := client.Suppliers().Create(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, supplier)
			}
			printAction(cmd, "Created", "supplier", supplier.ID, supplier.Nom)
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}

func newSuppliersUpdateCmd(replace bool) *cobra.Command {
	var f supplierFlags

	op, short, method, verb := "update", "Update a supplier", "PATCH", "Updated"
	if replace {
		op, short, method, verb = "replace", "Replace every field of a supplier", "PUT", "Replaced"
	}

	cmd := &cobra.Command{
		Use:   op + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "supplier")
			if err != nil {
				return err
			}
			if !replace && f.nom == "" && f.adresse == "" && f.contact == "" && f.image == "" {
				return fmt.Errorf("at least one of --name, --address, --contact or --image is required")
			}
			in, err := f.input()
			if err != nil {
				return err
			}

			form := in.UpdateForm()
			if replace {
				form = in.CreateForm()
			}
			if handled, err := maybeDryRun(cmd, formPreview(op, fmt.Sprintf("supplier #%d", id), method, itemPath("suppliers/", id), form)); handled {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			var supplier *api.Supplier
			if replace {
				supplier, err = client.Suppliers().Replace(cmdContext(cmd), id, in)
			} else {
				supplier, err = client.Suppliers().Update(cmdContext(cmd), id, in)
			}
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, supplier)
			}
			printAction(cmd, verb, "supplier", supplier.ID, supplier.Nom)
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}
