package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/validation"
)

func newStoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store", "magasins", "s"},
		Short:   "Manage stores",
	}

	cmd.AddCommand(NewListCommand(ListConfig[api.Store]{
		Use:          "list",
		Short:        "List stores",
		EmptyMessage: "No stores found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Store, error) {
			return client.Stores().List(ctx)
		},
		Headers: []string{"ID", "NAME", "ADDRESS", "POSITION"},
		RowFunc: func(s api.Store) []string {
			return []string{strconv.Itoa(s.ID), s.Nom, orDash(s.Adresse), storePoint(&s)}
		},
	}))
	cmd.AddCommand(NewGetCommand(GetConfig[api.Store]{
		Resource: "store",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.Store, error) {
			return client.Stores().Get(ctx, id)
		},
		Detail: printStoreDetails,
	}))
	cmd.AddCommand(newStoresCreateCmd())
	cmd.AddCommand(newStoresUpdateCmd(false))
	cmd.AddCommand(newStoresUpdateCmd(true))
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "store",
		Path:     "stores/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Stores().Delete(ctx, id)
		},
	}))

	return cmd
}

type storeFlags struct {
	nom     string
	adresse string
	lat     float64
	lng     float64
	image   string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.nom, "name", "", "Store name")
	cmd.Flags().StringVar(&f.adresse, "address", "", "Postal address")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "Longitude")
	cmd.Flags().StringVar(&f.image, "image", "", "Path to a store picture")
}

func (f *storeFlags) empty(cmd *cobra.Command) bool {
	return f.nom == "" && f.adresse == "" && f.image == "" &&
		!cmd.Flags().Changed("lat") && !cmd.Flags().Changed("lng")
}

func (f *storeFlags) input(cmd *cobra.Command) (api.StoreInput, error) {
	in := api.StoreInput{
		Nom:       f.nom,
		Adresse:   f.adresse,
		Latitude:  floatPtrIfChanged(cmd, "lat", f.lat),
		Longitude: floatPtrIfChanged(cmd, "lng", f.lng),
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return api.StoreInput{}, fmt.Errorf("--lat and --lng must be given together")
	}
	if in.Latitude != nil {
		if err := validation.ValidateCoordinates(*in.Latitude, *in.Longitude); err != nil {
			return api.StoreInput{}, err
		}
	}
	image, err := loadImage(f.image)
	if err != nil {
		return api.StoreInput{}, err
	}
	in.Image = image
	return in, nil
}

func newStoresCreateCmd() *cobra.Command {
	var f storeFlags

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a store",
		Example: "  stockpro stores create --name Plateau --address \"Avenue Pompidou, Dakar\" --lat 14.6708 --lng -17.4381",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			in, err := f.input(cmd)
			if err != nil {
				return err
			}
			if handled, err := maybeDryRun(cmd, formPreview("create", "store", "POST", "stores/", in.CreateForm())); handled {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			store, err := client.Stores().Create(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, store)
			}
			printAction(cmd, "Created", "store", store.ID, store.Nom)
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}

func newStoresUpdateCmd(replace bool) *cobra.Command {
	var f storeFlags

	op, short, method, verb := "update", "Update a store", "PATCH", "Updated"
	if replace {
		op, short, method, verb = "replace", "Replace every field of a store", "PUT", "Replaced"
	}

	cmd := &cobra.Command{
		Use:   op + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "store")
			if err != nil {
				return err
			}
			if !replace && f.empty(cmd) {
				return fmt.Errorf("at least one field flag is required")
			}
			in, err := f.input(cmd)
			if err != nil {
				return err
			}

			form := in.UpdateForm()
			if replace {
				form = in.CreateForm()
			}
			if handled, err := maybeDryRun(cmd, formPreview(op, fmt.Sprintf("store #%d", id), method, itemPath("stores/", id), form)); handled {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			var store *api.Store
			if replace {
				store, err = client.Stores().Replace(cmdContext(cmd), id, in)
			} else {
				store, err = client.Stores().Update(cmdContext(cmd), id, in)
			}
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, store)
			}
			printAction(cmd, verb, "store", store.ID, store.Nom)
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}
