package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/validation"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage user accounts",
		Long:    "List, create, update and delete StockPro user accounts (admin only for writes)",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(NewGetCommand(GetConfig[api.User]{
		Resource: "user",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.User, error) {
			return client.Users().Get(ctx, id)
		},
		Detail: printUserDetails,
	}))
	cmd.AddCommand(newUsersCreateCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "user",
		Path:     "auth/users/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Users().Delete(ctx, id)
		},
	}))

	return cmd
}

func newUsersListCmd() *cobra.Command {
	var (
		role    string
		storeID int
	)

	return NewListCommand(ListConfig[api.User]{
		Use:          "list",
		Short:        "List users",
		EmptyMessage: "No users found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.User, error) {
			return client.Users().List(ctx)
		},
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().StringVar(&role, "role", "", "Only show users with this role (admin|employee)")
			cmd.Flags().IntVar(&storeID, "store-id", 0, "Only show users assigned to this store")
		},
		Filter: func(_ *cobra.Command, u api.User) bool {
			if role != "" && string(u.Role) != role {
				return false
			}
			if storeID != 0 && u.Magasin.ID != storeID {
				return false
			}
			return true
		},
		Headers: []string{"ID", "NAME", "EMAIL", "ROLE", "STORE"},
		RowFunc: func(u api.User) []string {
			return []string{
				strconv.Itoa(u.ID),
				orDash(u.FullName()),
				orDash(u.Email),
				orDash(string(u.Role)),
				refLabel(u.Magasin),
			}
		},
	})
}

type userFlags struct {
	username string
	email    string
	nom      string
	prenom   string
	password string
	stdin    bool
	role     string
	store    string
	image    string
}

func (f *userFlags) register(cmd *cobra.Command, create bool) {
	if create {
		cmd.Flags().StringVar(&f.username, "username", "", "Username (defaults to the local part of the email)")
		cmd.Flags().StringVar(&f.email, "email", "", "Email address")
		cmd.Flags().StringVar(&f.password, "password", "", "Initial password")
		cmd.Flags().BoolVar(&f.stdin, "password-stdin", false, "Read the password from stdin")
	}
	cmd.Flags().StringVar(&f.nom, "nom", "", "Last name")
	cmd.Flags().StringVar(&f.prenom, "prenom", "", "First name")
	cmd.Flags().StringVar(&f.role, "role", "", "Role: admin|employee")
	cmd.Flags().StringVar(&f.store, "store", "", "Assigned store (ID or name)")
	cmd.Flags().StringVar(&f.image, "image", "", "Path to a profile picture")
}

func (f *userFlags) input(ctx context.Context, client *api.Client) (api.UserInput, error) {
	if f.role != "" && !api.Role(f.role).Valid() {
		return api.UserInput{}, fmt.Errorf("invalid --role %q (use admin or employee)", f.role)
	}
	in := api.UserInput{
		Username: f.username,
		Email:    strings.TrimSpace(f.email),
		Nom:      f.nom,
		Prenom:   f.prenom,
		Password: f.password,
		Role:     api.Role(f.role),
	}
	if f.store != "" {
		id, err := resolveStoreID(ctx, client, f.store)
		if err != nil {
			return api.UserInput{}, err
		}
		in.Magasin = id
	}
	image, err := loadImage(f.image)
	if err != nil {
		return api.UserInput{}, err
	}
	in.Image = image
	return in, nil
}

func newUsersCreateCmd() *cobra.Command {
	var f userFlags

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a user account",
		Example: "  stockpro users create --email awa@example.com --prenom Awa --nom Diop --role employee --store Plateau --password-stdin",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if f.email != "" {
				if err := validation.ValidateEmailFormat(f.email); err != nil {
					return err
				}
			}
			if f.stdin {
				if f.password != "" {
					return fmt.Errorf("--password conflicts with --password-stdin")
				}
				password, err := readLine(cmd)
				if err != nil {
					return fmt.Errorf("failed to read password from stdin: %w", err)
				}
				f.password = password
			}
			if f.role == "" {
				f.role = string(api.RoleEmployee)
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			in, err := f.input(cmdContext(cmd), client)
			if err != nil {
				return err
			}

			form := in.CreateForm()
			if handled, err := maybeDryRun(cmd, formPreview("create", "user", "POST", "auth/users/", form)); handled {
				return err
			}

			user, err := client.Users().Create(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, user)
			}
			printAction(cmd, "Created", "user", user.ID, user.FullName())
			return nil
		}),
	}

	f.register(cmd, true)
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	var f userFlags

	cmd := &cobra.Command{
		Use:     "update <id>",
		Aliases: []string{"edit"},
		Short:   "Update a user account",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "user")
			if err != nil {
				return err
			}
			if f.nom == "" && f.prenom == "" && f.role == "" && f.store == "" && f.image == "" {
				return fmt.Errorf("at least one of --nom, --prenom, --role, --store or --image is required")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			in, err := f.input(cmdContext(cmd), client)
			if err != nil {
				return err
			}

			path := itemPath("auth/users/", id)
			if handled, err := maybeDryRun(cmd, formPreview("update", fmt.Sprintf("user #%d", id), "PATCH", path, in.UpdateForm())); handled {
				return err
			}

			user, err := client.Users().Update(cmdContext(cmd), id, in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, user)
			}
			printAction(cmd, "Updated", "user", user.ID, user.FullName())
			return nil
		}),
	}

	f.register(cmd, false)
	return cmd
}
