package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/debug"
	"github.com/stockpro/stockpro-cli/internal/geo"
	"github.com/stockpro/stockpro-cli/internal/when"
)

func newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"pointage", "att"},
		Short:   "Record and review attendance punches",
	}

	cmd.AddCommand(newAttendanceListCmd())
	cmd.AddCommand(NewGetCommand(GetConfig[api.Attendance]{
		Resource: "attendance",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.Attendance, error) {
			return client.Attendance().Get(ctx, id)
		},
		Detail: printAttendanceDetails,
	}))
	cmd.AddCommand(newAttendanceCheckInCmd())
	cmd.AddCommand(newAttendanceUpdateCmd())
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "attendance",
		Path:     "attendance/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Attendance().Delete(ctx, id)
		},
	}))

	return cmd
}

func newAttendanceListCmd() *cobra.Command {
	var (
		userID, storeID int
		kind            string
		window          timeWindow
	)

	return NewListCommand(ListConfig[api.Attendance]{
		Use:          "list",
		Short:        "List attendance punches",
		Example: `  stockpro attendance list --since today
  stockpro attendance list --user-id 4 --since lundi --until today`,
		EmptyMessage: "No attendance records found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Attendance, error) {
			return client.Attendance().List(ctx)
		},
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().IntVar(&userID, "user-id", 0, "Only show punches of this user")
			cmd.Flags().IntVar(&storeID, "store-id", 0, "Only show punches at this store")
			cmd.Flags().StringVar(&kind, "type", "", "Only show this punch type (arrivee|depart|pause_debut|pause_fin)")
			window.register(cmd, "punches")
		},
		Validate: func(*cobra.Command) error {
			return window.parse(time.Now())
		},
		Filter: func(_ *cobra.Command, a api.Attendance) bool {
			return (userID == 0 || a.Utilisateur.ID == userID) &&
				(storeID == 0 || a.Magasin.ID == storeID) &&
				(kind == "" || string(a.TypePointage) == kind) &&
				window.contains(a.Horodatage)
		},
		Headers: []string{"ID", "TIME", "TYPE", "USER", "STORE"},
		RowFunc: func(a api.Attendance) []string {
			return []string{
				strconv.Itoa(a.ID),
				orDash(a.Horodatage),
				string(a.TypePointage),
				refLabel(a.Utilisateur),
				refLabel(a.Magasin),
			}
		},
	})
}

func newAttendanceCheckInCmd() *cobra.Command {
	var (
		kind, store string
		lat, lng    float64
		skipGeo     bool
		radius      float64
	)

	cmd := &cobra.Command{
		Use:     "check-in",
		Aliases: []string{"punch", "pointer"},
		Short:   "Record an attendance punch at a store",
		Long: `Record an arrival, departure or break punch.

The punch is refused unless --lat/--lng place you within the check-in radius
of the store. The store defaults to the one assigned to your account.`,
		Example: `  stockpro attendance check-in --lat 14.6708 --lng -17.4381
  stockpro attendance check-in --type depart --store Plateau --lat 14.6708 --lng -17.4381`,
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			punch := api.AttendanceType(kind)
			if !punch.Valid() {
				return fmt.Errorf("invalid --type %q (use arrivee, depart, pause_debut or pause_fin)", kind)
			}
			hasPos := cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng")
			if !hasPos && !skipGeo {
				return fmt.Errorf("--lat and --lng are required (or pass --skip-geo)")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)

			storeID, err := checkInStore(ctx, client, store)
			if err != nil {
				return err
			}

			in := api.AttendanceInput{Magasin: storeID, TypePointage: punch}
			if hasPos {
				in.Latitude = &lat
				in.Longitude = &lng
			}

			if !skipGeo {
				target, err := client.Stores().Get(ctx, storeID)
				if err != nil {
					return err
				}
				storePos := geo.Point{Lat: float64(target.Latitude), Lng: float64(target.Longitude)}
				if storePos.Lat == 0 && storePos.Lng == 0 {
					_, _ = fmt.Fprintf(ioStreams(cmd).ErrOut, "Warning: store %q has no coordinates; position not checked\n", target.Nom)
				} else {
					pos := geo.Point{Lat: lat, Lng: lng}
					debug.Log(ctx, "checking position", "position", pos.String(), "store", storePos.String(), "distance", geo.Distance(pos, storePos))
					if err := geo.Within(pos, storePos, radius); err != nil {
						return err
					}
				}
			}

			if handled, err := maybeDryRun(cmd, bodyPreview("create", "attendance", "POST", "attendance/", in.CreateBody())); handled {
				return err
			}

			record, err := client.Attendance().Create(ctx, in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, record)
			}
			printAction(cmd, "Recorded", "attendance", record.ID, string(record.TypePointage))
			return nil
		}),
	}

	cmd.Flags().StringVar(&kind, "type", string(api.AttendanceArrival), "Punch type: arrivee|depart|pause_debut|pause_fin")
	cmd.Flags().StringVar(&store, "store", "", "Store (ID or name; defaults to your assigned store)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Current latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Current longitude")
	cmd.Flags().BoolVar(&skipGeo, "skip-geo", false, "Do not check the distance to the store")
	cmd.Flags().Float64Var(&radius, "radius", geo.CheckInRadius, "Maximum distance to the store in meters")
	return cmd
}

// checkInStore resolves --store, falling back to the caller's assigned store.
func checkInStore(ctx context.Context, client *api.Client, store string) (int, error) {
	if store != "" {
		return resolveStoreID(ctx, client, store)
	}
	me, err := client.Auth().Me(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to look up your assigned store: %w", err)
	}
	if me.Magasin.IsZero() {
		return 0, fmt.Errorf("--store is required: no store is assigned to your account")
	}
	return me.Magasin.ID, nil
}

func newAttendanceUpdateCmd() *cobra.Command {
	var kind, timestamp string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Correct an attendance punch",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "attendance")
			if err != nil {
				return err
			}
			if kind == "" && timestamp == "" {
				return fmt.Errorf("at least one of --type or --time is required")
			}
			in := api.AttendanceInput{TypePointage: api.AttendanceType(kind)}
			if timestamp != "" {
				t, err := when.Parse(timestamp, time.Now())
				if err != nil {
					return fmt.Errorf("invalid --time: %w", err)
				}
				in.Horodatage = t.Format(time.RFC3339)
			}
			if kind != "" && !in.TypePointage.Valid() {
				return fmt.Errorf("invalid --type %q (use arrivee, depart, pause_debut or pause_fin)", kind)
			}

			if handled, err := maybeDryRun(cmd, bodyPreview("update", fmt.Sprintf("attendance #%d", id), "PATCH", itemPath("attendance/", id), in.UpdateBody())); handled {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			record, err := client.Attendance().Update(cmdContext(cmd), id, in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, record)
			}
			printAction(cmd, "Updated", "attendance", record.ID, "")
			return nil
		}),
	}

	cmd.Flags().StringVar(&kind, "type", "", "Punch type: arrivee|depart|pause_debut|pause_fin")
	cmd.Flags().StringVar(&timestamp, "time", "", "Punch time: 8h30 (today), 2024-05-02 17:00 or RFC 3339")
	return cmd
}
