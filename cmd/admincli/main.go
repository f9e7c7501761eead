// Command admincli provisions accounts and inspects data outside the HTTP
// request path: bootstrapping the first admin, creating workers, and dumping
// an order's report ledger.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"zlecenia-backend-go/internal/auth"
	"zlecenia-backend-go/internal/config"
	"zlecenia-backend-go/internal/db"
	"zlecenia-backend-go/internal/models"
)

// env bundles everything a subcommand needs.
type env struct {
	clients  *db.Clients
	orders   db.OrderRepository
	reports  db.ReportRepository
	userRepo db.UserRepository
	identity *auth.IdentityAdmin
}

func setup(ctx context.Context) (*env, func(), error) {
	_ = godotenv.Load()

	appConfig, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	clients, err := db.NewClients(ctx, appConfig)
	if err != nil {
		return nil, nil, err
	}

	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	identity := auth.NewIdentityAdmin(clients.Auth)

	e := &env{
		clients:  clients,
		orders:   db.NewFirestoreOrderRepository(clients.Firestore),
		reports:  db.NewFirestoreReportRepository(clients.Firestore),
		userRepo: userRepo,
		identity: identity,
	}
	cleanup := func() {
		clients.Close()
	}
	return e, cleanup, nil
}

// provision creates the account if the email is unknown, otherwise reuses the
// existing UID, then upserts the profile. Reruns are safe.
func provision(ctx context.Context, e *env, email, password, displayName, trade, role string) (string, error) {
	uid, err := e.identity.LookupByEmail(ctx, email)
	switch {
	case err == nil:
		fmt.Printf("Account already exists, uid: %s\n", uid)
	case errors.Is(err, auth.ErrAccountNotFound):
		uid, err = e.identity.CreateAccount(ctx, email, password, displayName)
		if err != nil {
			return "", err
		}
		fmt.Printf("Created auth account, uid: %s\n", uid)
	default:
		return "", err
	}

	if err := e.identity.SetRoleClaim(ctx, uid, role); err != nil {
		fmt.Printf("Warning: failed to set role claim: %v\n", err)
	}

	profile := &models.User{
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Trade:       trade,
	}
	if err := e.userRepo.Set(ctx, uid, profile); err != nil {
		return "", err
	}
	fmt.Printf("Wrote profile users/%s (role=%s)\n", uid, role)
	return uid, nil
}

func newBootstrapAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create (or promote) the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			e, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = provision(ctx, e, email, password, name, "", models.RoleAdmin)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newCreateWorkerCmd() *cobra.Command {
	var email, password, name, trade string
	var seedOrder bool

	cmd := &cobra.Command{
		Use:   "create-worker",
		Short: "Create a worker account, optionally with a sample order for its trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			e, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			uid, err := provision(ctx, e, email, password, name, trade, models.RoleWorker)
			if err != nil {
				return err
			}

			if seedOrder {
				price := 400.0
				order := &models.Order{
					Title:       fmt.Sprintf("Sample order - %s", trade),
					Description: "Seeded test order.",
					Trade:       trade,
					Status:      models.StatusOpen,
					Price:       &price,
					Location:    "Ulica Testowa 1",
					OwnerUID:    uid,
				}
				id, err := e.orders.Create(ctx, order)
				if err != nil {
					return err
				}
				fmt.Printf("Seeded order id: %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "worker email")
	cmd.Flags().StringVar(&password, "password", "", "worker password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&trade, "trade", "", "worker trade, e.g. murarz")
	cmd.Flags().BoolVar(&seedOrder, "seed-order", false, "also create a sample open order for the trade")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("trade")
	return cmd
}

func newCheckReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-reports <order-id>",
		Short: "Print an order's report ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			e, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			orderID := args[0]
			order, err := e.orders.GetByID(ctx, orderID)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s: %q (status=%s)\n", order.ID, order.Title, order.Status)

			reports, err := e.reports.ListByOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println("No reports.")
				return nil
			}

			out, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "admincli",
		Short:         "Provisioning and inspection tooling for the order marketplace backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBootstrapAdminCmd(), newCreateWorkerCmd(), newCheckReportsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
