// Command echoctl inspects and triages the EchoCity record store from a terminal.
// It reads the same environment as the server and prints JSON.
package main

import (
	"context"
	"echocity/config"
	"echocity/models"
	"echocity/observability"
	"echocity/repository"
	"echocity/seed"
	"echocity/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// openStoreFunc connects a record store and returns a function that releases it
type openStoreFunc func(ctx context.Context) (*service.RecordStore, func() error, error)

// filterFlags holds the list/stats/clusters filters
type filterFlags struct {
	user     string
	category string
	status   string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "WARN: reading .env:", err)
	}

	if err := newRootCmd(openFromEnv).Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func openFromEnv(ctx context.Context) (*service.RecordStore, func() error, error) {
	cfg := config.LoadConfig()
	logger := observability.NewLogger(cfg.LogLevel)

	kv, closeKV, err := repository.OpenKeyValueStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	store := service.NewRecordStore(kv, seed.Default(), service.StoreOptions{
		Logger:          logger,
		PersistProfiles: cfg.Store.PersistProfiles,
	})
	return store, func() error {
		logger.Sync()
		return closeKV()
	}, nil
}

func newRootCmd(open openStoreFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "echoctl",
		Short:         "Inspect and triage EchoCity complaints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// withStore opens the store for the duration of one command
	withStore := func(cmd *cobra.Command, fn func(ctx context.Context, store *service.RecordStore) error) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		store, closeFn, err := open(ctx)
		if err != nil {
			return codeError(3, "opening store: %s", err)
		}
		defer closeFn()
		return fn(ctx, store)
	}

	complaintsCmd := &cobra.Command{
		Use:   "complaints",
		Short: "List complaints or change their status",
	}

	var listFlags filterFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List complaints in stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *service.RecordStore) error {
				complaints, err := filtered(ctx, store, listFlags)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), complaints)
			})
		},
	}
	addFilterFlags(listCmd, &listFlags)

	setStatusCmd := &cobra.Command{
		Use:   "set-status <complaint-id> <pending|in_progress|resolved>",
		Short: "Overwrite a complaint's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.ComplaintStatus(args[1])
			if !status.Valid() {
				return codeError(2, "invalid status %q (want pending, in_progress or resolved)", args[1])
			}
			return withStore(cmd, func(ctx context.Context, store *service.RecordStore) error {
				return store.Complaints.SetComplaintStatus(ctx, args[0], status)
			})
		},
	}

	complaintsCmd.AddCommand(listCmd, setStatusCmd)

	var statsFlags filterFlags
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Count complaints per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *service.RecordStore) error {
				complaints, err := filtered(ctx, store, statsFlags)
				if err != nil {
					return err
				}
				counts := service.CountByStatus(complaints)
				return writeJSON(cmd.OutOrStdout(), models.ComplaintStatsResponse{
					Counts:      counts,
					Percentages: counts.Percentages(),
				})
			})
		},
	}
	addFilterFlags(statsCmd, &statsFlags)

	var clusterFlags filterFlags
	clustersCmd := &cobra.Command{
		Use:   "clusters",
		Short: "Group located complaints into map clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *service.RecordStore) error {
				complaints, err := filtered(ctx, store, clusterFlags)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), service.ClusterComplaints(complaints))
			})
		},
	}
	addFilterFlags(clustersCmd, &clusterFlags)

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the complaint taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *service.RecordStore) error {
				return writeJSON(cmd.OutOrStdout(), store.Complaints.ListCategories())
			})
		},
	}

	root.AddCommand(complaintsCmd, statsCmd, clustersCmd, categoriesCmd)
	return root
}

func addFilterFlags(cmd *cobra.Command, flags *filterFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.user, "user", "", "Only complaints reported by this user id")
	f.StringVar(&flags.category, "category", "", "Only complaints in this category id (\"all\" for every category)")
	f.StringVar(&flags.status, "status", "", "Only complaints with this status (\"all\" for every status)")
}

func filtered(ctx context.Context, store *service.RecordStore, flags filterFlags) ([]models.Complaint, error) {
	complaints, err := store.Complaints.ListComplaints(ctx, flags.user)
	if err != nil {
		return nil, err
	}
	return service.FilterComplaints(complaints, service.ComplaintFilter{
		CategoryID: flags.category,
		Status:     models.ComplaintStatus(flags.status),
	}), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
