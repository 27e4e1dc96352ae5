// Package cli defines the cobra command tree for rentkit.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/localstore"
	"github.com/rentkit/rentkit/internal/logging"
	"github.com/rentkit/rentkit/internal/remote"
	"github.com/rentkit/rentkit/internal/report"
	"github.com/rentkit/rentkit/internal/session"
	"github.com/rentkit/rentkit/internal/store"
)

var (
	flagFormat  string
	flagDB      string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentkit",
		Short:         "Manage rental properties, tenants, and payments",
		Long:          "Manage rental properties, tenants, payments, checklists, and comments. Data syncs to the hosted backend when signed in and falls back to local storage otherwise.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "local store path (default: ~/.rentkit/rentkit.db)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newPropertyCmd(),
		newTenantCmd(),
		newPaymentCmd(),
		newChecklistCmd(),
		newCommentCmd(),
		newDashboardCmd(),
		newCalendarCmd(),
		newReportCmd(),
		newVersionCmd(),
	)

	return root
}

// app bundles the wired-up layers behind every command.
type app struct {
	kv      *localstore.Store
	session *session.Manager
	store   *store.Store
}

// newApp opens the local store and wires the remote client, session
// manager, and synchronization layer.
func newApp() (*app, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = localstore.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	kv, err := localstore.Open(path)
	if err != nil {
		return nil, err
	}

	client := remote.New(getServerURL(), getAnonKey())
	sess := session.NewManager(client, kv)
	st := store.New(client, sess, kv)

	return &app{kv: kv, session: sess, store: st}, nil
}

// Close releases the store subscription and the local database.
func (a *app) Close() {
	a.store.Close()
	if err := a.kv.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing local store: %v\n", err)
	}
}

// snapshot assembles a read-only view of all five collections.
func (a *app) snapshot() report.Snapshot {
	return report.Snapshot{
		Properties: a.store.Properties.Items(),
		Tenants:    a.store.Tenants.Items(),
		Payments:   a.store.Payments.Items(),
		Checklists: a.store.Checklists.Items(),
		Comments:   a.store.Comments.Items(),
	}
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// requireServer errors when no backend is configured. Auth commands need
// one; everything else works offline against the local store.
func requireServer() error {
	if getServerURL() == "" {
		return fmt.Errorf("no backend configured: set RENTKIT_SERVER_URL, run login --server <url>, or set server_url in the config file")
	}
	return nil
}
