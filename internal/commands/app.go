package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/service"
	"github.com/beesaferoot/dorm-ledger/internal/store"
)

// App carries what every command needs: configuration, a logger and a lazily
// opened store.
type App struct {
	Config *config.Config
	Log    *zap.Logger

	opts []service.Option
}

// NewApp creates an App. Options are passed on to every Service it builds.
func NewApp(cfg *config.Config, log *zap.Logger, opts ...service.Option) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{Config: cfg, Log: log, opts: opts}
}

// session opens the store, makes sure an admin exists and returns a
// Service along with a func that releases the store.
func (a *App) session(ctx context.Context, out io.Writer) (*service.Service, func(), error) {
	st, err := store.Open(a.Config, a.Log)
	if err != nil {
		return nil, nil, err
	}
	svc := service.New(st, a.Log, a.opts...)
	done := func() {
		if err := st.Close(); err != nil {
			a.Log.Warn("failed to close store", zap.Error(err))
		}
	}

	if a.Config.DefaultAdmin {
		created, err := svc.EnsureDefaultAdmin(ctx)
		if err != nil {
			done()
			return nil, nil, err
		}
		if created {
			fmt.Fprintf(out, "Default admin created: %s / %s\n", service.DefaultAdminUser, service.DefaultAdminPassword)
		}
	}
	return svc, done, nil
}

// run wraps a command body that works on a Service
func (a *App) run(fn func(cmd *cobra.Command, args []string, svc *service.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, done, err := a.session(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer done()
		return fn(cmd, args, svc)
	}
}

// RootCmd builds the dorm command tree
func RootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dorm",
		Short:         "Dormitory management tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		RoomCmd(app),
		TenantCmd(app),
		ContractCmd(app),
		UtilityCmd(app),
		InvoiceCmd(app),
		PaymentCmd(app),
		AdminCmd(app),
		ReportCmd(app),
		DBCmd(app),
	)
	return root
}

// table prints left aligned fixed-width columns under a dashed rule
type table struct {
	w      io.Writer
	widths []int
}

func newTable(w io.Writer, widths []int, header ...string) *table {
	t := &table{w: w, widths: widths}
	t.row(header...)
	total := 0
	for _, n := range widths {
		total += n
	}
	fmt.Fprintln(w, strings.Repeat("-", total))
	return t
}

func (t *table) row(cells ...string) {
	var b strings.Builder
	for i, c := range cells {
		if i < len(t.widths) {
			fmt.Fprintf(&b, "%-*s", t.widths[i], c)
		} else {
			b.WriteString(c)
		}
	}
	fmt.Fprintln(t.w, strings.TrimRight(b.String(), " "))
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
