package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jobdeck/careers-api/config"
	"github.com/jobdeck/careers-api/internal/bootstrap"
	"github.com/jobdeck/careers-api/internal/devseed"
	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"db-reset": {
			name:        "db-reset",
			description: "Drop the database schema, run migrations, and optionally seed data",
			run:         runDBReset,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"grant-role": {
			name:        "grant-role",
			description: "Grant or update a user's role (admin or subadmin)",
			run:         runGrantRole,
		},
		"revoke-role": {
			name:        "revoke-role",
			description: "Remove a user's role",
			run:         runRevokeRole,
		},
		"outbox-status": {
			name:        "outbox-status",
			description: "Show email outbox counts by delivery state",
			run:         runOutboxStatus,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: careers-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := cmds[name]
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

type migrateOptions struct {
	Timeout time.Duration
}

type dbResetOptions struct {
	Timeout     time.Duration
	Yes         bool
	Seed        bool
	AllowRemote bool
}

type dbSeedOptions struct {
	Timeout     time.Duration
	AllowRemote bool
}

type grantRoleOptions struct {
	UserID  string
	Role    string
	Timeout time.Duration
}

type revokeRoleOptions struct {
	UserID  string
	Timeout time.Duration
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func runDBReset(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBResetFlags(args)
	if err != nil {
		return err
	}

	target := fmt.Sprintf(
		"database %q on %s:%d",
		cmdCtx.Config.Postgres.Name,
		cmdCtx.Config.Postgres.Host,
		cmdCtx.Config.Postgres.Port,
	)

	remote, err := guardRemoteHost(cmdCtx, opts.AllowRemote, "drop and recreate the public schema")
	if err != nil {
		return err
	}

	if confirmErr := confirmReset(opts, target, remote); confirmErr != nil {
		return confirmErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("dropping public schema", "database", cmdCtx.Config.Postgres.Name)
		if resetErr := cmdCtx.resetDatabase(ctx, db); resetErr != nil {
			return resetErr
		}

		cmdCtx.Logger.Info("re-running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		if opts.Seed {
			cmdCtx.Logger.Info("seeding development data after reset")
			svcs := devseed.NewServices(db, cmdCtx.Logger)
			if seedErr := devseed.Run(ctx, svcs, cmdCtx.Config.Auth.DevAuth.UserID, cmdCtx.Logger); seedErr != nil {
				return fmt.Errorf("seed data: %w", seedErr)
			}
		}

		cmdCtx.Logger.Info("database reset completed successfully")
		return nil
	})
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}

	if guardErr := guardRemoteHostSimple(cmdCtx, opts.AllowRemote, "seed development data on the configured database"); guardErr != nil {
		return guardErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("seeding development data")
		svcs := devseed.NewServices(db, cmdCtx.Logger)
		if seedErr := devseed.Run(ctx, svcs, cmdCtx.Config.Auth.DevAuth.UserID, cmdCtx.Logger); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}

		cmdCtx.Logger.Info("database seeding completed successfully")
		return nil
	})
}

func runGrantRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseGrantRoleFlags(args)
	if err != nil {
		return err
	}

	role := domainauth.ParseRole(opts.Role)
	if !role.Elevated() {
		return fmt.Errorf("invalid role %q; expected admin or subadmin", opts.Role)
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		_, execErr := db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`,
			opts.UserID, string(role))
		if execErr != nil {
			return fmt.Errorf("grant role: %w", execErr)
		}
		cmdCtx.Logger.Info("role granted", "user_id", opts.UserID, "role", string(role))
		return nil
	})
}

func runRevokeRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeRoleFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		res, execErr := db.ExecContext(ctx,
			`DELETE FROM user_roles WHERE user_id = $1`, opts.UserID)
		if execErr != nil {
			return fmt.Errorf("revoke role: %w", execErr)
		}
		rows, _ := res.RowsAffected()
		if rows == 0 {
			cmdCtx.Logger.Warn("no role recorded for user", "user_id", opts.UserID)
			return nil
		}
		cmdCtx.Logger.Info("role revoked", "user_id", opts.UserID)
		return nil
	})
}

func runOutboxStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		rows, queryErr := db.QueryContext(ctx,
			`SELECT state, COUNT(*) FROM email_outbox GROUP BY state ORDER BY state`)
		if queryErr != nil {
			return fmt.Errorf("query outbox: %w", queryErr)
		}
		defer rows.Close() //nolint:errcheck // read-only cursor

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if _, writeErr := fmt.Fprintln(w, "STATE\tCOUNT"); writeErr != nil {
			return fmt.Errorf("print outbox header: %w", writeErr)
		}
		total := 0
		for rows.Next() {
			var state string
			var count int
			if scanErr := rows.Scan(&state, &count); scanErr != nil {
				return fmt.Errorf("scan outbox row: %w", scanErr)
			}
			total += count
			if _, writeErr := fmt.Fprintf(w, "%s\t%d\n", state, count); writeErr != nil {
				return fmt.Errorf("print outbox row: %w", writeErr)
			}
		}
		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("iterate outbox rows: %w", rowsErr)
		}
		if _, writeErr := fmt.Fprintf(w, "total\t%d\n", total); writeErr != nil {
			return fmt.Errorf("print outbox total: %w", writeErr)
		}
		return w.Flush()
	})
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for the command to complete",
	)

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}

	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseDBResetFlags(args []string) (dbResetOptions, error) {
	fs := flag.NewFlagSet("db-reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbResetOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for reset operations to complete",
	)
	fs.BoolVar(
		&opts.Yes,
		"yes",
		false,
		"Skip confirmation prompt",
	)
	fs.BoolVar(
		&opts.Seed,
		"seed",
		false,
		"Run database seeding after reset completes",
	)
	fs.BoolVar(
		&opts.AllowRemote,
		"allow-remote",
		false,
		"Permit running against database hosts that do not look local",
	)

	if err := fs.Parse(args); err != nil {
		return dbResetOptions{}, err
	}

	if opts.Timeout <= 0 {
		return dbResetOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbSeedOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for seeding to complete",
	)
	fs.BoolVar(
		&opts.AllowRemote,
		"allow-remote",
		false,
		"Permit running against database hosts that do not look local",
	)

	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}

	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseGrantRoleFlags(args []string) (grantRoleOptions, error) {
	fs := flag.NewFlagSet("grant-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := grantRoleOptions{
		Timeout: time.Minute,
	}

	fs.StringVar(&opts.UserID, "user", "", "User id to grant the role to (required)")
	fs.StringVar(&opts.Role, "role", "subadmin", "Role to grant: admin or subadmin")
	fs.DurationVar(&opts.Timeout, "timeout", time.Minute, "Maximum duration to wait for the command to complete")

	if err := fs.Parse(args); err != nil {
		return grantRoleOptions{}, err
	}

	if strings.TrimSpace(opts.UserID) == "" {
		return grantRoleOptions{}, errors.New("--user is required")
	}
	if opts.Timeout <= 0 {
		return grantRoleOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseRevokeRoleFlags(args []string) (revokeRoleOptions, error) {
	fs := flag.NewFlagSet("revoke-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := revokeRoleOptions{
		Timeout: time.Minute,
	}

	fs.StringVar(&opts.UserID, "user", "", "User id to revoke the role from (required)")
	fs.DurationVar(&opts.Timeout, "timeout", time.Minute, "Maximum duration to wait for the command to complete")

	if err := fs.Parse(args); err != nil {
		return revokeRoleOptions{}, err
	}

	if strings.TrimSpace(opts.UserID) == "" {
		return revokeRoleOptions{}, errors.New("--user is required")
	}
	if opts.Timeout <= 0 {
		return revokeRoleOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

func guardRemoteHost(cmdCtx *commandContext, allow bool, action string) (bool, error) {
	remote := isLikelyRemoteHost(cmdCtx.Config.Postgres.Host)
	if !remote {
		return false, nil
	}
	if !allow {
		return true, fmt.Errorf(
			"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
			cmdCtx.Config.Postgres.Host,
		)
	}
	if err := requireRemoteHostConfirmation(action, cmdCtx.Config.Postgres.Host); err != nil {
		return true, err
	}
	return true, nil
}

func guardRemoteHostSimple(cmdCtx *commandContext, allow bool, action string) error {
	_, err := guardRemoteHost(cmdCtx, allow, action)
	return err
}

func (cmdCtx *commandContext) resetDatabase(ctx context.Context, db *sql.DB) error {
	if cmdCtx == nil {
		return errors.New("command context is required")
	}

	cfg := &cmdCtx.Config.Postgres
	statements := []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
		"GRANT ALL ON SCHEMA public TO public",
	}
	if user := strings.TrimSpace(cfg.User); user != "" && !strings.EqualFold(user, "public") {
		statements = append(statements, "GRANT ALL ON SCHEMA public TO "+quoteIdentifier(user))
	}

	for _, stmt := range statements {
		if cmdCtx.Logger != nil {
			cmdCtx.Logger.DebugContext(ctx, "executing reset statement", "sql", stmt)
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return false
	}
	if h == "localhost" || h == "127.0.0.1" || h == "::1" {
		return false
	}
	if strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

func confirmReset(opts dbResetOptions, target string, remote bool) error {
	if opts.Yes && !remote {
		return nil
	}

	warning := "WARNING: this will drop and recreate the public schema for the configured database."
	if err := writef(os.Stdout, "About to reset database schema for %s.\n%s\n", target, warning); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	if err := write(os.Stdout, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func requireRemoteHostConfirmation(action, host string) error {
	if err := writef(
		os.Stderr,
		"\nWARNING: database host %q does not look like a local address.\n"+
			"This operation will %s.\n",
		host,
		action,
	); err != nil {
		return fmt.Errorf("print remote host warning: %w", err)
	}
	if err := writef(os.Stderr, "Type %q to continue or press enter to abort: ", host); err != nil {
		return fmt.Errorf("print remote host prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	if strings.TrimSpace(resp) != host {
		if writeErr := writef(os.Stderr, "\nRemote safeguard check failed; aborting.\n"); writeErr != nil {
			return fmt.Errorf("print remote safeguard failure: %w", writeErr)
		}
		return errors.New("aborted by user")
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}
