// glctl is the operational tool for the ledger engine: it runs schema
// migrations, provisions tenants, administers GL role mappings and runs
// posting configuration pre-flight checks.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
	"github.com/bizbooks/ledgercore/internal/core/rules"
	"github.com/bizbooks/ledgercore/internal/core/services"
	"github.com/bizbooks/ledgercore/internal/dto"
	"github.com/bizbooks/ledgercore/internal/logging"
	"github.com/bizbooks/ledgercore/internal/repositories/database/pgsql"
	"github.com/bizbooks/ledgercore/internal/tenant"
	"github.com/bizbooks/ledgercore/pkg/config"
	"github.com/bizbooks/ledgercore/pkg/database"
)

const adminUserID = "glctl"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: glctl <command> [flags]

Commands:
  migrate          apply pending schema migrations (-down to roll back one)
  create-tenant    provision a tenant and seed its default chart
  show-tenant      print a tenant with its GL settings
  set-gl-accounts  replace a tenant's GL role to account-code mapping
  validate-config  report posting roles that do not resolve for a tenant
  list-accounts    print a tenant's chart of accounts
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	ctx := logging.WithLogger(context.Background(), logger)

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "migrate" {
		runMigrate(ctx, cfg, args)
		return
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(pool)

	svcs := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool))

	switch cmd {
	case "create-tenant":
		runCreateTenant(ctx, svcs, args)
	case "show-tenant":
		runShowTenant(ctx, svcs, args)
	case "set-gl-accounts":
		runSetGLAccounts(ctx, svcs, args)
	case "validate-config":
		runValidateConfig(ctx, svcs, args)
	case "list-accounts":
		runListAccounts(ctx, svcs, args)
	default:
		usage()
	}
}

func runMigrate(ctx context.Context, cfg *config.Config, args []string) {
	logger := logging.FromCtx(ctx)
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	down := fs.Bool("down", false, "roll back the most recent migration")
	_ = fs.Parse(args)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logger.Error("could not create migration driver", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsDir, "postgres", driver)
	if err != nil {
		logger.Error("could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err == migrate.ErrNoChange {
		logger.Info("no schema changes to apply")
	} else {
		logger.Info("migrations applied")
	}
}

func runCreateTenant(ctx context.Context, svcs *portssvc.ServiceContainer, args []string) {
	logger := logging.FromCtx(ctx)
	fs := flag.NewFlagSet("create-tenant", flag.ExitOnError)
	name := fs.String("name", "", "tenant name (required)")
	currency := fs.String("currency", "USD", "default currency code")
	_ = fs.Parse(args)
	if *name == "" {
		fs.Usage()
		os.Exit(2)
	}

	t, err := svcs.Tenant.CreateTenant(ctx, dto.CreateTenantRequest{
		Name:                *name,
		DefaultCurrencyCode: *currency,
	}, adminUserID)
	if err != nil {
		logger.Error("failed to create tenant", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("tenant created",
		slog.String("tenantID", t.TenantID),
		slog.String("name", t.Name),
		slog.String("currency", t.DefaultCurrencyCode))
}

func runShowTenant(ctx context.Context, svcs *portssvc.ServiceContainer, args []string) {
	logger := logging.FromCtx(ctx)
	fs := flag.NewFlagSet("show-tenant", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "tenant id (required)")
	_ = fs.Parse(args)
	if *tenantID == "" {
		fs.Usage()
		os.Exit(2)
	}

	t, err := svcs.Tenant.GetTenantByID(ctx, *tenantID)
	if err != nil {
		logger.Error("failed to fetch tenant", slog.String("error", err.Error()))
		os.Exit(1)
	}
	out, _ := json.MarshalIndent(dto.ToTenantResponse(t), "", "  ")
	fmt.Println(string(out))
}

// runSetGLAccounts replaces a tenant's role mapping. Pairs are given as
// role=code, e.g. -set sales_account=4000 -set tax_payable_account=2200.
func runSetGLAccounts(ctx context.Context, svcs *portssvc.ServiceContainer, args []string) {
	logger := logging.FromCtx(ctx)
	fs := flag.NewFlagSet("set-gl-accounts", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "tenant id (required)")
	var pairs stringList
	fs.Var(&pairs, "set", "role=code pair (repeatable)")
	_ = fs.Parse(args)
	if *tenantID == "" || len(pairs) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	settings := make(map[string]string, len(pairs))
	for _, p := range pairs {
		role, code, ok := strings.Cut(p, "=")
		if !ok || role == "" || code == "" {
			logger.Error("invalid -set pair, want role=code", slog.String("pair", p))
			os.Exit(2)
		}
		settings[role] = code
	}

	scoped := tenant.WithID(ctx, *tenantID)
	if err := svcs.Tenant.UpdateGLSettings(scoped, dto.UpdateGLSettingsRequest{Settings: settings}, adminUserID); err != nil {
		logger.Error("failed to update GL settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("GL settings updated", slog.String("tenantID", *tenantID), slog.Int("roles", len(settings)))
}

func runValidateConfig(ctx context.Context, svcs *portssvc.ServiceContainer, args []string) {
	logger := logging.FromCtx(ctx)
	fs := flag.NewFlagSet("validate-config", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "tenant id (required)")
	_ = fs.Parse(args)
	if *tenantID == "" {
		fs.Usage()
		os.Exit(2)
	}

	scoped := tenant.WithID(ctx, *tenantID)
	missing, err := svcs.Resolver.ValidateConfiguration(scoped, rules.AllRoles())
	if err != nil {
		logger.Error("configuration check failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(missing) > 0 {
		logger.Warn("unresolved posting roles", slog.Any("roles", missing))
		os.Exit(1)
	}
	logger.Info("all posting roles resolve", slog.String("tenantID", *tenantID))
}

func runListAccounts(ctx context.Context, svcs *portssvc.ServiceContainer, args []string) {
	logger := logging.FromCtx(ctx)
	fs := flag.NewFlagSet("list-accounts", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "tenant id (required)")
	_ = fs.Parse(args)
	if *tenantID == "" {
		fs.Usage()
		os.Exit(2)
	}

	scoped := tenant.WithID(ctx, *tenantID)
	var nextToken *string
	for {
		resp, err := svcs.Account.ListAccounts(scoped, dto.ListAccountsParams{Limit: 100, NextToken: nextToken})
		if err != nil {
			logger.Error("failed to list accounts", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, a := range resp.Accounts {
			fmt.Printf("%-8s %-10s %-40s active=%t system=%t\n", a.Code, a.AccountType, a.Name, a.IsActive, a.IsSystem)
		}
		if resp.NextToken == nil {
			break
		}
		nextToken = resp.NextToken
	}
}

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }
