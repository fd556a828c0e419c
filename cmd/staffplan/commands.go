package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rpggio/staffplan/internal/app"
	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/export"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/rpggio/staffplan/internal/sqlite"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations and print the schema version",
		Action: func(ctx context.Context, _ *cli.Command) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			v, err := env.db.MigrationVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("schema version %d (%s)\n", v, env.cfg.DB.Path)
			return nil
		},
	}
}

func apiKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "apikey",
		Usage: "Manage API keys",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a bearer token for a tenant and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tenant", Required: true, Usage: "tenant the key grants access to"},
					&cli.StringFlag{Name: "description", Usage: "free-form note stored with the key"},
					&cli.StringFlag{Name: "token", Usage: "use this token instead of generating one"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					env, err := setup()
					if err != nil {
						return err
					}
					defer env.Close()

					token := c.String("token")
					if token == "" {
						token = "sp_" + uuid.NewString()
					}
					keys := sqlite.NewAPIKeyRepository(env.db)
					if err := keys.Create(ctx, c.String("tenant"), token, c.String("description")); err != nil {
						return fmt.Errorf("create api key: %w", err)
					}
					fmt.Println(token)
					return nil
				},
			},
		},
	}
}

func heatmapCommand() *cli.Command {
	return &cli.Command{
		Name:  "heatmap",
		Usage: "Workload heatmap tools",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Write a workload heatmap to an XLSX file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tenant", Value: app.DefaultTenant},
					&cli.StringFlag{Name: "start", Required: true, Usage: "first day, YYYY-MM-DD"},
					&cli.StringFlag{Name: "end", Required: true, Usage: "last day, YYYY-MM-DD"},
					&cli.StringFlag{Name: "granularity", Value: string(planning.GranularityWeek), Usage: "day or week"},
					&cli.StringSliceFlag{Name: "employee", Usage: "limit to these employee IDs"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "workload.xlsx"},
				},
				Action: runHeatmapExport,
			},
		},
	}
}

func runHeatmapExport(ctx context.Context, c *cli.Command) error {
	start, err := planning.ParseDate(c.String("start"))
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := planning.ParseDate(c.String("end"))
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	a := app.New(env.db, env.cfg, env.logger)
	hm, err := a.Staffing.Workload(ctx, c.String("tenant"), staffing.WorkloadQuery{
		Range:       planning.Range{Start: start, End: end},
		Granularity: c.String("granularity"),
		EmployeeIDs: c.StringSlice("employee"),
	})
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := ensureDir(out); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := export.WriteHeatmap(f, *hm); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d employees, %d buckets)\n", out, len(hm.Rows), len(hm.Buckets))
	return nil
}

func openDB(ctx context.Context, path string) (*sqlite.DB, error) {
	if path != ":memory:" {
		if err := ensureDir(path); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
