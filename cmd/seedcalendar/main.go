// Command seedcalendar loads a year of weekends and holidays into date_dim.
//
//	go run ./cmd/seedcalendar -file seeds/calendar_2026.toml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/turbo-fm/facility-backend-go/internal/config"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/logger"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
	"github.com/turbo-fm/facility-backend-go/internal/repository/postgresql"
	calendarService "github.com/turbo-fm/facility-backend-go/internal/service/calendar"
)

func main() {
	file := flag.String("file", "", "path to the calendar seed TOML file")
	dryRun := flag.Bool("dry-run", false, "print the day types without writing them")
	flag.Parse()

	slog.SetDefault(logger.New(logger.Options{Service: "seedcalendar", Level: "info", Console: os.Stdout}))

	if err := run(*file, *dryRun); err != nil {
		slog.Error("Calendar seed failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, dryRun bool) error {
	if path == "" {
		return fmt.Errorf("-file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	days, err := calendarService.ParseSeed(f)
	if err != nil {
		return err
	}

	if dryRun {
		for _, d := range days {
			fmt.Printf("%s\t%s\n", utils.FormatDate(d.Date), d.DayType)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.NewCalendarRepository(db).Upsert(context.Background(), days); err != nil {
		return err
	}

	slog.Info("Calendar seeded", "file", path, "days", len(days))
	return nil
}
