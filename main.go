// main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cinevers-client/cmd"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	var opts cmd.Options
	var seats string

	flag.BoolVar(&opts.Local, "local", false, "run against the embedded in-memory backend")
	flag.StringVar(&opts.Email, "email", "", "account email (defaults to the demo customer)")
	flag.StringVar(&opts.Password, "password", "", "account password")
	flag.BoolVar(&opts.Admin, "admin", false, "log in to the back-office namespace")
	flag.StringVar(&opts.MovieID, "movie", "", "movie ID to book (defaults to the first with schedules)")
	flag.StringVar(&opts.ScheduleID, "schedule", "", "schedule ID to book")
	flag.StringVar(&seats, "seats", "", "comma-separated seat IDs, e.g. A1,A4")
	flag.BoolVar(&opts.Bookings, "bookings", false, "list my bookings and exit")
	flag.Parse()

	if seats != "" {
		opts.Seats = strings.Split(seats, ",")
	}

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("api", config.API.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, config, logger, opts); err != nil {
		logger.Error("Run failed", zap.Error(err))
		log.Fatalf("Error: %v", err)
	}
}
