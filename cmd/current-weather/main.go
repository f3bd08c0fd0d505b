package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"current-weather/config"
	"current-weather/internal/bootstrap"
	"current-weather/internal/controllers/console"
	"current-weather/internal/models"
	"current-weather/internal/repositories"
	"current-weather/internal/services/weather"
)

const defaultCity = "sousse"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// run prints the current weather of one city to stdout. Logs go to stderr so
// that stdout only ever holds the weather lines.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("current-weather", flag.ContinueOnError)
	fs.SetOutput(stderr)
	city := fs.String("city", defaultCity, "city to fetch the current weather for")
	cfgPath := fs.String("config", config.DefaultPath, "path to the YAML config file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: current-weather [-config path] [-city name | name...]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		*city = strings.Join(fs.Args(), " ")
	}

	cnf, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	l, closeLog := bootstrap.NewLogger(cnf, stderr)
	defer closeLog()

	repo, err := repositories.InitWeatherRepository(cnf, l)
	if err != nil {
		l.Error(err)
		return 1
	}

	service := weather.NewWeatherService(repo, l, nil)
	printer := console.NewPrinter(stdout, l)

	done := make(chan error, 1)
	service.FetchAsync(ctx, *city, func(err error, result *models.CurrentWeather) {
		printer.Handle(err, result)
		done <- err
	})

	if err := <-done; err != nil {
		return 1
	}

	return 0
}
