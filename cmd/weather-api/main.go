package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"current-weather/config"
	"current-weather/internal/bootstrap"
	v1 "current-weather/internal/controllers/http/v1"
	"current-weather/internal/repositories"
	"current-weather/internal/services/weather"
	"current-weather/pkg/httpserver"
	"current-weather/pkg/observe"
)

// @title Current Weather API
// @version 1.0.0
// @description Current weather of a city, fetched live from OpenWeatherMap.
// @termsOfService http://swagger.io/terms/

// @contact.name Current Weather API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Current weather operations
func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("no .env file found")
	}

	cnf := config.NewConfig()

	l, closeLog := bootstrap.NewLogger(cnf, os.Stdout)

	repo, err := repositories.InitWeatherRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather repository", map[string]any{"err": err})
	}

	metrics := observe.NewMetrics("current_weather")
	service := weather.NewWeatherService(repo, l, metrics)

	app := httpserver.InitFiberServer(cnf.AppName, l)

	v1.NewRouter(
		app,
		service,
		metrics.Handler(),
		cnf.WeatherAPI.Units,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Port,
		"provider": repo.Name(),
		"version":  cnf.AppVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	l.Warning("stopping application services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		l.Error(err, map[string]any{"stage": "shutdown"})
	}
	closeLog()
}
