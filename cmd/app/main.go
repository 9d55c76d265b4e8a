package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stockroom/internal/config"
	"stockroom/internal/domain"
	"stockroom/internal/logger"
	"stockroom/internal/query"
	"stockroom/internal/repository"
	"stockroom/internal/service"
	"stockroom/internal/storage"
	"stockroom/internal/transport"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// openMediums builds the durable mediums for both collections from the
// configured driver. The returned closer is non-nil for drivers holding an
// open handle.
func openMediums(cfg *config.Config) (storage.Medium[domain.Item], storage.Medium[domain.Student], func() error, error) {
	switch cfg.Storage.Driver {
	case "json":
		items := storage.NewJSONFile[domain.Item](cfg.Storage.Path)
		students := storage.NewJSONFile[domain.Student](studentPath(cfg.Storage.Path))
		return items, students, nil, nil
	case "sqlite":
		db, err := storage.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		items := storage.NewSQLiteMedium[domain.Item](db, "items")
		students := storage.NewSQLiteMedium[domain.Student](db, "students")
		return items, students, db.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// studentPath derives the roster file from the inventory file path.
func studentPath(itemPath string) string {
	ext := ".json"
	base := itemPath
	if n := len(itemPath) - len(ext); n > 0 && itemPath[n:] == ext {
		base = itemPath[:n]
	}
	return base + ".students" + ext
}

func main() {
	// Load .env if present; viper picks the variables up from the process env
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting stockroom",
		zap.String("env", cfg.App.Env),
		zap.String("driver", cfg.Storage.Driver),
		zap.String("path", cfg.Storage.Path),
	)

	itemMedium, studentMedium, closer, err := openMediums(cfg)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	if closer != nil {
		defer func() {
			if err := closer(); err != nil {
				log.Error("Error closing storage", zap.Error(err))
			}
		}()
	}

	tag, err := language.Parse(cfg.Display.Locale)
	if err != nil {
		log.Warn("Invalid display locale, falling back to English",
			zap.String("locale", cfg.Display.Locale), zap.Error(err))
		tag = language.English
	}

	itemRepo := repository.NewItemRepository(itemMedium)
	studentRepo := repository.NewStudentRepository(studentMedium)

	pipeline := query.New(tag)
	inventoryService := service.NewInventoryService(itemRepo, pipeline, log)
	studentService := service.NewStudentService(studentRepo, log)

	console := transport.NewConsole(inventoryService, studentService, log, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := console.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("Console error", zap.Error(err))
	}

	log.Info("Session complete")
}
