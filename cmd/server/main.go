package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-engine/internal/api"
	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/entity"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/storage"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
	"github.com/annel0/voxel-engine/internal/world/gen"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-файлу конфигурации")
	flag.Parse()

	logger, err := logging.GetLoggerManager().GetLogger("server")
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.GetLoggerManager().CloseAll()

	logger.Info("🌍 Запуск движка мира...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	title := cfg.World.Title
	if title == "" {
		title = "New World"
	}
	seed := cfg.World.Seed
	if seed == "" {
		seed = "abraxas"
	}

	logger.Info("📋 Мир %q, сид %q, окно %dx%d чанков",
		title, seed, cfg.World.GetViewDistanceX(), cfg.World.GetViewDistanceZ())

	// === ХРАНИЛИЩЕ ===
	store, err := storage.NewBadgerStore(cfg.Storage.GetDataPath())
	if err != nil {
		logger.Error("❌ Ошибка открытия хранилища: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	// === КОНВЕЙЕР ГЕНЕРАЦИИ ===
	terrain := gen.NewTerrainGenerator(seed)
	flora := gen.NewFloraGenerator(seed)
	pipeline := []world.ChunkGenerator{
		terrain,
		gen.NewResourceGenerator(seed),
		gen.NewForestGenerator(seed),
		flora,
	}

	// === МИР ===
	player := entity.NewPlayer(vec.Vec3F{})
	w, err := world.NewWorld(world.Params{
		Title:             title,
		Seed:              seed,
		Player:            player,
		Store:             store,
		Meta:              store,
		Pipeline:          pipeline,
		Flora:             flora,
		Terrain:           terrain,
		ViewDistanceX:     cfg.World.GetViewDistanceX(),
		ViewDistanceZ:     cfg.World.GetViewDistanceZ(),
		DayLengthSeconds:  cfg.World.GetDayLengthSeconds(),
		TickInterval:      time.Duration(cfg.World.GetTickIntervalMs()) * time.Millisecond,
		MaxUpdatesPerTick: cfg.World.GetMaxUpdatesPerTick(),
	})
	if err != nil {
		logger.Error("❌ Ошибка создания мира: %v", err)
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}

	if err := w.Start(); err != nil {
		logger.Error("❌ Ошибка запуска мира: %v", err)
		log.Fatalf("❌ Ошибка запуска мира: %v", err)
	}

	// === HTTP СТАТУС И МЕТРИКИ ===
	statusServer := api.NewStatusServer(w, cfg.Server.GetHTTPPort())
	statusServer.Start()

	logger.Info("✅ Движок запущен")
	logger.Info("   ❤️  Health check: http://localhost:%d/health", cfg.Server.GetHTTPPort())
	logger.Info("   📊 Метрики: http://localhost:%d/metrics", cfg.Server.GetHTTPPort())

	// Ждём сигнала завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := statusServer.Stop(ctx); err != nil {
		logger.Warn("Ошибка остановки HTTP-сервера: %v", err)
	}

	w.Stop()
	logger.Info("👋 Движок остановлен")
}
