package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/doomenstein/doomenstein/internal/config"
	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/persist"
	"github.com/doomenstein/doomenstein/internal/scripting"
	"github.com/doomenstein/doomenstein/internal/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(mapName string, seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            Doomenstein  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m         headless simulation driver        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m地圖:\033[0m %s \033[90m(seed: %d)\033[0m\n\n", mapName, seed)
}

// displayWidth counts CJK characters as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - displayWidth(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("DOOMENSTEIN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	printBanner(cfg.Game.Map, seed)

	// 3. Load content
	printSection("資料載入")
	defs, err := data.Load(data.Paths{
		Actors:  cfg.Data.Actors,
		Weapons: cfg.Data.Weapons,
		Tiles:   cfg.Data.Tiles,
		Maps:    cfg.Data.Maps,
	})
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	if err := defs.Validate(cfg.Game.PlayerActor, cfg.Game.SpawnPointActor); err != nil {
		log.Error("內容驗證失敗", zap.Error(err))
		return fmt.Errorf("validate content: %w", err)
	}
	printStat("角色定義", defs.Actors.Count())
	printStat("武器定義", defs.Weapons.Count())
	printStat("地形定義", defs.Tiles.Count())
	printStat("地圖", defs.Maps.Count())
	log.Debug("content digest", zap.String("digest", defs.Digest))

	// 3b. Lua damage model
	luaEngine, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua 腳本載入完成")
	fmt.Println()

	// 4. Build the map
	mapDef := defs.Maps.Get(cfg.Game.Map)
	if mapDef == nil {
		return fmt.Errorf("unknown map %q", cfg.Game.Map)
	}
	m, err := world.NewMap(mapDef, world.Deps{
		Defs:            defs,
		Log:             log,
		Damage:          luaEngine,
		Rand:            rand.New(rand.NewSource(seed)),
		MaxActorUID:     cfg.Game.MaxActorUID,
		PlayerActor:     cfg.Game.PlayerActor,
		SpawnPointActor: cfg.Game.SpawnPointActor,
	})
	if err != nil {
		return fmt.Errorf("build map: %w", err)
	}
	device := world.ParseDevice(cfg.Game.Device)
	for i := 0; i < cfg.Game.Players; i++ {
		c := m.NewPlayerController(device)
		if cfg.Game.DebugPossess && i == 0 {
			m.DebugPossessNext(c)
		}
	}
	log.Info("玩家控制器建立",
		zap.Int("players", len(m.Players())),
		zap.Stringer("device", device),
		zap.Bool("debug_possess", cfg.Game.DebugPossess),
	)

	// 5. Kill log (optional)
	matchID := persist.NewMatchID()
	gctx, stop := context.WithCancel(context.Background())
	defer stop()
	eg, gctx := errgroup.WithContext(gctx)

	var sink system.KillSink
	var killRepo *persist.KillRepo
	if cfg.Database.Enabled {
		printSection("資料庫")
		var db *persist.DB
		db, killRepo, err = openKillLog(cfg.Database, matchID, m.Name(), seed, defs.Digest, log)
		if err != nil {
			return err
		}
		defer db.Close()
		writer := persist.NewKillWriter(killRepo, cfg.Database.QueueSize, log)
		eg.Go(func() error { return writer.Run(gctx) })
		sink = writer
		printOK("擊殺紀錄啟用")
		fmt.Println()
	}

	// 6. Create systems and register with runner
	var input system.InputSource
	if cfg.Game.Autopilot {
		input = system.NewAutopilot(m, rand.New(rand.NewSource(seed+1)))
	} else {
		input = system.NewInputQueue(64)
	}
	flushEvery := int64(cfg.Database.FlushInterval / cfg.Game.TickRate)
	combatLog := system.NewCombatLogSystem(m.Bus(), matchID, sink, flushEvery, log)

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(m, input, log))
	runner.Register(system.NewEventDispatchSystem(m.Bus()))
	runner.Register(system.NewActorUpdateSystem(m))
	runner.Register(system.NewActorCollisionSystem(m))
	runner.Register(system.NewWorldCollisionSystem(m))
	runner.Register(system.NewCleanupSystem(m, log))
	runner.Register(system.NewRespawnSystem(m))
	runner.Register(combatLog)
	runner.Register(system.NewSnapshotSystem(m, int64(time.Second/cfg.Game.TickRate), log))

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	printSection("模擬就緒")
	printReady(fmt.Sprintf("玩家 %d (%s)", cfg.Game.Players, device))
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Game.TickRate))
	fmt.Println()

	ticks := 0
loop:
	for {
		select {
		case <-ticker.C:
			if took := runner.Tick(cfg.Game.TickRate); took > cfg.Game.TickRate {
				log.Debug("tick 超時", zap.Duration("took", took), zap.Int("tick", ticks))
			}
			ticks++
			if cfg.Game.MaxTicks > 0 && ticks >= cfg.Game.MaxTicks {
				log.Info("已達最大 tick 數", zap.Int("ticks", ticks))
				break loop
			}
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			break loop
		}
	}

	combatLog.Close()
	combatLog.LogSummary()
	for _, st := range runner.Stats() {
		log.Debug("phase timing",
			zap.Stringer("phase", st.Phase),
			zap.Duration("total", st.Total),
			zap.Duration("mean", st.Mean),
		)
	}
	if n := runner.Overruns(); n > 0 {
		log.Warn("ticks overran the tick rate", zap.Uint64("overruns", n), zap.Uint64("ticks", runner.Ticks()))
	}
	stop()
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("kill writer", zap.Error(err))
	}
	if killRepo != nil {
		endCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := killRepo.EndMatch(endCtx, matchID); err != nil {
			log.Error("結束對局紀錄失敗", zap.Error(err))
		}
	}
	log.Info("模擬已停止", zap.Int("ticks", ticks), zap.Int("actors", m.ActorCount()))
	return nil
}

// openKillLog connects, migrates and registers the match.
func openKillLog(cfg config.DatabaseConfig, matchID uuid.UUID, mapName string, seed int64, digest string, log *zap.Logger) (*persist.DB, *persist.KillRepo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	printOK("PostgreSQL 連線成功")

	version, err := persist.RunMigrations(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printStat("遷移版本", int(version))

	repo := persist.NewKillRepo(db)
	if err := repo.CreateMatch(ctx, matchID, mapName, seed, digest); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create match: %w", err)
	}
	printOK(fmt.Sprintf("對局 %s", matchID))
	return db, repo, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
