// Package clickforge parses command flags and runs the headless game
// loop: a session driven in real time that clicks, buys upgrades, and
// persists progress until the duration elapses or the process is
// interrupted.
package clickforge

import (
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	mathrand "math/rand"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/louisbranch/clickforge/internal/catalog"
	"github.com/louisbranch/clickforge/internal/clock"
	entrypoint "github.com/louisbranch/clickforge/internal/platform/cmd"
	"github.com/louisbranch/clickforge/internal/progression/upgrade"
	"github.com/louisbranch/clickforge/internal/session"
	"github.com/louisbranch/clickforge/internal/storage/sqlite"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const pollInterval = 100 * time.Millisecond

// Config holds clickforge command configuration.
type Config struct {
	DBPath        string        `env:"CLICKFORGE_DB_PATH" envDefault:"clickforge.db"`
	CatalogPath   string        `env:"CLICKFORGE_CATALOG"`
	SaveSlot      string        `env:"CLICKFORGE_SAVE_SLOT" envDefault:"default"`
	Seed          int64         `env:"CLICKFORGE_SEED"`
	Duration      time.Duration `env:"CLICKFORGE_DURATION" envDefault:"30s"`
	ClickInterval time.Duration `env:"CLICKFORGE_CLICK_INTERVAL" envDefault:"200ms"`
	AutoBuy       bool          `env:"CLICKFORGE_AUTO_BUY" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the save database")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Path to a catalog YAML (empty uses the built-in catalog)")
	fs.StringVar(&cfg.SaveSlot, "slot", cfg.SaveSlot, "Save slot name")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "How long to run")
	fs.DurationVar(&cfg.ClickInterval, "click-interval", cfg.ClickInterval, "Delay between simulated clicks")
	fs.BoolVar(&cfg.AutoBuy, "auto-buy", cfg.AutoBuy, "Buy upgrades whenever affordable")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the game loop with telemetry configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceClickforge, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	log.Printf("seed %d", seed)

	sessCfg := session.DefaultConfig()
	sessCfg.SaveSlot = cfg.SaveSlot
	sess, err := session.New(sessCfg, clock.System{}, mathrand.New(mathrand.NewSource(seed)), cat, store)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	sess.EventTriggered.Subscribe(func(evt catalog.Event) {
		if evt.UnlockMenu != "" {
			log.Printf("event %s fired, menu %s unlocked", evt.ID, evt.UnlockMenu)
			return
		}
		log.Printf("event %s fired", evt.ID)
	})
	sess.Gauge().FeverStarted.Subscribe(func() {
		log.Printf("fever started (x%.1f for %s)", sess.Gauge().FinalFeverMultiplier(), sess.Gauge().FeverDuration())
	})
	sess.Gauge().FeverEnded.Subscribe(func() {
		log.Print("fever ended")
	})

	ctx, span := otel.Tracer("clickforge").Start(ctx, "session.run")
	defer span.End()

	offline, err := sess.Start(ctx)
	if err != nil {
		return err
	}
	if offline > 0 {
		log.Printf("welcome back: %.0f coins earned while away", offline)
	}

	if err := drive(ctx, sess, cat, cfg); err != nil {
		return err
	}

	// Stop takes a fresh context so the final save survives Ctrl-C.
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Stop(saveCtx); err != nil {
		return fmt.Errorf("final save: %w", err)
	}

	report(sess)
	return nil
}

// drive runs the real-time loop: poll the scheduler, click on cadence,
// and optionally buy whatever is affordable.
func drive(ctx context.Context, sess *session.Session, cat *catalog.Catalog, cfg Config) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	start := time.Now()
	var lastClick time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			sess.Advance(now)
			if now.Sub(start) >= cfg.Duration {
				return nil
			}
			if now.Sub(lastClick) >= cfg.ClickInterval {
				sess.Click()
				lastClick = now
			}
			if cfg.AutoBuy {
				buyAffordable(sess, cat)
			}
		}
	}
}

func buyAffordable(sess *session.Session, cat *catalog.Catalog) {
	for _, def := range cat.Upgrades() {
		if sess.UpgradeState(def.ID) != upgrade.StateReadyToUpgrade {
			continue
		}
		if sess.PurchaseUpgrade(def.ID) {
			level := sess.Ledger().GetLevel(def.ID)
			log.Printf("bought %s (level %d)", def.Name, level)
		}
	}
}

func report(sess *session.Session) {
	data := sess.Stats().Snapshot()
	log.Printf("clicks %d (crits %d), earned %.0f, spent %.0f, upgrades %d, income %.1f/s",
		data.TotalClicks,
		data.TotalCriticalHits,
		data.TotalMoneyEarned,
		data.TotalMoneySpent,
		data.TotalUpgradesPurchased,
		sess.Income().IncomePerSecond(),
	)
	if menus := sess.UnlockedMenus(); len(menus) > 0 {
		log.Printf("menus unlocked: %v", menus)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Parse(defaultCatalog)
	}
	return catalog.Load(path)
}

func randomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
