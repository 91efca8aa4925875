package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmuchiri/tributewall/internal/client/cache"
	"github.com/dmuchiri/tributewall/internal/client/config"
	"github.com/dmuchiri/tributewall/internal/client/db"
	"github.com/dmuchiri/tributewall/internal/client/geo"
	"github.com/dmuchiri/tributewall/internal/client/identity"
	"github.com/dmuchiri/tributewall/internal/client/remote"
	"github.com/dmuchiri/tributewall/internal/client/repositories/slots"
	enginepkg "github.com/dmuchiri/tributewall/internal/client/sync"
	"github.com/dmuchiri/tributewall/internal/logging"
)

// App wires the tribute wall engine to an interactive terminal session.
type App struct {
	config   *config.Config
	engine   *enginepkg.Engine
	resolver *geo.Resolver
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	conn, err := db.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	repo := slots.NewSQLiteRepository(conn)
	provider := identity.NewProvider(repo, logger)
	localCache := cache.New(repo, logger)
	store := remote.NewHTTPClient(c.StoreEndpointURL, c.RequestTimeout, logger)

	source := geo.StaticSource{Lat: c.Latitude, Lon: c.Longitude, Configured: c.HasPosition}
	resolver := geo.NewResolver(source, c.GeoEndpointURL, c.GeoTimeout, logger)

	engine := enginepkg.NewEngine(store, localCache, provider, resolver, logger)

	return &App{
		config:   c,
		engine:   engine,
		resolver: resolver,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run resolves the wall state and enters the command loop.
func (a *App) Run(ctx context.Context) {
	// geolocation races page load; its answer never overwrites typed input
	a.resolver.Prefetch(ctx)

	a.engine.Initialize(ctx)
	if a.engine.Degraded() {
		fmt.Fprintln(a.out, "Tribute wall is offline; showing your cached copy.")
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	state := "online"
	if a.engine.Degraded() {
		state = "offline"
	}
	return fmt.Sprintf("%s, %d tributes", state, a.engine.Stats().Total)
}
