package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuchiri/tributewall/internal/client/cache"
	clientdb "github.com/dmuchiri/tributewall/internal/client/db"
	"github.com/dmuchiri/tributewall/internal/client/geo"
	"github.com/dmuchiri/tributewall/internal/client/identity"
	"github.com/dmuchiri/tributewall/internal/client/remote"
	"github.com/dmuchiri/tributewall/internal/client/repositories/slots"
	"github.com/dmuchiri/tributewall/internal/common"
	"github.com/dmuchiri/tributewall/internal/logging"
	"github.com/dmuchiri/tributewall/internal/models"
	serverdb "github.com/dmuchiri/tributewall/internal/server/db"
	"github.com/dmuchiri/tributewall/internal/server/httpapi"
	"github.com/dmuchiri/tributewall/internal/server/repositories/tributes"
)

// Tests in this file exercise the full loop: Engine -> HTTP client ->
// store handler -> SQLite, with nothing faked but device coordinates.

func startStore(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:e2e_store_%s?mode=memory&cache=shared", t.Name())
	conn, err := serverdb.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, serverdb.RunMigrations(ctx, conn))

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := httpapi.NewHandler(tributes.NewSQLiteRepository(conn), logger)
	mux := http.NewServeMux()
	h.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func startDevice(t *testing.T, storeURL, name string) *Engine {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:e2e_%s_%s?mode=memory&cache=shared", name, t.Name())
	conn, err := clientdb.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, clientdb.RunMigrations(ctx, conn))

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	repo := slots.NewSQLiteRepository(conn)
	id := identity.NewProvider(repo, logger)
	local := cache.New(repo, logger)
	rc := remote.NewHTTPClient(storeURL+"/tributes", 5*time.Second, logger)
	g := &fakeGeo{result: geo.Result{Place: "Nairobi, Kenya", Available: true}}

	return NewEngine(rc, local, id, g, logger)
}

func TestEndToEnd_SubmitListDelete(t *testing.T) {
	ctx := context.Background()
	srv := startStore(t)

	deviceA := startDevice(t, srv.URL, "device_a")
	deviceA.Initialize(ctx)
	assert.False(t, deviceA.Degraded())
	assert.Empty(t, deviceA.Tributes())

	submitted, err := deviceA.Submit(ctx, models.Draft{
		AuthorName:   "Grace W.",
		Message:      "Forever in our hearts, rest well.",
		Relationship: models.RelationshipFamily,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, submitted.ID)
	assert.Equal(t, "Nairobi, Kenya", submitted.Location, "resolved location fills the blank field")

	// a second device sees the tribute but does not own it
	deviceB := startDevice(t, srv.URL, "device_b")
	deviceB.Initialize(ctx)
	require.Len(t, deviceB.Tributes(), 1)
	got := deviceB.Tributes()[0]
	assert.Equal(t, submitted.ID, got.ID)
	assert.Equal(t, "Grace W.", got.AuthorName)
	assert.True(t, got.HasCandleLit, "fetched tributes arrive with candles lit")

	err = deviceB.Delete(ctx, submitted.ID)
	assert.ErrorIs(t, err, common.ErrNotOwner)

	// the submitter can delete, and the store agrees it is gone
	require.NoError(t, deviceA.Delete(ctx, submitted.ID))
	deviceB.Initialize(ctx)
	assert.Empty(t, deviceB.Tributes())
}

func TestEndToEnd_ServerRejectsShortMessage(t *testing.T) {
	ctx := context.Background()
	srv := startStore(t)

	device := startDevice(t, srv.URL, "device")
	device.Initialize(ctx)

	// bypass local validation to prove the store enforces its own rules
	rc := remote.NewHTTPClient(srv.URL+"/tributes",
		5*time.Second, logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err := rc.Append(ctx, remote.AppendRequest{
		AuthorName: "Grace W.",
		Message:    "short",
		OwnerToken: "some-device",
	})
	var rejected *common.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Message, "message")
}

func TestEndToEnd_IdentitySurvivesRestart(t *testing.T) {
	ctx := context.Background()
	srv := startStore(t)

	device := startDevice(t, srv.URL, "restart")
	device.Initialize(ctx)
	submitted, err := device.Submit(ctx, models.Draft{
		AuthorName: "Grace W.",
		Message:    "Forever in our hearts, rest well.",
	})
	require.NoError(t, err)

	// same slots database, fresh process state: the token persists,
	// so the restarted device still owns its tribute
	restarted := startDevice(t, srv.URL, "restart")
	restarted.Initialize(ctx)
	require.NoError(t, restarted.Delete(ctx, submitted.ID))
}
