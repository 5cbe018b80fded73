package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/notekeeper/internal/config"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/session"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/users"
	"github.com/dmitrijs2005/notekeeper/internal/services"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
	"github.com/redis/go-redis/v9"
)

const redisProbeAttempts = 5

// OpenStore opens the backend selected by c.StorageDriver.
func OpenStore(ctx context.Context, c *config.Config) (kv.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, c.StorageTimeout)
	defer cancel()

	switch c.StorageDriver {
	case config.DriverSQLite:
		s, err := kv.OpenSQLite(ctx, c.DatabasePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return kv.NewMemoryStore(), nil
	case config.DriverRedis:
		s, err := kv.OpenRedis(ctx, &redis.Options{Addr: c.RedisAddr, DB: c.RedisDB}, redisProbeAttempts)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}

// Wire builds the services over store and returns an App reading in and
// writing out.
func Wire(c *config.Config, store kv.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	locks := syncx.NewKeyedLocker()

	auth := services.NewAuthService(users.NewRepository(store, locks), session.NewRepository(store), log)
	noteSvc := services.NewNoteService(notes.NewRepository(store, locks), log)

	return NewApp(auth, noteSvc, log, c.StorageTimeout, in, out)
}
