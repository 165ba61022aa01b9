package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/stockkeeper/internal/adapter/storage"
	"github.com/rl1809/stockkeeper/internal/config"
	"github.com/rl1809/stockkeeper/internal/core/service"
	"github.com/rl1809/stockkeeper/internal/port"
)

// openRepository connects the configured backend. The returned close
// function releases its connections and is never nil.
func (a *app) openRepository(ctx context.Context) (port.SnapshotRepository, func(), error) {
	switch a.cfg.Backend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: a.cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		a.logger.Debug("connected to redis", zap.String("addr", a.cfg.Redis.Addr))
		return storage.NewRedisAdapter(rdb, a.cfg.Redis.Name), func() { rdb.Close() }, nil

	case config.BackendMySQL:
		dsn, err := mysql.ParseDSN(a.cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		// Row timestamps are scanned into time.Time.
		dsn.ParseTime = true
		db, err := sql.Open("mysql", dsn.FormatDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		a.logger.Debug("connected to mysql")
		return adapter, func() { db.Close() }, nil

	default:
		return storage.NewJSONFileAdapter(a.cfg.DataFile, a.logger), func() {}, nil
	}
}

// loadInventory opens the backend and loads the inventory from it.
func (a *app) loadInventory(ctx context.Context) (*service.InventoryService, port.SnapshotRepository, func(), error) {
	repo, closeRepo, err := a.openRepository(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	svc := service.NewInventoryService(a.logger)
	if err := svc.Load(ctx, repo); err != nil {
		closeRepo()
		return nil, nil, nil, err
	}
	return svc, repo, closeRepo, nil
}
