package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 只在启动时读取一次，连接池保持很小
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateOwners,
		migrationCreateVehicles,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// 数据库迁移 SQL
const migrationCreateOwners = `
CREATE TABLE IF NOT EXISTS owners (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL DEFAULT '',
    phone VARCHAR(50) NOT NULL DEFAULT '',
    email VARCHAR(255) NOT NULL DEFAULT '',
    location VARCHAR(255) NOT NULL DEFAULT '',
    rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    member_since VARCHAR(50) NOT NULL DEFAULT '',
    total_vehicles INT NOT NULL DEFAULT 0,
    profile_image TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

// owner_id 不加外键：车辆可以引用不存在的车主
const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id TEXT PRIMARY KEY,
    type VARCHAR(50) NOT NULL,
    location VARCHAR(255) NOT NULL DEFAULT '',
    price_per_km DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price_per_km >= 0),
    rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_reviews INT NOT NULL DEFAULT 0,
    owner_id TEXT NOT NULL DEFAULT '',
    name VARCHAR(255) NOT NULL DEFAULT '',
    brand VARCHAR(255) NOT NULL DEFAULT '',
    year INT NOT NULL DEFAULT 0,
    transmission VARCHAR(50) NOT NULL DEFAULT '',
    fuel_type VARCHAR(50) NOT NULL DEFAULT '',
    seats INT,
    image TEXT NOT NULL DEFAULT '',
    video TEXT,
    features TEXT[] NOT NULL DEFAULT '{}',
    pickup_locations TEXT[] NOT NULL DEFAULT '{}',
    condition VARCHAR(50) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles(created_at);
`
