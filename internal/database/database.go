package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB is the shared connection pool. Every query borrows a connection for its
// own duration and returns it when the rows are closed.
type DB struct {
	*sqlx.DB
}

func Init(databaseURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetConnMaxIdleTime(5 * time.Minute)

	return &DB{DB: db}, nil
}
