// Package db copies the board's collections into a SQLite database so they
// can be queried with ordinary SQL tools. The JSON files stay the source of
// truth; the database is rebuilt on every export.
package db

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"quoteboard/internal/models"
)

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, db.Ping()
}

func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts(
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			shayri TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS contacts(
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
	}
	ctx := context.Background()
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Export replaces the contents of both tables in one transaction. Row
// position preserves collection order.
func Export(ctx context.Context, db *sql.DB, posts []models.Post, contacts []models.Contact) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return err
	}

	for i, p := range posts {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO posts(position,id,username,shayri) VALUES(?,?,?,?)`,
			i, p.ID, p.Username, p.Shayri); err != nil {
			return err
		}
	}
	for i, c := range contacts {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO contacts(position,id,name,email,message,created_at) VALUES(?,?,?,?,?,?)`,
			i, c.ID, c.Name, c.Email, c.Message, c.Timestamp.UTC().Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Posts reads exported posts back in collection order.
func Posts(ctx context.Context, db *sql.DB) ([]models.Post, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, username, shayri FROM posts ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Username, &p.Shayri); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ContactCount returns the number of exported contacts.
func ContactCount(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}
