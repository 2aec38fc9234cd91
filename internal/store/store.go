// Package store provides SQLite storage for txmail transactions.
package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skothari/txmail/internal/types"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for txmail operations.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) a txmail database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// GenID generates a random 16-character hex ID.
func GenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// Now returns the current time as an ISO 8601 string.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DiscoverDB finds the txmail database by walking up from cwd.
// Returns the path to .txmail/transactions.db or empty string if not found.
func DiscoverDB() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".txmail", "transactions.db")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// FindProjectRoot walks up from cwd looking for a .git directory.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// --- Transaction operations ---

// InsertIfAbsent stores a transaction unless its dedupe hash already
// exists. Returns whether a new row was created. The conditional insert
// rides on the UNIQUE(dedupe_hash) constraint, so concurrent inserts of
// the same logical transaction resolve to exactly one winner.
func (d *DB) InsertIfAbsent(tx *types.Transaction) (bool, error) {
	if !types.IsValidType(tx.Type) {
		return false, fmt.Errorf("invalid transaction type %q", tx.Type)
	}
	id := tx.ID
	if id == "" {
		id = GenID()
	}
	createdAt := tx.CreatedAt
	if createdAt == "" {
		createdAt = Now()
	}

	res, err := d.conn.Exec(`
		INSERT OR IGNORE INTO transactions
			(id, user_id, merchant, order_ref, amount, date, type, dedupe_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, tx.UserID, tx.Merchant, tx.OrderRef, tx.Amount,
		tx.Date.UTC().Format(time.RFC3339), tx.Type, tx.DedupeHash, createdAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of transactions.
func (d *DB) Count() int {
	var n int
	d.conn.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&n)
	return n
}

// CountByUser returns the transaction count for one user.
func (d *DB) CountByUser(userID string) int {
	var n int
	d.conn.QueryRow("SELECT COUNT(*) FROM transactions WHERE user_id = ?", userID).Scan(&n)
	return n
}

// LatestImportAt returns the most recent created_at for a user.
func (d *DB) LatestImportAt(userID string) string {
	var t sql.NullString
	d.conn.QueryRow("SELECT MAX(created_at) FROM transactions WHERE user_id = ?", userID).Scan(&t)
	if t.Valid {
		return t.String
	}
	return ""
}

// ListFilter narrows List results.
type ListFilter struct {
	UserID   string
	Type     string
	Merchant string
	Limit    int
}

// List returns transactions matching the filter, newest first.
func (d *DB) List(f ListFilter) ([]*types.Transaction, error) {
	query := `
		SELECT id, user_id, merchant, order_ref, amount, date, type, dedupe_hash, created_at
		FROM transactions`

	var conditions []string
	args := []any{}
	if f.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, f.Type)
	}
	if f.Merchant != "" {
		conditions = append(conditions, "merchant = ?")
		args = append(args, f.Merchant)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// SummaryByType returns per-type count and total for a user.
func (d *DB) SummaryByType(userID string) ([]types.TypeSummary, error) {
	rows, err := d.conn.Query(`
		SELECT type, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ?
		GROUP BY type
		ORDER BY type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.TypeSummary
	for rows.Next() {
		var s types.TypeSummary
		if err := rows.Scan(&s.Type, &s.Count, &s.Total); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SummaryByMerchant returns expense totals grouped by merchant, largest
// spend first.
func (d *DB) SummaryByMerchant(userID string, limit int) ([]types.MerchantSummary, error) {
	query := `
		SELECT merchant, COUNT(*), COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = ? AND type = ?
		GROUP BY merchant
		ORDER BY total DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := d.conn.Query(query, userID, types.TypeExpense)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.MerchantSummary
	for rows.Next() {
		var s types.MerchantSummary
		if err := rows.Scan(&s.Merchant, &s.Count, &s.Total); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Users returns the distinct user ids present in the store.
func (d *DB) Users() []string {
	rows, err := d.conn.Query("SELECT DISTINCT user_id FROM transactions ORDER BY user_id")
	if err != nil {
		return nil
	}
	defer rows.Close()
	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return users
		}
		users = append(users, u)
	}
	return users
}

func scanTransactions(rows *sql.Rows) ([]*types.Transaction, error) {
	var result []*types.Transaction
	for rows.Next() {
		t := &types.Transaction{}
		var orderRef sql.NullString
		var date string
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Merchant, &orderRef, &t.Amount, &date,
			&t.Type, &t.DedupeHash, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		t.OrderRef = orderRef.String
		if parsed, err := time.Parse(time.RFC3339, date); err == nil {
			t.Date = parsed
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
