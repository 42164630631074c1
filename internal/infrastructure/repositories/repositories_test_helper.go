package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT,
		name TEXT,
		password_hash TEXT,
		role TEXT,
		email_verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createEmailVerificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE email_verifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		code TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		consumed_at DATETIME,
		created_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAssetTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE assets (
		id TEXT PRIMARY KEY,
		symbol TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		unit_price_usd REAL NOT NULL,
		deposit_address TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createInvestmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE investments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		email TEXT NOT NULL,
		amount REAL NOT NULL,
		coin TEXT NOT NULL,
		coin_amount REAL NOT NULL,
		cbc_amount REAL NOT NULL,
		status TEXT NOT NULL,
		transaction_hash TEXT NOT NULL,
		reviewed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
