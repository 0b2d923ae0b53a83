package testsupport

import (
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteSeq atomic.Uint64

// SQLiteMemoryDSN returns a shared-cache in-memory DSN that no other caller in
// the process receives, so parallel tests never see each other's tables.
func SQLiteMemoryDSN(name string) string {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, sqliteSeq.Add(1))
}

// NewSQLiteMemoryDB opens a private in-memory sqlite database.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	return sql.Open("sqlite3", SQLiteMemoryDSN(name))
}
