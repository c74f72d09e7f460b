package sqlite

// DatabaseFileName is the SQLite file created inside the data directory.
const DatabaseFileName = "rflinks.db"

// Schema DDL. The backend mirrors browser local storage: one row per key,
// the value being the whole serialized collection.
const (
	createLocalStorage = `CREATE TABLE IF NOT EXISTS local_storage (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createLocalStorage,
}
