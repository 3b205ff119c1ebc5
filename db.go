package motorpng

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// ConvertDB records the CRC of every sprite sheet converted by a scan
// so that unchanged files can be skipped on subsequent runs.
type ConvertDB struct {
	db *sql.DB
}

func NewConvertDB(file string) (*ConvertDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, crc TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	return &ConvertDB{
		db: db,
	}, nil
}

func (db *ConvertDB) Close() error {
	return db.db.Close()
}

// FindCRCByPath returns the recorded CRC for path, or the empty string
// if the path has not been converted before.
func (db *ConvertDB) FindCRCByPath(path string) (string, error) {
	var crc string
	switch err := db.db.QueryRow("SELECT crc FROM conversion WHERE path = ?", path).Scan(&crc); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return crc, nil
	default:
		return "", err
	}
}

// Record stores the CRC for path, replacing any previous record.
func (db *ConvertDB) Record(path, crc string) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO conversion (path, crc) VALUES (?, ?)", path, crc); err != nil {
		return err
	}
	return nil
}
