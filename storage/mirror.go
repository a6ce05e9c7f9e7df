package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"labstock/inventory"
)

const mirrorSchema = `
CREATE TABLE IF NOT EXISTS inventory_items (
	part_num       TEXT PRIMARY KEY,
	manufacturer   TEXT,
	description    TEXT,
	total          INTEGER NOT NULL DEFAULT 0,
	stock_b750     INTEGER NOT NULL DEFAULT 0,
	stock_b757     INTEGER NOT NULL DEFAULT 0,
	minimum        INTEGER NOT NULL DEFAULT 0,
	excess         INTEGER NOT NULL DEFAULT 0,
	minimum_sallie INTEGER NOT NULL DEFAULT 0,
	stock_status   TEXT
);

CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY
);
`

// Mirror is the local SQLite copy of the spreadsheet.
type Mirror struct {
	db *sqlx.DB
}

// OpenMirror opens (and if necessary bootstraps) the mirror database.
func OpenMirror(dsn string) (*Mirror, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}
	if _, err := db.Exec(mirrorSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize mirror schema: %w", err)
	}
	return &Mirror{db: db}, nil
}

func (m *Mirror) Close() error {
	return m.db.Close()
}

func (m *Mirror) Items() ([]inventory.Item, error) {
	var items []inventory.Item
	err := m.db.Select(&items, `
		SELECT part_num, manufacturer, description, total, stock_b750,
		       stock_b757, minimum, excess, minimum_sallie, stock_status
		FROM inventory_items ORDER BY part_num`)
	if err != nil {
		return nil, fmt.Errorf("failed to select mirror items: %w", err)
	}
	return items, nil
}

func (m *Mirror) Users() ([]string, error) {
	var users []string
	if err := m.db.Select(&users, `SELECT username FROM users ORDER BY username`); err != nil {
		return nil, fmt.Errorf("failed to select mirror users: %w", err)
	}
	return users, nil
}

func (m *Mirror) InsertItem(item inventory.Item) error {
	_, err := m.db.NamedExec(`
		INSERT INTO inventory_items
			(part_num, manufacturer, description, total, stock_b750,
			 stock_b757, minimum, excess, minimum_sallie, stock_status)
		VALUES
			(:part_num, :manufacturer, :description, :total, :stock_b750,
			 :stock_b757, :minimum, :excess, :minimum_sallie, :stock_status)`,
		item)
	if err != nil {
		return fmt.Errorf("failed to insert mirror item %s: %w", item.PartNum, err)
	}
	return nil
}

func (m *Mirror) UpdateItem(item inventory.Item) error {
	_, err := m.db.NamedExec(`
		UPDATE inventory_items SET
			manufacturer = :manufacturer,
			description = :description,
			total = :total,
			stock_b750 = :stock_b750,
			stock_b757 = :stock_b757,
			minimum = :minimum,
			excess = :excess,
			minimum_sallie = :minimum_sallie,
			stock_status = :stock_status
		WHERE part_num = :part_num`,
		item)
	if err != nil {
		return fmt.Errorf("failed to update mirror item %s: %w", item.PartNum, err)
	}
	return nil
}

func (m *Mirror) DeleteItem(partNum string) error {
	if _, err := m.db.Exec(`DELETE FROM inventory_items WHERE part_num = ?`, partNum); err != nil {
		return fmt.Errorf("failed to delete mirror item %s: %w", partNum, err)
	}
	return nil
}

func (m *Mirror) InsertUser(username string) error {
	if _, err := m.db.Exec(`INSERT OR IGNORE INTO users (username) VALUES (?)`, username); err != nil {
		return fmt.Errorf("failed to insert mirror user %s: %w", username, err)
	}
	return nil
}

func (m *Mirror) DeleteUser(username string) error {
	if _, err := m.db.Exec(`DELETE FROM users WHERE username = ?`, username); err != nil {
		return fmt.Errorf("failed to delete mirror user %s: %w", username, err)
	}
	return nil
}
