// Package export copies the dictionaries into a SQLite database so they can
// be queried or shared with other tools.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/autotranslate/internal/dictionary"
	"codeberg.org/snonux/autotranslate/internal/translation"
)

// Tier names used in the tier column
const (
	TierGlobal  = "global"
	TierProject = "project"
)

const schema = `CREATE TABLE IF NOT EXISTS translations (
	tier        TEXT NOT NULL,
	lang_pair   TEXT NOT NULL,
	source_text TEXT NOT NULL,
	translation TEXT NOT NULL,
	PRIMARY KEY (tier, lang_pair, source_text)
)`

// Tier is one named dictionary
type Tier struct {
	Name    string
	Entries dictionary.Entries
}

// TiersOf returns the dictionaries of t: always the global tier, and the
// project tier when it is enabled
func TiersOf(t *translation.Translator) []Tier {
	snap := t.Config()
	tiers := []Tier{{Name: TierGlobal, Entries: snap.GlobalDict}}
	if snap.UseProjectDict {
		tiers = append(tiers, Tier{Name: TierProject, Entries: snap.ProjectDict})
	}
	return tiers
}

// InitDB creates the translations table if it does not exist
func InitDB(conn *sql.DB) error {
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create translations table: %w", err)
	}
	return nil
}

// ToFile writes tiers into the SQLite database at path, creating it if
// needed. It returns the number of rows written.
func ToFile(ctx context.Context, path string, tiers []Tier) (int, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	defer conn.Close()

	if err := InitDB(conn); err != nil {
		return 0, err
	}
	return WriteTiers(ctx, conn, tiers)
}

// WriteTiers replaces the rows of every given tier in one transaction.
// Rows of tiers not given are left alone.
func WriteTiers(ctx context.Context, conn *sql.DB, tiers []Tier) (int, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO translations (tier, lang_pair, source_text, translation) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, tier := range tiers {
		if _, err := tx.ExecContext(ctx, `DELETE FROM translations WHERE tier = ?`, tier.Name); err != nil {
			return 0, fmt.Errorf("failed to clear tier %s: %w", tier.Name, err)
		}

		for _, pair := range sortedKeys(tier.Entries) {
			texts := tier.Entries[pair]
			for _, text := range sortedKeys(texts) {
				if _, err := stmt.ExecContext(ctx, tier.Name, pair, text, texts[text]); err != nil {
					return 0, fmt.Errorf("failed to insert %q: %w", text, err)
				}
				count++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit export: %w", err)
	}
	return count, nil
}

// ReadTier loads one tier back from the database
func ReadTier(ctx context.Context, conn *sql.DB, name string) (dictionary.Entries, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT lang_pair, source_text, translation FROM translations WHERE tier = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier %s: %w", name, err)
	}
	defer rows.Close()

	entries := make(dictionary.Entries)
	for rows.Next() {
		var pair, text, translation string
		if err := rows.Scan(&pair, &text, &translation); err != nil {
			return nil, err
		}
		if entries[pair] == nil {
			entries[pair] = make(map[string]string)
		}
		entries[pair][text] = translation
	}
	return entries, rows.Err()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
