package samples

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LoadSQLite reads a sample mapping from a SQLite database. The database
// must contain a samples table:
//
//	CREATE TABLE samples (
//	    taxon        TEXT NOT NULL,
//	    lat          REAL NOT NULL,
//	    lon          REAL NOT NULL,
//	    collected_on TEXT
//	);
//
// Rows are consumed in rowid order, which preserves per-taxon sample order.
// The last non-empty collected_on per taxon wins.
func LoadSQLite(path string) (*Set, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open samples db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT taxon, lat, lon, COALESCE(collected_on, '') FROM samples ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	coords := make(map[string][]Coordinate)
	meta := make(map[string]Metadata)
	for rows.Next() {
		var (
			taxon     string
			c         Coordinate
			collected string
		)
		if err := rows.Scan(&taxon, &c.Lat, &c.Lon, &collected); err != nil {
			return nil, fmt.Errorf("scan sample row: %w", err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("taxon %s: %w", taxon, err)
		}
		coords[taxon] = append(coords[taxon], c)
		if collected != "" {
			meta[taxon] = Metadata{CollectedOn: collected}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return NewSet(coords, meta), nil
}
