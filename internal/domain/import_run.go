package domain

import "time"

// ImportRun records one dataset copied into Postgres by the importer.
type ImportRun struct {
	ID         int64     `db:"id" json:"id"`
	Dataset    string    `db:"dataset" json:"dataset"`
	Source     string    `db:"source" json:"source"`
	Rows       int64     `db:"row_count" json:"rows"`
	Anomalies  int64     `db:"anomalies" json:"anomalies"`
	ImportedAt time.Time `db:"imported_at" json:"imported_at"`
}
