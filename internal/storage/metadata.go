package storage

// SchemaVersion is the advisory version string embedded in every snapshot.
// It is not used for format negotiation; see Metadata.Version.
const SchemaVersion = "hypervault-v1"

// Metadata tracks engine-wide counters and timestamps. Every counter is
// monotonically non-decreasing across the lifetime of a snapshot file (I6).
type Metadata struct {
	Version         string
	CreatedAt       int64
	LastModified    int64
	TotalOperations uint64
	TablesCreated   uint64
	RowsInserted    uint64
	RowsUpdated     uint64
	RowsDeleted     uint64
}

func newMetadata(now int64) Metadata {
	return Metadata{
		Version:      SchemaVersion,
		CreatedAt:    now,
		LastModified: now,
	}
}

func (m *Metadata) touch(now int64) {
	if now > m.LastModified {
		m.LastModified = now
	}
	m.TotalOperations++
}

// ColumnStats describes the observed cardinality of one column.
type ColumnStats struct {
	DistinctValues int
	TotalObserved  int
	Selectivity    float64 // DistinctValues / TotalObserved, or 1.0 when TotalObserved == 0
}

// TableStats is the per-table statistics snapshot returned by
// Engine.GetTableStats, one ColumnStats entry per declared column.
type TableStats struct {
	TableName string
	RowCount  int
	Columns   map[string]ColumnStats
}
