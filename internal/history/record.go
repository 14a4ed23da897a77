package history

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultTable = "n8n_chat_histories"

// Record is one row written by the automation engine's chat memory. Rows are
// append-only and ordered by ID within a session.
type Record struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	SessionID string         `gorm:"type:varchar(255);not null;index"`
	Message   datatypes.JSON `gorm:"not null"`
}

func (Record) TableName() string { return DefaultTable }

// Reader reads history rows. It never writes.
type Reader struct {
	db    *gorm.DB
	table string
}

func NewReader(db *gorm.DB, table string) *Reader {
	if table == "" {
		table = DefaultTable
	}
	return &Reader{db: db, table: table}
}

// Records returns a session's rows in insertion order.
func (r *Reader) Records(ctx context.Context, sessionID string) ([]Record, error) {
	var rows []Record
	if err := r.db.WithContext(ctx).
		Table(r.table).
		Select("id", "session_id", "message").
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Reader) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
