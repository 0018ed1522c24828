package repository

import (
	"context"
	"database/sql"
	"time"
)

// KeyValue is the persistence capability behind the credential store:
// get/set/remove on single string keys.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Record is one stored entity document.
type Record struct {
	ID        int64
	Kind      string
	DeviceID  *int64 // indexed copy of the document's deviceId, if any
	Body      []byte // JSON document without id/timestamps
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordFilter narrows List. Zero values mean "no constraint".
type RecordFilter struct {
	DeviceID *int64
	Since    time.Time
	Newest   bool // order by created_at DESC instead of id ASC
	Limit    int
}

type RecordRepo interface {
	Insert(ctx context.Context, kind string, deviceID *int64, body []byte) (Record, error)
	Get(ctx context.Context, kind string, id int64) (*Record, error)
	List(ctx context.Context, kind string, f RecordFilter) ([]Record, error)
	Update(ctx context.Context, kind string, id int64, deviceID *int64, body []byte) (bool, error)
	Delete(ctx context.Context, kind string, id int64) (bool, error)
}

type Repository struct {
	State   KeyValue
	Records RecordRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		State:   NewStateSQLite(db),
		Records: NewRecordSQLite(db),
	}
}
