package credential

import "context"

// Session is one live database connection. Every method runs on that
// connection; Close releases it.
type Session interface {
	List(ctx context.Context, limit, offset int) ([]Credential, int64, error)
	Latest(ctx context.Context, limit int) ([]Credential, error)
	Get(ctx context.Context, id int64) (*Credential, error)
	Insert(ctx context.Context, fields Fields) (int64, error)
	Update(ctx context.Context, id int64, fields Fields) error
	Delete(ctx context.Context, id int64) error
	Close() error
}

// Connector opens a fresh Session per logical operation.
type Connector interface {
	Open(ctx context.Context) (Session, error)
}

// Exporter renders records as a spreadsheet document.
type Exporter interface {
	Export(records []Credential) ([]byte, error)
}
