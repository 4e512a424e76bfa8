package credential

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, limit, offset int) (Page, error)
	Find(ctx context.Context, id int64) (*Credential, error)
	Create(ctx context.Context, fields Fields) (int64, error)
	Update(ctx context.Context, id int64, fields Fields) error
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, limit int) ([]byte, error)
}

// Service acquires one Session per call and always releases it before returning.
type Service struct {
	connector Connector
	exporter  Exporter
	log       *slog.Logger
}

func NewService(connector Connector, exporter Exporter, log *slog.Logger) *Service {
	return &Service{
		connector: connector,
		exporter:  exporter,
		log:       log.With("component", "credential_service"),
	}
}

func (s *Service) List(ctx context.Context, limit, offset int) (Page, error) {
	if limit < 0 || offset < 0 {
		return Page{}, &ValidationError{Message: "limit and offset must be non-negative integers"}
	}

	var page Page
	err := s.withSession(ctx, func(sess Session) error {
		records, total, err := sess.List(ctx, limit, offset)
		if err != nil {
			return err
		}
		page = Page{Records: records, Limit: limit, Offset: offset, Total: total}
		return nil
	})
	if err != nil {
		return Page{}, fmt.Errorf("list emails: %w", err)
	}
	if page.Records == nil {
		page.Records = []Credential{}
	}

	return page, nil
}

func (s *Service) Find(ctx context.Context, id int64) (*Credential, error) {
	var rec *Credential
	err := s.withSession(ctx, func(sess Session) error {
		var err error
		rec, err = sess.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find email %d: %w", id, err)
	}

	return rec, nil
}

func (s *Service) Create(ctx context.Context, fields Fields) (int64, error) {
	if err := fields.ValidateForCreate(); err != nil {
		return 0, err
	}
	fields = fields.WithDefaults()

	var id int64
	err := s.withSession(ctx, func(sess Session) error {
		var err error
		id, err = sess.Insert(ctx, fields)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("create email: %w", err)
	}

	s.log.Debug("email created", "id", id)
	return id, nil
}

// Update overwrites every mutable field. A missing id is not reported.
func (s *Service) Update(ctx context.Context, id int64, fields Fields) error {
	err := s.withSession(ctx, func(sess Session) error {
		return sess.Update(ctx, id, fields)
	})
	if err != nil {
		return fmt.Errorf("update email %d: %w", id, err)
	}
	return nil
}

// Delete removes the row if it exists; deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.withSession(ctx, func(sess Session) error {
		return sess.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete email %d: %w", id, err)
	}
	return nil
}

// Export renders the newest limit records as a spreadsheet.
func (s *Service) Export(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 {
		return nil, &ValidationError{Message: "limit must be a positive integer"}
	}

	var records []Credential
	err := s.withSession(ctx, func(sess Session) error {
		var err error
		records, err = sess.Latest(ctx, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export emails: %w", err)
	}

	doc, err := s.exporter.Export(records)
	if err != nil {
		return nil, fmt.Errorf("export emails: %w", err)
	}

	return doc, nil
}

func (s *Service) withSession(ctx context.Context, fn func(Session) error) (err error) {
	sess, err := s.connector.Open(ctx)
	if err != nil {
		if !errors.Is(err, ErrConnection) {
			err = fmt.Errorf("%w: %v", ErrConnection, err)
		}
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			s.log.Warn("failed to release connection", "error", cerr)
		}
	}()

	return fn(sess)
}
