package credential

// Credential is one row of the gmail table.
type Credential struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	AppPassword   *string `json:"app_password"`
	SecretKey     *string `json:"secret_key"`
	RecoveryEmail *string `json:"recovery_email"`
}

// Fields is a record without its id. A nil field is written as NULL.
type Fields struct {
	Email         *string
	Password      *string
	AppPassword   *string
	SecretKey     *string
	RecoveryEmail *string
}

// ValidateForCreate checks the fields a new record cannot do without.
func (f Fields) ValidateForCreate() error {
	if f.Email == nil || *f.Email == "" {
		return ErrEmailRequired
	}
	if f.Password == nil || *f.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// WithDefaults maps empty optional fields to NULL, as done on insert.
func (f Fields) WithDefaults() Fields {
	f.AppPassword = nullIfEmpty(f.AppPassword)
	f.SecretKey = nullIfEmpty(f.SecretKey)
	f.RecoveryEmail = nullIfEmpty(f.RecoveryEmail)
	return f
}

// Page is one window of the list ordered by id descending.
type Page struct {
	Records []Credential `json:"data"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	Total   int64        `json:"total"`
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
