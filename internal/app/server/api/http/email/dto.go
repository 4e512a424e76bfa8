package email

import (
	"mailkeeper/internal/domain/credential"
)

type listInput struct {
	Limit  string `query:"limit" example:"100" doc:"Page size, non-negative integer (default 100)"`
	Offset string `query:"offset" example:"0" doc:"Rows to skip, non-negative integer (default 0)"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status     string                  `json:"status" example:"success"`
	Data       []credential.Credential `json:"data"`
	Pagination pagination              `json:"pagination"`
}

type pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total" doc:"Row count of the whole table"`
}

type exportInput struct {
	Limit string `query:"limit" example:"50" doc:"Number of newest records to export, positive integer"`
}

type exportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type idInput struct {
	ID string `path:"id" example:"1" doc:"Record id"`
}

type findOutput struct {
	Body findResponse
}

type findResponse struct {
	Status string                 `json:"status" example:"success"`
	Data   *credential.Credential `json:"data"`
}

type createInput struct {
	Body request
}

type updateInput struct {
	ID   string `path:"id" example:"1" doc:"Record id"`
	Body request
}

// request accepts and ignores unknown properties such as an echoed id.
type request struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Email         *string `json:"email,omitempty" doc:"Account address, required on create"`
	Password      *string `json:"password,omitempty" doc:"Account password, required on create"`
	AppPassword   *string `json:"app_password,omitempty" nullable:"true" doc:"Application password"`
	SecretKey     *string `json:"secret_key,omitempty" nullable:"true" doc:"Two-factor secret"`
	RecoveryEmail *string `json:"recovery_email,omitempty" nullable:"true" doc:"Recovery address"`
}

func (r request) fields() credential.Fields {
	return credential.Fields{
		Email:         r.Email,
		Password:      r.Password,
		AppPassword:   r.AppPassword,
		SecretKey:     r.SecretKey,
		RecoveryEmail: r.RecoveryEmail,
	}
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type messageOutput struct {
	Body messageResponse
}

type messageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}
