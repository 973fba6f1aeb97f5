package api

// Byte fields are hex encoded.

type NewResponse struct {
	PublicKey string `json:"pk"`
	Generator string `json:"g"`
}

type DeriveRequest struct {
	Generator string   `json:"g"`
	IDs       []uint64 `json:"ids,omitempty"`
}

type SignRequest struct {
	Generator string   `json:"g,omitempty"` // defaults to the master generator
	Message   string   `json:"msg"`
	IDs       []uint64 `json:"ids,omitempty"`
}

type SignResponse struct {
	Signature string `json:"sig"`
}

type VerifyRequest struct {
	Signature string `json:"sig"`
	Message   string `json:"msg"`
}

type AuditRequest struct {
	Generator string `json:"g,omitempty"`
	Message   string `json:"msg"`
}

// ResultResponse carries a boolean outcome.
type ResultResponse struct {
	Result bool `json:"res"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"res"`
}
