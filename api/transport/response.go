package transport

import "encoding/json"

// Envelope wraps every API response.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

// NewError builds an error envelope. code is a domain error code or DEGRADED.
func NewError(code, message string, meta interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: message, Meta: meta}
}

// WithData attaches view state to an error envelope, e.g. the kept form inputs.
func (e Envelope) WithData(data interface{}) Envelope {
	e.Data = data
	return e
}

// Encode marshals the envelope, falling back to a bare INTERNAL error.
func (e Envelope) Encode() []byte {
	body, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"status":"error","code":"INTERNAL"}`)
	}
	return body
}
