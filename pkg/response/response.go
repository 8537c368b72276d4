package response

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ListEnvelope struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Pagination Pagination `json:"pagination"`
	Data       any        `json:"data"`
}

type CountEnvelope struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Message(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Token is the envelope returned by register and login.
func Token(message, token string, data any) Envelope {
	return Envelope{Success: true, Message: message, Token: token, Data: data}
}

// Deleted mirrors the empty object returned after a delete.
func Deleted() Envelope {
	return Envelope{Success: true, Data: struct{}{}}
}

func List(data any, count int, total int64, pagination Pagination) ListEnvelope {
	return ListEnvelope{
		Success:    true,
		Count:      count,
		Total:      total,
		Pagination: pagination,
		Data:       data,
	}
}

func Counted(data any, count int) CountEnvelope {
	return CountEnvelope{Success: true, Count: count, Data: data}
}

func Error(message string) ErrorEnvelope {
	return ErrorEnvelope{Error: message}
}
