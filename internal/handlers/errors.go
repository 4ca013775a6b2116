package handlers

// ErrorBody is a client-facing failure rendered as {"error": "..."}.
type ErrorBody struct {
	status  int
	Message string `json:"error"`
}

// NewErrorBody creates an ErrorBody answered with status.
func NewErrorBody(status int, message string) *ErrorBody {
	return &ErrorBody{status: status, Message: message}
}

func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorBody) GetStatus() int {
	return e.status
}

// MessageBody is a client-facing failure rendered as {"message": "..."}.
type MessageBody struct {
	status  int
	Message string `json:"message"`
}

// NewMessageBody creates a MessageBody answered with status.
func NewMessageBody(status int, message string) *MessageBody {
	return &MessageBody{status: status, Message: message}
}

func (e *MessageBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *MessageBody) GetStatus() int {
	return e.status
}
