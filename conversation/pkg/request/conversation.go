package request

type CreateConversation struct {
	CustomerName  string `validate:"required" json:"customer_name"`
	CustomerPhone string `validate:"required" json:"customer_phone"`
	Message       string `validate:"required" json:"message"`
}

type RespondConversation struct {
	Response string `validate:"required" json:"response"`
}
