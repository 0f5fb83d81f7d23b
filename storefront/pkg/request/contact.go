package request

type ContactMessage struct {
	CustomerName  string `json:"customer_name"  validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	Message       string `json:"message"        validate:"required"`
}

type ContactForm struct {
	CustomerName  string `validate:"required"`
	CustomerPhone string `validate:"required"`
	Message       string `validate:"required"`
}

func (f ContactForm) ContactMessage() ContactMessage {
	return ContactMessage{
		CustomerName:  f.CustomerName,
		CustomerPhone: f.CustomerPhone,
		Message:       f.Message,
	}
}
