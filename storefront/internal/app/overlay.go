package app

// Overlay is the single view drawn above the catalog.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayCart
	OverlayOrderForm
	OverlayChatModal
)

func (o Overlay) String() string {
	switch o {
	case OverlayCart:
		return "cart"
	case OverlayOrderForm:
		return "order-form"
	case OverlayChatModal:
		return "chat"
	default:
		return "none"
	}
}

// parent is the overlay shown once o is closed. The order form sits on top of the cart.
func (o Overlay) parent() Overlay {
	if o == OverlayOrderForm {
		return OverlayCart
	}
	return OverlayNone
}

type SubmissionState int

const (
	SubmissionIdle SubmissionState = iota
	SubmissionSubmitting
)

func (s SubmissionState) String() string {
	if s == SubmissionSubmitting {
		return "submitting"
	}
	return "idle"
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

const (
	MessageOrderSucceeded   = "Commande passée avec succès !"
	MessageOrderFailed      = "Erreur lors de la commande"
	MessageContactSucceeded = "Message envoyé avec succès !"
	MessageContactFailed    = "Erreur lors de l'envoi du message"
)
