package constants

const (
	AppPharmacy                = "pharmacie-saidani"
	AppApiService              = "api-service"
	AppNotificationService     = "notification-service"
	AppStorefront              = "storefront"
	AppProductService          = "product-service"
	AppOrderService            = "order-service"
	AppConversationService     = "conversation-service"
	ChannelOrderCreated        = "order.created"
	ChannelConversationCreated = "conversation.created"
)
