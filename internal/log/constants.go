package log

const (
	KeyAppName         = "app"
	KeyRequestID       = "requestId"
	KeyTraceID         = "traceId"
	KeySpanID          = "spanId"
	KeyProcess         = "process"
	KeyTag             = "tag"
	KeyConfig          = "config"
	KeyRequest         = "request"
	KeyRequestBody     = "requestBody"
	KeyRequestHeader   = "requestHeader"
	KeyRequestHost     = "host"
	KeyRequestIp       = "requesterIP"
	KeyRequestMethod   = "requestMethod"
	KeyRequestURI      = "requestURI"
	KeyRequestURL      = "requestURL"
	KeyResponseStatus  = "responseStatus"
	KeyCacheKey        = "cacheKey"
	KeyChannel         = "channel"
	KeyDbURL           = "dbUrl"
	KeyBackendURL      = "backendUrl"
	KeyProduct         = "product"
	KeyProducts        = "products"
	KeyProductID       = "productId"
	KeyProductQuantity = "productQuantity"
	KeyCategory        = "category"
	KeyCategories      = "categories"
	KeySearchTerm      = "searchTerm"
	KeyOrder           = "order"
	KeyOrders          = "orders"
	KeyOrderID         = "orderId"
	KeyOrderItems      = "orderItems"
	KeyTotalAmount     = "totalAmount"
	KeyConversation    = "conversation"
	KeyConversations   = "conversations"
	KeyConversationID  = "conversationId"
	KeyOverlay         = "overlay"
	KeySubmission      = "submission"
	KeyCartItems       = "cartItems"
	KeyCustomerName    = "customerName"
	KeyMessage         = "customerMessage"
	KeyNotice          = "notice"
)
