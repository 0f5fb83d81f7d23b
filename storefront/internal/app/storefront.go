package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/internal/validate"
	"github.com/Alturino/pharmacy/storefront/internal/cart"
	"github.com/Alturino/pharmacy/storefront/internal/catalog"
	"github.com/Alturino/pharmacy/storefront/internal/filter"
	"github.com/Alturino/pharmacy/storefront/internal/otel"
	"github.com/Alturino/pharmacy/storefront/pkg/request"
	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

var (
	ErrSubmissionInFlight   = errors.New("submission already in flight")
	ErrInvalidForm          = errors.New("invalid form")
	ErrOrderFormUnavailable = errors.New("order form needs an open, non-empty cart")
)

type Backend interface {
	catalog.Source
	GetConversations(c context.Context) ([]response.Conversation, error)
	PostOrder(c context.Context, order request.OrderRequest) error
	PostConversation(c context.Context, message request.ContactMessage) error
}

// View is a read-only snapshot used for rendering.
type View struct {
	Products      []response.Product
	Categories    []string
	Category      string
	Search        string
	CartItems     []cart.Item
	CartCount     int
	Total         decimal.Decimal
	Overlay       Overlay
	OrderForm     request.OrderForm
	ContactForm   request.ContactForm
	Conversations []response.Conversation
	OrderState    SubmissionState
	ContactState  SubmissionState
}

// Storefront owns every piece of UI state. Its methods are the only way to change it and
// each one runs under mu; network calls happen with mu released.
type Storefront struct {
	backend   Backend
	catalog   *catalog.Catalog
	validator *validator.Validate

	mu            sync.Mutex
	category      string
	search        string
	cart          *cart.Cart
	overlay       Overlay
	orderForm     request.OrderForm
	contactForm   request.ContactForm
	conversations []response.Conversation
	notices       []Notice
	orderState    SubmissionState
	contactState  SubmissionState
}

func NewStorefront(backend Backend) *Storefront {
	return &Storefront{
		backend:   backend,
		catalog:   catalog.New(backend),
		validator: validate.New(),
		category:  filter.AllCategories,
		cart:      cart.New(),
	}
}

// Load fetches products, categories and conversations concurrently. Failures are logged
// and leave the previous state in place.
func (s *Storefront) Load(c context.Context) {
	c, span := otel.Tracer.Start(c, "Storefront Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Storefront Load").
		Str(log.KeyProcess, "loading storefront").
		Logger()
	logger.Trace().Msg("loading storefront")
	c = logger.WithContext(c)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.catalog.Load(c)
	}()
	go func() {
		defer wg.Done()
		s.RefreshConversations(c)
	}()
	wg.Wait()
	logger.Trace().Msg("loaded storefront")
}

func (s *Storefront) RefreshConversations(c context.Context) {
	c, span := otel.Tracer.Start(c, "Storefront RefreshConversations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Storefront RefreshConversations").
		Str(log.KeyProcess, "fetching conversations").
		Logger()

	logger.Trace().Msg("fetching conversations")
	conversations, err := s.backend.GetConversations(c)
	if c.Err() != nil {
		logger.Debug().Err(c.Err()).Msg("discarded conversations")
		return
	}
	if err != nil {
		err = fmt.Errorf("failed fetching conversations with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	s.mu.Lock()
	s.conversations = conversations
	s.mu.Unlock()
	logger.Info().Int(log.KeyConversations, len(conversations)).Msg("fetched conversations")
}

func (s *Storefront) SelectCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = filter.AllCategories
	}
	s.category = category
}

func (s *Storefront) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

func (s *Storefront) VisibleProducts() []response.Product {
	s.mu.Lock()
	category, search := s.category, s.search
	s.mu.Unlock()
	return filter.Products(s.catalog.Products(), category, search)
}

func (s *Storefront) Product(id string) (response.Product, bool) {
	return s.catalog.Product(id)
}

func (s *Storefront) AddToCart(product response.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(product)
}

func (s *Storefront) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
}

func (s *Storefront) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, quantity)
}

func (s *Storefront) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Storefront) Overlay() Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

func (s *Storefront) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = OverlayCart
}

func (s *Storefront) OpenOrderForm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay != OverlayCart || s.cart.Len() == 0 {
		return ErrOrderFormUnavailable
	}
	s.overlay = OverlayOrderForm
	return nil
}

func (s *Storefront) OpenChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = OverlayChatModal
}

func (s *Storefront) CloseOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = s.overlay.parent()
}

func (s *Storefront) SetOrderForm(form request.OrderForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderForm = form
}

func (s *Storefront) SetContactForm(form request.ContactForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contactForm = form
}

// Notices returns and clears the pending notices.
func (s *Storefront) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices
	s.notices = nil
	return notices
}

func (s *Storefront) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversations := make([]response.Conversation, len(s.conversations))
	copy(conversations, s.conversations)
	return View{
		Products:      filter.Products(s.catalog.Products(), s.category, s.search),
		Categories:    s.catalog.Categories(),
		Category:      s.category,
		Search:        s.search,
		CartItems:     s.cart.Items(),
		CartCount:     s.cart.Count(),
		Total:         s.cart.Total(),
		Overlay:       s.overlay,
		OrderForm:     s.orderForm,
		ContactForm:   s.contactForm,
		Conversations: conversations,
		OrderState:    s.orderState,
		ContactState:  s.contactState,
	}
}

func (s *Storefront) pushNotice(level NoticeLevel, message string) {
	s.notices = append(s.notices, Notice{Level: level, Message: message})
}

// SubmitOrder sends the cart with the order form. On success the cart is emptied and the
// overlays are closed; on failure an error notice is queued and everything else is kept.
// No idempotency key is sent, so retrying after an ambiguous failure may duplicate the order.
func (s *Storefront) SubmitOrder(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Storefront SubmitOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Storefront SubmitOrder").
		Str(log.KeySubmission, "order").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating order").Logger()
	logger.Trace().Msg("validating order")
	s.mu.Lock()
	if s.orderState == SubmissionSubmitting {
		s.mu.Unlock()
		err := fmt.Errorf("failed submitting order with error=%w", ErrSubmissionInFlight)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}
	form := s.orderForm
	order := request.OrderRequest{
		CustomerName:    form.CustomerName,
		CustomerPhone:   form.CustomerPhone,
		CustomerAddress: form.CustomerAddress,
		Notes:           form.Notes,
		Items:           s.cart.OrderItems(),
		TotalAmount:     s.cart.Total(),
	}
	if err := s.validator.StructCtx(c, order); err != nil {
		s.mu.Unlock()
		err = fmt.Errorf("failed validating order with error=%w: %w", ErrInvalidForm, err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}
	s.orderState = SubmissionSubmitting
	s.mu.Unlock()
	logger = logger.With().
		Int(log.KeyOrderItems, len(order.Items)).
		Str(log.KeyTotalAmount, order.TotalAmount.StringFixed(2)).
		Logger()
	logger.Trace().Msg("validated order")

	logger = logger.With().Str(log.KeyProcess, "posting order").Logger()
	logger.Trace().Msg("posting order")
	err := s.backend.PostOrder(logger.WithContext(c), order)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderState = SubmissionIdle
	if c.Err() != nil {
		err = fmt.Errorf("discarded order result with error=%w", c.Err())
		logger.Debug().Err(err).Msg(err.Error())
		return err
	}
	if err != nil {
		err = fmt.Errorf("failed posting order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.pushNotice(NoticeError, MessageOrderFailed)
		return err
	}
	s.cart.Clear()
	s.orderForm = request.OrderForm{}
	s.overlay = OverlayNone
	s.pushNotice(NoticeSuccess, MessageOrderSucceeded)
	logger.Info().Msg("posted order")

	return nil
}

// SubmitContact sends the contact form. On success the form is reset, the chat is closed
// and the conversations are fetched again.
func (s *Storefront) SubmitContact(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Storefront SubmitContact")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "Storefront SubmitContact").
		Str(log.KeySubmission, "contact").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating contact form").Logger()
	logger.Trace().Msg("validating contact form")
	s.mu.Lock()
	if s.contactState == SubmissionSubmitting {
		s.mu.Unlock()
		err := fmt.Errorf("failed submitting contact with error=%w", ErrSubmissionInFlight)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}
	form := s.contactForm
	if err := s.validator.StructCtx(c, form); err != nil {
		s.mu.Unlock()
		err = fmt.Errorf("failed validating contact form with error=%w: %w", ErrInvalidForm, err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}
	s.contactState = SubmissionSubmitting
	s.mu.Unlock()
	logger.Trace().Msg("validated contact form")

	logger = logger.With().Str(log.KeyProcess, "posting contact message").Logger()
	logger.Trace().Msg("posting contact message")
	err := s.backend.PostConversation(logger.WithContext(c), form.ContactMessage())

	s.mu.Lock()
	s.contactState = SubmissionIdle
	if c.Err() != nil {
		s.mu.Unlock()
		err = fmt.Errorf("discarded contact result with error=%w", c.Err())
		logger.Debug().Err(err).Msg(err.Error())
		return err
	}
	if err != nil {
		s.pushNotice(NoticeError, MessageContactFailed)
		s.mu.Unlock()
		err = fmt.Errorf("failed posting contact message with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	s.contactForm = request.ContactForm{}
	s.overlay = OverlayNone
	s.pushNotice(NoticeSuccess, MessageContactSucceeded)
	s.mu.Unlock()
	logger.Info().Msg("posted contact message")

	s.RefreshConversations(c)
	return nil
}
