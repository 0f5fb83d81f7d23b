package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Alturino/pharmacy/internal/config"
	"github.com/Alturino/pharmacy/internal/constants"
	"github.com/Alturino/pharmacy/internal/log"
	inOtel "github.com/Alturino/pharmacy/internal/otel"
	"github.com/Alturino/pharmacy/storefront/internal/app"
	"github.com/Alturino/pharmacy/storefront/internal/client"
	"github.com/Alturino/pharmacy/storefront/internal/otel"
	"github.com/Alturino/pharmacy/storefront/pkg/request"
)

var ErrUnknownProduct = errors.New("unknown product")

type orderOptions struct {
	form  request.OrderForm
	items []string
}

func NewStorefrontCommand() *cobra.Command {
	storefrontCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the catalog, fill a cart and contact the pharmacy from the terminal",
	}

	var category, search string
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered by category and search term",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorefront(cmd, func(c context.Context, s *app.Storefront) error {
				return runProducts(c, s, cmd.OutOrStdout(), category, search)
			})
		},
	}
	productsCmd.Flags().StringVarP(&category, "category", "c", "all", "category to show")
	productsCmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search in name and description")

	order := orderOptions{}
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order, --item takes a product id with an optional :quantity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorefront(cmd, func(c context.Context, s *app.Storefront) error {
				return runOrder(c, s, cmd.OutOrStdout(), order)
			})
		},
	}
	orderCmd.Flags().StringVar(&order.form.CustomerName, "name", "", "customer name")
	orderCmd.Flags().StringVar(&order.form.CustomerPhone, "phone", "", "customer phone")
	orderCmd.Flags().StringVar(&order.form.CustomerAddress, "address", "", "delivery address")
	orderCmd.Flags().StringVar(&order.form.Notes, "notes", "", "notes for the pharmacist")
	orderCmd.Flags().StringArrayVar(&order.items, "item", nil, "product id[:quantity], repeatable")

	contact := request.ContactForm{}
	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the pharmacy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorefront(cmd, func(c context.Context, s *app.Storefront) error {
				return runContact(c, s, cmd.OutOrStdout(), contact)
			})
		},
	}
	contactCmd.Flags().StringVar(&contact.CustomerName, "name", "", "customer name")
	contactCmd.Flags().StringVar(&contact.CustomerPhone, "phone", "", "customer phone")
	contactCmd.Flags().StringVar(&contact.Message, "message", "", "message")

	conversationsCmd := &cobra.Command{
		Use:   "conversations",
		Short: "List the messages sent to the pharmacy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorefront(cmd, func(c context.Context, s *app.Storefront) error {
				s.RefreshConversations(c)
				renderConversations(cmd.OutOrStdout(), s.View().Conversations)
				return nil
			})
		},
	}

	shopCmd := &cobra.Command{
		Use:   "shop",
		Short: "Interactive storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorefront(cmd, func(c context.Context, s *app.Storefront) error {
				return newShell(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run(c)
			})
		},
	}

	storefrontCmd.AddCommand(productsCmd, orderCmd, contactCmd, conversationsCmd, shopCmd)
	return storefrontCmd
}

// withStorefront sets up config, logging and tracing, then runs fn against a storefront
// bound to the configured backend. Logs only go to the log file.
func withStorefront(cmd *cobra.Command, fn func(c context.Context, s *app.Storefront) error) error {
	c := cmd.Context()
	cfg := config.Get(c, constants.AppStorefront)

	logger := log.Get(cfg.Application.LogPath, cfg.Application.Env, io.Discard).
		With().
		Str(log.KeyAppName, constants.AppStorefront).
		Str(log.KeyTag, "main "+cmd.Name()).
		Str(log.KeyBackendURL, cfg.Storefront.BackendURL).
		Logger()
	c = logger.WithContext(c)

	c, span := otel.Tracer.Start(c, "storefront "+cmd.Name())
	defer span.End()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	shutdownFuncs, err := inOtel.InitOtelSdk(logger.WithContext(c), constants.AppStorefront, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer func() {
		if err := inOtel.ShutdownOtel(context.Background(), shutdownFuncs); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, cmd.Name()).Logger()
	c = logger.WithContext(c)
	backend := client.NewBackendClient(cfg.Storefront.BackendURL, cfg.Storefront.Timeout)
	if err := fn(c, app.NewStorefront(backend)); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

func runProducts(c context.Context, s *app.Storefront, out io.Writer, category, search string) error {
	s.Load(c)
	s.SelectCategory(category)
	s.Search(search)
	view := s.View()
	renderCategories(out, view.Categories)
	renderProducts(out, view.Products)
	return nil
}

func parseItem(raw string) (string, int, error) {
	id, rawQuantity, found := strings.Cut(raw, ":")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", 0, fmt.Errorf("failed parsing item=%q with error=%w", raw, app.ErrInvalidForm)
	}
	if !found {
		return id, 1, nil
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(rawQuantity))
	if err != nil || quantity < 1 {
		return "", 0, fmt.Errorf("failed parsing quantity of item=%q with error=%w", raw, app.ErrInvalidForm)
	}
	return id, quantity, nil
}

func runOrder(c context.Context, s *app.Storefront, out io.Writer, opts orderOptions) error {
	logger := zerolog.Ctx(c).With().Ctx(c).Str(log.KeyTag, "storefront runOrder").Logger()

	s.Load(c)
	for _, raw := range opts.items {
		id, quantity, err := parseItem(raw)
		if err != nil {
			return err
		}
		product, ok := s.Product(id)
		if !ok {
			return fmt.Errorf("failed adding productId=%s with error=%w", id, ErrUnknownProduct)
		}
		s.AddToCart(product)
		s.UpdateQuantity(id, quantity)
		logger.Debug().Str(log.KeyProductID, id).Int(log.KeyProductQuantity, quantity).Msg("added to cart")
	}
	renderCart(out, s.View())

	s.OpenCart()
	if err := s.OpenOrderForm(); err != nil {
		return err
	}
	s.SetOrderForm(opts.form)
	err := s.SubmitOrder(c)
	renderNotices(out, s.Notices())
	return err
}

func runContact(c context.Context, s *app.Storefront, out io.Writer, form request.ContactForm) error {
	s.OpenChat()
	s.SetContactForm(form)
	err := s.SubmitContact(c)
	renderNotices(out, s.Notices())
	if err != nil {
		return err
	}
	renderConversations(out, s.View().Conversations)
	return nil
}
