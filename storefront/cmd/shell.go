package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/pharmacy/internal/log"
	"github.com/Alturino/pharmacy/storefront/internal/app"
)

const shellHelp = `Commandes:
  list                     produits visibles
  category <nom|all>       filtrer par catégorie
  search [terme]           rechercher (vide pour effacer)
  add <id>                 ajouter au panier
  remove <id>              retirer du panier
  qty <id> <quantité>      changer la quantité
  cart                     ouvrir le panier
  checkout                 commander le panier
  contact                  envoyer un message
  conversations            voir les messages
  close                    fermer la vue courante
  reload                   recharger le catalogue
  quit                     quitter

Dans les formulaires, une réponse vide garde la valeur affichée et "-" l'efface.`

const clearField = "-"

// shell is the line-oriented view over a Storefront. It only reads state through View and
// changes it through the Storefront operations.
type shell struct {
	storefront *app.Storefront
	in         *bufio.Scanner
	out        io.Writer
}

func newShell(storefront *app.Storefront, in io.Reader, out io.Writer) *shell {
	return &shell{storefront: storefront, in: bufio.NewScanner(in), out: out}
}

func (s *shell) Run(c context.Context) error {
	logger := zerolog.Ctx(c).With().Ctx(c).Str(log.KeyTag, "shell Run").Logger()

	s.storefront.Load(c)
	fmt.Fprintln(s.out, "Pharmacie Saidani")
	s.list()
	fmt.Fprintln(s.out, `Tapez "help" pour l'aide.`)

	for {
		if c.Err() != nil {
			return nil
		}
		fmt.Fprintf(s.out, "[%s] > ", s.storefront.Overlay())
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}
		if line == "" {
			continue
		}
		logger.Trace().Str(log.KeyProcess, "executing").Msg(line)
		if quit := s.exec(c, line); quit {
			return nil
		}
		renderNotices(s.out, s.storefront.Notices())
	}
}

func (s *shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	return s.readLine()
}

// promptField shows the current value, keeps it on an empty answer and clears it on "-".
func (s *shell) promptField(label string, value *string) bool {
	if *value != "" {
		label = fmt.Sprintf("%s [%s]", label, *value)
	}
	answer, ok := s.prompt(label)
	if !ok {
		return false
	}
	switch answer {
	case "":
	case clearField:
		*value = ""
	default:
		*value = answer
	}
	return true
}

func (s *shell) exec(c context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "list":
		s.list()
	case "category":
		s.storefront.SelectCategory(arg)
		s.list()
	case "search":
		s.storefront.Search(arg)
		s.list()
	case "add":
		product, ok := s.storefront.Product(arg)
		if !ok {
			fmt.Fprintf(s.out, "Produit inconnu: %s\n", arg)
			return false
		}
		s.storefront.AddToCart(product)
		fmt.Fprintf(s.out, "%s ajouté au panier\n", product.Name)
	case "remove":
		s.storefront.RemoveFromCart(arg)
		renderCart(s.out, s.storefront.View())
	case "qty":
		id, rawQuantity, _ := strings.Cut(arg, " ")
		quantity, err := strconv.Atoi(strings.TrimSpace(rawQuantity))
		if err != nil {
			fmt.Fprintln(s.out, "Usage: qty <id> <quantité>")
			return false
		}
		s.storefront.UpdateQuantity(id, quantity)
		renderCart(s.out, s.storefront.View())
	case "cart":
		s.storefront.OpenCart()
		renderCart(s.out, s.storefront.View())
	case "checkout":
		s.checkout(c)
	case "contact":
		s.contact(c)
	case "conversations":
		s.storefront.RefreshConversations(c)
		renderConversations(s.out, s.storefront.View().Conversations)
	case "close":
		s.storefront.CloseOverlay()
	case "reload":
		s.storefront.Load(c)
		s.list()
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "Commande inconnue: %s\n", command)
	}
	return false
}

func (s *shell) list() {
	view := s.storefront.View()
	renderCategories(s.out, view.Categories)
	renderProducts(s.out, view.Products)
}

func (s *shell) checkout(c context.Context) {
	if s.storefront.Overlay() != app.OverlayOrderForm {
		if s.storefront.View().CartCount == 0 {
			fmt.Fprintln(s.out, "Votre panier est vide")
			return
		}
		s.storefront.OpenCart()
		if err := s.storefront.OpenOrderForm(); err != nil {
			fmt.Fprintln(s.out, "Votre panier est vide")
			return
		}
	}
	view := s.storefront.View()
	renderCart(s.out, view)

	form := view.OrderForm
	fields := []struct {
		label string
		value *string
	}{
		{label: "Nom complet", value: &form.CustomerName},
		{label: "Téléphone", value: &form.CustomerPhone},
		{label: "Adresse de livraison", value: &form.CustomerAddress},
		{label: "Notes (optionnel)", value: &form.Notes},
	}
	for _, field := range fields {
		if ok := s.promptField(field.label, field.value); !ok {
			return
		}
	}
	s.storefront.SetOrderForm(form)

	if err := s.storefront.SubmitOrder(c); errors.Is(err, app.ErrInvalidForm) {
		fmt.Fprintln(s.out, "Nom, téléphone et adresse sont obligatoires")
	}
}

func (s *shell) contact(c context.Context) {
	s.storefront.OpenChat()
	form := s.storefront.View().ContactForm
	fields := []struct {
		label string
		value *string
	}{
		{label: "Nom", value: &form.CustomerName},
		{label: "Téléphone", value: &form.CustomerPhone},
		{label: "Message", value: &form.Message},
	}
	for _, field := range fields {
		if ok := s.promptField(field.label, field.value); !ok {
			return
		}
	}
	s.storefront.SetContactForm(form)

	if err := s.storefront.SubmitContact(c); errors.Is(err, app.ErrInvalidForm) {
		fmt.Fprintln(s.out, "Tous les champs sont obligatoires")
	}
}
