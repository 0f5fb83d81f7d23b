package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Alturino/pharmacy/storefront/internal/app"
	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

const currency = "DA"

func renderProducts(out io.Writer, products []response.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "Aucun produit trouvé")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUIT\tCATÉGORIE\tPRIX\tSTOCK")
	for _, p := range products {
		stock := "oui"
		if !p.InStock {
			stock = "non"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), currency, stock)
	}
	_ = w.Flush()
}

func renderCategories(out io.Writer, categories []string) {
	fmt.Fprint(out, "Catégories: all")
	for _, category := range categories {
		fmt.Fprintf(out, ", %s", category)
	}
	fmt.Fprintln(out)
}

func renderCart(out io.Writer, view app.View) {
	if len(view.CartItems) == 0 {
		fmt.Fprintln(out, "Votre panier est vide")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUIT\tQTÉ\tPRIX\tSOUS-TOTAL")
	for _, item := range view.CartItems {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			item.ID, item.Name, item.Quantity, item.Price.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	_ = w.Flush()
	fmt.Fprintf(out, "Total: %s %s (%d articles)\n", view.Total.StringFixed(2), currency, view.CartCount)
}

func renderConversations(out io.Writer, conversations []response.Conversation) {
	if len(conversations) == 0 {
		fmt.Fprintln(out, "Aucune conversation")
		return
	}
	for _, conversation := range conversations {
		fmt.Fprintf(out, "[%s] %s (%s): %s\n",
			conversation.Status,
			conversation.CustomerName,
			conversation.CreatedAt.Format("2006-01-02 15:04"),
			conversation.Message,
		)
		if conversation.Response != nil {
			fmt.Fprintf(out, "  Réponse: %s\n", *conversation.Response)
		}
	}
}

func renderNotices(out io.Writer, notices []app.Notice) {
	for _, notice := range notices {
		if notice.Level == app.NoticeError {
			fmt.Fprintf(out, "! %s\n", notice.Message)
			continue
		}
		fmt.Fprintln(out, notice.Message)
	}
}
