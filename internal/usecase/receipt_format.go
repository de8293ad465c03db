package usecase

import (
	"fmt"
	"strings"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

const receiptRule = "----------------------------------------"

// FormatReceipt は人が読むためのレシート本文を作る。
func FormatReceipt(r model.Receipt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Receipt #%s\n", r.ID)
	fmt.Fprintf(&b, "Date: %s\n", r.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Customer: %s <%s>\n", r.Name, r.Email)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	b.WriteString(receiptRule + "\n")

	for _, it := range r.Items {
		name := it.Name
		if name == "" {
			name = it.ProductID
		}
		if name == "" {
			name = "Item"
		}
		lineTotal := Round2(it.Price * float64(it.Quantity))
		fmt.Fprintf(&b, "%d x %s @ %s = %s\n", it.Quantity, name, money(it.Price), money(lineTotal))
	}

	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money(r.Subtotal))
	fmt.Fprintf(&b, "Tax (%s%%): %s\n", decimal.NewFromFloat(TaxRate).Shift(2).String(), money(r.Tax))
	fmt.Fprintf(&b, "Total: %s\n", money(r.Total))

	return b.String()
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
