package creator

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	"github.com/MrJamesThe3rd/billingfiles/internal/fixedwidth"
)

// The internal ledger has no file header.
type internalSchema struct {
	invoice     fixedwidth.Record[*billing.Record]
	description fixedwidth.Record[*billing.Record]
	row         fixedwidth.Record[billing.InvoiceRow]
	account     fixedwidth.Record[accountLine]
	footer      fixedwidth.Record[decimal.Decimal]
}

func newInternalSchema(amount fixedwidth.Formatter) internalSchema {
	return internalSchema{
		invoice: fixedwidth.NewRecord("invoice header", "H",
			fixedwidth.Required("customer id", 16, customerID),
			fixedwidth.Required("invoice date", 8, invoiceDate),
			fixedwidth.Required("due date", 8, dueDate),
			fixedwidth.Required("customer reference", 30, customerReference),
			fixedwidth.Required("our reference", 30, ourReference),
		),
		description: fixedwidth.NewRecord("invoice description", "B",
			fixedwidth.Required("description", 60, invoiceDescription),
		),
		row: fixedwidth.NewRecord("invoice row", "R",
			fixedwidth.Required("description", 30, rowDescription),
			fixedwidth.Amount("cost per unit", 15, fixedwidth.AlignRight, amount, func(r billing.InvoiceRow) decimal.Decimal { return r.CostPerUnit }),
			fixedwidth.Amount("quantity", 10, fixedwidth.AlignRight, amount, func(r billing.InvoiceRow) decimal.Decimal { return r.Quantity }),
			fixedwidth.Amount("total amount", 15, fixedwidth.AlignRight, amount, billing.InvoiceRow.TotalAmount),
		),
		account: fixedwidth.NewRecord("accounting", "K",
			fixedwidth.Required("cost center", 10, accountLine.costCenter),
			fixedwidth.Required("subaccount", 10, accountLine.subaccount),
			fixedwidth.Required("department", 10, accountLine.department),
			fixedwidth.Text("activity", 10, func(l accountLine) string { return l.info.Activity }),
			fixedwidth.Text("project", 10, func(l accountLine) string { return l.info.Project }),
			fixedwidth.Text("article", 10, func(l accountLine) string { return l.info.Article }),
			fixedwidth.Required("counterpart", 10, accountLine.counterpart),
			fixedwidth.Text("accrual key", 10, func(l accountLine) string { return l.info.AccrualKey }),
			fixedwidth.RequiredAmount("amount", 15, fixedwidth.AlignRight, amount, accountLine.amount),
		),
		footer: fixedwidth.NewRecord("file footer", "T",
			fixedwidth.Filler[decimal.Decimal]("filler", 1),
			fixedwidth.Amount("total amount", 15, fixedwidth.AlignLeft, amount, func(d decimal.Decimal) decimal.Decimal { return d }),
		),
	}
}
