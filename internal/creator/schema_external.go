package creator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	"github.com/MrJamesThe3rd/billingfiles/internal/fixedwidth"
)

const externalAmountWidth = 15

type externalHeader struct {
	system  string
	created time.Time
	tag     string
}

// externalInvoice is a billing record with its resolved legal id.
type externalInvoice struct {
	record  *billing.Record
	legalID string
}

type externalSchema struct {
	header   fixedwidth.Record[externalHeader]
	customer fixedwidth.Record[externalInvoice]
	invoice  fixedwidth.Record[externalInvoice]
	row      fixedwidth.Record[billing.InvoiceRow]
	detail   fixedwidth.Record[string]
	account  fixedwidth.Record[accountLine]
	footer   fixedwidth.Record[decimal.Decimal]
}

var external = newExternalSchema()

func newExternalSchema() externalSchema {
	amount := fixedwidth.ExternalAmount(externalAmountWidth)

	return externalSchema{
		header: fixedwidth.NewRecord("file header", "!",
			fixedwidth.Text("generating system", 10, func(h externalHeader) string { return h.system }),
			fixedwidth.Text("creation date", 8, func(h externalHeader) string { return h.created.Format(dateLayout) }),
			fixedwidth.Text("file tag", 20, func(h externalHeader) string { return h.tag }),
		),
		customer: fixedwidth.NewRecord("customer", "S",
			fixedwidth.Text("legal id", 16, func(v externalInvoice) string { return v.legalID }),
			fixedwidth.Required("name", 40, func(v externalInvoice) (string, error) { return recipientName(v.record) }),
			fixedwidth.Text("care of", 30, func(v externalInvoice) string { return careOf(v.record) }),
			fixedwidth.Required("street", 35, func(v externalInvoice) (string, error) { return street(v.record) }),
			fixedwidth.Required("postal code and city", 35, func(v externalInvoice) (string, error) { return postalCodeAndCity(v.record) }),
			fixedwidth.Required("counterpart", 16, func(v externalInvoice) (string, error) { return counterpart(v.record) }),
		),
		invoice: fixedwidth.NewRecord("invoice header", "H",
			fixedwidth.Text("legal id", 16, func(v externalInvoice) string { return v.legalID }),
			fixedwidth.Required("due date", 8, func(v externalInvoice) (string, error) { return dueDate(v.record) }),
			fixedwidth.Required("customer reference", 30, func(v externalInvoice) (string, error) { return customerReference(v.record) }),
			fixedwidth.Required("our reference", 30, func(v externalInvoice) (string, error) { return ourReference(v.record) }),
		),
		row: fixedwidth.NewRecord("invoice row", "R",
			fixedwidth.Required("description", 30, rowDescription),
			fixedwidth.Amount("cost per unit", externalAmountWidth, fixedwidth.AlignRight, amount, func(r billing.InvoiceRow) decimal.Decimal { return r.CostPerUnit }),
			fixedwidth.Amount("quantity", externalAmountWidth, fixedwidth.AlignRight, amount, func(r billing.InvoiceRow) decimal.Decimal { return r.Quantity }),
			fixedwidth.Amount("total amount", externalAmountWidth, fixedwidth.AlignRight, amount, billing.InvoiceRow.TotalAmount),
			fixedwidth.Required("vat code", 4, vatCode),
		),
		detail: fixedwidth.NewRecord("row description", "U",
			fixedwidth.Text("text", 60, func(s string) string { return s }),
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
			fixedwidth.RequiredAmount("amount", externalAmountWidth, fixedwidth.AlignRight, amount, accountLine.amount),
		),
		footer: fixedwidth.NewRecord("file footer", "T",
			fixedwidth.Amount("total amount", externalAmountWidth, fixedwidth.AlignRight, amount, func(d decimal.Decimal) decimal.Decimal { return d }),
		),
	}
}
