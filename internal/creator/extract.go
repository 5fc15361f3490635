package creator

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
)

const dateLayout = "20060102"

func present(f Field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", missing(f)
	}

	return v, nil
}

func date(f Field, t *time.Time) (string, error) {
	if t == nil || t.IsZero() {
		return "", missing(f)
	}

	return t.Format(dateLayout), nil
}

func recipient(r *billing.Record) (*billing.Recipient, error) {
	if r.Recipient == nil {
		return nil, missing(FieldRecipient)
	}

	return r.Recipient, nil
}

// recipientName prefers the organization name and falls back to first and last name.
func recipientName(r *billing.Record) (string, error) {
	rcp, err := recipient(r)
	if err != nil {
		return "", err
	}

	if name := strings.TrimSpace(rcp.OrganizationName); name != "" {
		return name, nil
	}

	return present(FieldRecipientName, strings.TrimSpace(rcp.FirstName)+" "+strings.TrimSpace(rcp.LastName))
}

func address(r *billing.Record) (*billing.Address, error) {
	rcp, err := recipient(r)
	if err != nil {
		return nil, err
	}

	if rcp.Address == nil {
		return &billing.Address{}, nil
	}

	return rcp.Address, nil
}

func careOf(r *billing.Record) string {
	if r.Recipient == nil || r.Recipient.Address == nil {
		return ""
	}

	return r.Recipient.Address.CareOf
}

func street(r *billing.Record) (string, error) {
	a, err := address(r)
	if err != nil {
		return "", err
	}

	return present(FieldStreet, a.Street)
}

func postalCodeAndCity(r *billing.Record) (string, error) {
	a, err := address(r)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(a.PostalCode) == "" || strings.TrimSpace(a.City) == "" {
		return "", missing(FieldPostalCodeAndCity)
	}

	return strings.TrimSpace(a.PostalCode) + " " + strings.TrimSpace(a.City), nil
}

// counterpart is taken from the first account information block of the invoice.
func counterpart(r *billing.Record) (string, error) {
	for _, row := range r.Invoice.Rows {
		if len(row.AccountInformation) > 0 {
			return present(FieldCounterpart, row.AccountInformation[0].Counterpart)
		}
	}

	return "", missing(FieldCounterpart)
}

func customerReference(r *billing.Record) (string, error) {
	return present(FieldCustomerReference, r.Invoice.CustomerReference)
}

func ourReference(r *billing.Record) (string, error) {
	return present(FieldOurReference, r.Invoice.OurReference)
}

func customerID(r *billing.Record) (string, error) {
	return present(FieldCustomerID, r.Invoice.CustomerID)
}

func invoiceDescription(r *billing.Record) (string, error) {
	return present(FieldInvoiceDescription, r.Invoice.Description)
}

func dueDate(r *billing.Record) (string, error) {
	return date(FieldDueDate, r.Invoice.DueDate)
}

func invoiceDate(r *billing.Record) (string, error) {
	return date(FieldInvoiceDate, r.Invoice.Date)
}

func rows(r *billing.Record) ([]billing.InvoiceRow, error) {
	if len(r.Invoice.Rows) == 0 {
		return nil, missing(FieldInvoiceRows)
	}

	return r.Invoice.Rows, nil
}

func rowDescription(row billing.InvoiceRow) (string, error) {
	d, _ := row.FirstDescription(billing.DescriptionStandard)

	return present(FieldRowDescription, d)
}

func vatCode(row billing.InvoiceRow) (string, error) {
	return present(FieldVATCode, row.VATCode)
}

// accountLine is one account information block together with the row it belongs to.
type accountLine struct {
	info billing.AccountInformation
	row  billing.InvoiceRow
}

func accountLines(row billing.InvoiceRow) []accountLine {
	lines := make([]accountLine, 0, len(row.AccountInformation))
	for _, a := range row.AccountInformation {
		lines = append(lines, accountLine{info: a, row: row})
	}

	return lines
}

// singleAccountLine returns the one block an internal row must carry.
func singleAccountLine(row billing.InvoiceRow) (accountLine, error) {
	switch len(row.AccountInformation) {
	case 0:
		return accountLine{}, missing(FieldAccountInformation)
	case 1:
		return accountLine{info: row.AccountInformation[0], row: row}, nil
	default:
		return accountLine{}, fmt.Errorf("invoice row has %d account information blocks, exactly one allowed", len(row.AccountInformation))
	}
}

func (l accountLine) costCenter() (string, error) {
	return present(FieldCostCenter, l.info.CostCenter)
}

func (l accountLine) subaccount() (string, error) {
	return present(FieldSubaccount, l.info.Subaccount)
}

func (l accountLine) department() (string, error) {
	return present(FieldDepartment, l.info.Department)
}

func (l accountLine) counterpart() (string, error) {
	return present(FieldCounterpart, l.info.Counterpart)
}

// amount is the block's own amount. A block without one carries the whole row total,
// which is only unambiguous when it is the row's only block.
func (l accountLine) amount() (decimal.Decimal, error) {
	if l.info.Amount != nil {
		return *l.info.Amount, nil
	}

	if len(l.row.AccountInformation) == 1 {
		return l.row.TotalAmount(), nil
	}

	return decimal.Zero, missing(FieldAccountAmount)
}
