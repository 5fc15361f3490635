package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("billing record not found")
	ErrInvalidTransition = errors.New("invalid billing record status transition")
)

// Type is the downstream ledger a record is destined for.
type Type string

const (
	TypeInternal Type = "INTERNAL"
	TypeExternal Type = "EXTERNAL"
)

// Status represents the lifecycle state of a billing record.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusApproved  Status = "APPROVED"
	StatusInvoiced  Status = "INVOICED"
	StatusRejected  Status = "REJECTED"
	StatusCertified Status = "CERTIFIED"
)

var transitions = map[Status][]Status{
	StatusNew:      {StatusApproved},
	StatusApproved: {StatusInvoiced, StatusRejected},
}

// CanTransitionTo reports whether a record may move from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// DescriptionKind separates the row description shown on the invoice row from the
// detailed lines printed beneath it.
type DescriptionKind string

const (
	DescriptionStandard DescriptionKind = "STANDARD"
	DescriptionDetailed DescriptionKind = "DETAILED"
)

// Record is an invoiceable billing record.
type Record struct {
	ID             uuid.UUID
	MunicipalityID string
	Category       string
	Type           Type
	Status         Status
	Approved       *time.Time
	ApprovedBy     string
	Recipient      *Recipient
	Invoice        Invoice
	Created        time.Time
	Modified       *time.Time
}

type Recipient struct {
	PartyID          string   `json:"partyId,omitempty"`
	LegalID          string   `json:"legalId,omitempty"`
	OrganizationName string   `json:"organizationName,omitempty"`
	FirstName        string   `json:"firstName,omitempty"`
	LastName         string   `json:"lastName,omitempty"`
	UserID           string   `json:"userId,omitempty"`
	Address          *Address `json:"address,omitempty"`
}

type Address struct {
	CareOf     string `json:"careOf,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
}

type Invoice struct {
	CustomerID        string       `json:"customerId,omitempty"`
	Description       string       `json:"description,omitempty"`
	OurReference      string       `json:"ourReference,omitempty"`
	CustomerReference string       `json:"customerReference,omitempty"`
	ReferenceID       string       `json:"referenceId,omitempty"`
	Date              *time.Time   `json:"date,omitempty"`
	DueDate           *time.Time   `json:"dueDate,omitempty"`
	Rows              []InvoiceRow `json:"invoiceRows,omitempty"`
}

// TotalAmount sums the row totals.
func (i Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, r := range i.Rows {
		total = total.Add(r.TotalAmount())
	}

	return total
}

type InvoiceRow struct {
	Descriptions       []Description        `json:"descriptions,omitempty"`
	VATCode            string               `json:"vatCode,omitempty"`
	CostPerUnit        decimal.Decimal      `json:"costPerUnit"`
	Quantity           decimal.Decimal      `json:"quantity"`
	AccountInformation []AccountInformation `json:"accountInformation,omitempty"`
}

// TotalAmount is cost per unit times quantity.
func (r InvoiceRow) TotalAmount() decimal.Decimal {
	return r.CostPerUnit.Mul(r.Quantity)
}

// FirstDescription returns the first description of the given kind.
func (r InvoiceRow) FirstDescription(kind DescriptionKind) (string, bool) {
	for _, d := range r.Descriptions {
		if d.Kind == kind {
			return d.Text, true
		}
	}

	return "", false
}

// DescriptionsOf returns all descriptions of kind in order.
func (r InvoiceRow) DescriptionsOf(kind DescriptionKind) []string {
	var out []string

	for _, d := range r.Descriptions {
		if d.Kind == kind {
			out = append(out, d.Text)
		}
	}

	return out
}

type Description struct {
	Kind DescriptionKind `json:"kind"`
	Text string          `json:"text"`
}

type AccountInformation struct {
	CostCenter  string           `json:"costCenter,omitempty"`
	Subaccount  string           `json:"subaccount,omitempty"`
	Department  string           `json:"department,omitempty"`
	Activity    string           `json:"activity,omitempty"`
	Project     string           `json:"project,omitempty"`
	Article     string           `json:"article,omitempty"`
	Counterpart string           `json:"counterpart,omitempty"`
	AccrualKey  string           `json:"accrualKey,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}
