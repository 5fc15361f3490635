package creator

import (
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by every MissingFieldError.
var ErrMissingField = errors.New("mandatory field is missing")

// Field names a mandatory datum of a billing record.
type Field string

const (
	FieldLegalID            Field = "legal id"
	FieldRecipient          Field = "recipient"
	FieldRecipientName      Field = "recipient name"
	FieldStreet             Field = "street address"
	FieldPostalCodeAndCity  Field = "postal code and city"
	FieldCounterpart        Field = "counterpart"
	FieldCustomerReference  Field = "customer reference"
	FieldOurReference       Field = "our reference"
	FieldCustomerID         Field = "customer id"
	FieldDueDate            Field = "due date"
	FieldInvoiceDate        Field = "invoice date"
	FieldInvoiceDescription Field = "invoice description"
	FieldRowDescription     Field = "row description"
	FieldVATCode            Field = "vat code"
	FieldAccountInformation Field = "account information"
	FieldCostCenter         Field = "cost center"
	FieldSubaccount         Field = "subaccount"
	FieldDepartment         Field = "department"
	FieldAccountAmount      Field = "account amount"
	FieldInvoiceRows        Field = "invoice rows"
)

var messages = map[Field]string{
	FieldLegalID:            "legal id is not present",
	FieldRecipient:          "recipient is not present",
	FieldRecipientName:      "recipient name is not present",
	FieldStreet:             "recipient street address is not present",
	FieldPostalCodeAndCity:  "recipient postal code and city is not present",
	FieldCounterpart:        "counterpart is not present",
	FieldCustomerReference:  "customer reference is not present",
	FieldOurReference:       "our reference is not present",
	FieldCustomerID:         "customer id is not present",
	FieldDueDate:            "due date is not present",
	FieldInvoiceDate:        "invoice date is not present",
	FieldInvoiceDescription: "invoice description is not present",
	FieldRowDescription:     "invoice row description is not present",
	FieldVATCode:            "vat code is not present",
	FieldAccountInformation: "account information is not present",
	FieldCostCenter:         "cost center is not present",
	FieldSubaccount:         "subaccount is not present",
	FieldDepartment:         "department is not present",
	FieldAccountAmount:      "account amount is not present",
	FieldInvoiceRows:        "invoice rows are not present",
}

// Message returns the catalog message of f.
func (f Field) Message() string {
	if m, ok := messages[f]; ok {
		return m
	}

	return fmt.Sprintf("%s is not present", string(f))
}

// MissingFieldError reports a mandatory datum absent from one billing record.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string { return e.Field.Message() }

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

func missing(f Field) error {
	return &MissingFieldError{Field: f}
}
