package creator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	"github.com/MrJamesThe3rd/billingfiles/internal/creator"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/naming"
	"github.com/MrJamesThe3rd/billingfiles/internal/party"
)

var now = time.Date(2024, 1, 1, 13, 0, 15, 0, time.UTC)

func left(s string, n int) string  { return s + strings.Repeat(" ", n-len([]rune(s))) }
func right(s string, n int) string { return strings.Repeat(" ", n-len([]rune(s))) + s }

func strategy(t *testing.T, name string) creator.Strategy {
	t.Helper()

	strategies, err := creator.LoadStrategies("")
	require.NoError(t, err)

	for _, s := range strategies {
		if s.Name == name {
			return s
		}
	}

	t.Fatalf("no strategy %s", name)

	return creator.Strategy{}
}

func newCreator(t *testing.T, name string, legalIDs creator.LegalIDResolver) *creator.InvoiceCreator {
	t.Helper()

	c, err := creator.New(strategy(t, name), creator.Options{
		Terminator: "\n",
		LegalIDs:   legalIDs,
		Clock:      naming.FixedClock(now),
	})
	require.NoError(t, err)

	return c
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func internalRecord() *billing.Record {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	return &billing.Record{
		ID:             uuid.New(),
		MunicipalityID: "2281",
		Category:       "MEX_INVOICE",
		Type:           billing.TypeInternal,
		Status:         billing.StatusApproved,
		Invoice: billing.Invoice{
			CustomerID:        "16",
			Description:       "Lokalhyra januari",
			OurReference:      "Kim Svensson",
			CustomerReference: "4321",
			Date:              &date,
			DueDate:           &due,
			Rows: []billing.InvoiceRow{{
				Descriptions: []billing.Description{{Kind: billing.DescriptionStandard, Text: "Hyra"}},
				CostPerUnit:  decimal.NewFromInt(25),
				Quantity:     decimal.NewFromInt(2),
				AccountInformation: []billing.AccountInformation{{
					CostCenter:  "15800100",
					Subaccount:  "936300",
					Department:  "920360",
					Activity:    "5247",
					Counterpart: "86000000",
				}},
			}},
		},
	}
}

func externalRecord() *billing.Record {
	due := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	return &billing.Record{
		ID:             uuid.New(),
		MunicipalityID: "2281",
		Category:       "CUSTOMER_INVOICE",
		Type:           billing.TypeExternal,
		Status:         billing.StatusApproved,
		Recipient: &billing.Recipient{
			LegalID:   "197001011234",
			FirstName: "Anna",
			LastName:  "Åström",
			Address: &billing.Address{
				CareOf:     "c/o Berg",
				Street:     "Storgatan 1",
				PostalCode: "851 85",
				City:       "Sundsvall",
			},
		},
		Invoice: billing.Invoice{
			OurReference:      "Kim Svensson",
			CustomerReference: "4321",
			DueDate:           &due,
			Rows: []billing.InvoiceRow{{
				Descriptions: []billing.Description{
					{Kind: billing.DescriptionDetailed, Text: "Period 2024-01"},
					{Kind: billing.DescriptionStandard, Text: "Passerkort"},
					{Kind: billing.DescriptionDetailed, Text: "Kort 17"},
				},
				VATCode:     "25",
				CostPerUnit: decimal.NewFromInt(25),
				Quantity:    decimal.NewFromInt(2),
				AccountInformation: []billing.AccountInformation{
					{CostCenter: "15800100", Subaccount: "936300", Department: "920360", Counterpart: "86000000", Amount: amount(30)},
					{CostCenter: "15800200", Subaccount: "936300", Department: "920360", Counterpart: "86000000", Amount: amount(20)},
				},
			}},
		},
	}
}

func TestLoadStrategies_Builtin(t *testing.T) {
	strategies, err := creator.LoadStrategies("")
	require.NoError(t, err)

	type want struct {
		channel billing.Type
		footer  bool
		source  creator.AmountSource
	}

	got := make(map[string]want, len(strategies))
	for _, s := range strategies {
		got[s.Name] = want{channel: s.Channel, footer: s.Footer, source: s.FooterAmount}
	}

	assert.Equal(t, map[string]want{
		"CustomerInvoiceCreator":         {channel: billing.TypeExternal, footer: true, source: creator.AmountRows},
		"AccessCardInvoiceCreator":       {channel: billing.TypeExternal},
		"IsycaseInvoiceCreator":          {channel: billing.TypeExternal},
		"InternalInvoiceCreator":         {channel: billing.TypeInternal, footer: true, source: creator.AmountRows},
		"MexInvoiceCreator":              {channel: billing.TypeInternal, footer: true, source: creator.AmountRows},
		"SalaryAndPensionInvoiceCreator": {channel: billing.TypeInternal, footer: true, source: creator.AmountAccounts},
	}, got)
}

func TestParseStrategies_Invalid(t *testing.T) {
	data := []byte(`
creators:
  - name: A
    channel: POSTAL
  - name: B
    channel: INTERNAL
  - name: B
    channel: EXTERNAL
  - name: C
    channel: INTERNAL
    footer: true
    footerAmount: vat
`)

	_, err := creator.ParseStrategies(data)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)

	_, err = creator.ParseStrategies([]byte("creators: []"))
	assert.Error(t, err)
}

func TestInvoiceCreator_Bind(t *testing.T) {
	c := newCreator(t, "MexInvoiceCreator", nil)
	assert.Empty(t, c.ProcessableCategory())

	bound, err := c.Bind(&invoicefile.Configuration{Type: "INTERNAL", CategoryTag: "MEX_INVOICE", CreatorName: c.Name()})
	require.NoError(t, err)
	assert.Equal(t, billing.TypeInternal, bound.ProcessableType())
	assert.Equal(t, "MEX_INVOICE", bound.ProcessableCategory())
	assert.Empty(t, c.ProcessableCategory(), "binding returns a copy")

	_, err = c.Bind(&invoicefile.Configuration{Type: "EXTERNAL", CategoryTag: "MEX_INVOICE"})
	assert.Error(t, err)

	_, err = c.Bind(nil)
	require.ErrorIs(t, err, invoicefile.ErrConfigurationMissing)
}

func TestInvoiceCreator_FileHeader(t *testing.T) {
	header, err := newCreator(t, "CustomerInvoiceCreator", nil).FileHeader()
	require.NoError(t, err)
	assert.Equal(t, "!"+left("BILLING", 10)+"20240101"+left("CUSTOMER_INVOICE", 20)+"\n", string(header))

	header, err = newCreator(t, "InternalInvoiceCreator", nil).FileHeader()
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestInvoiceCreator_InternalInvoiceData(t *testing.T) {
	data, err := newCreator(t, "MexInvoiceCreator", nil).InvoiceData(context.Background(), internalRecord())
	require.NoError(t, err)

	want := []string{
		"H" + left("16", 16) + "20240101" + "20240131" + left("4321", 30) + left("Kim Svensson", 30),
		"B" + left("Lokalhyra januari", 60),
		"R" + left("Hyra", 30) + right("25.00", 15) + right("2.00", 10) + right("50.00", 15),
		"K" + left("15800100", 10) + left("936300", 10) + left("920360", 10) + left("5247", 10) +
			left("", 10) + left("", 10) + left("86000000", 10) + left("", 10) + right("50.00", 15),
	}

	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestInvoiceCreator_ExternalInvoiceData(t *testing.T) {
	data, err := newCreator(t, "CustomerInvoiceCreator", nil).InvoiceData(context.Background(), externalRecord())
	require.NoError(t, err)

	want := []string{
		"S" + left("197001011234", 16) + left("Anna Åström", 40) + left("c/o Berg", 30) +
			left("Storgatan 1", 35) + left("851 85 Sundsvall", 35) + left("86000000", 16),
		"H" + left("197001011234", 16) + "20240131" + left("4321", 30) + left("Kim Svensson", 30),
		"R" + left("Passerkort", 30) + "+00000000002500" + "+00000000000200" + "+00000000005000" + left("25", 4),
		"U" + left("Period 2024-01", 60),
		"U" + left("Kort 17", 60),
		"K" + left("15800100", 10) + left("936300", 10) + left("920360", 10) + left("", 30) +
			left("86000000", 10) + left("", 10) + "+00000000003000",
		"K" + left("15800200", 10) + left("936300", 10) + left("920360", 10) + left("", 30) +
			left("86000000", 10) + left("", 10) + "+00000000002000",
	}

	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestInvoiceCreator_MissingFields(t *testing.T) {
	type testCase struct {
		name      string
		creator   string
		record    func() *billing.Record
		mutate    func(r *billing.Record)
		wantField creator.Field
	}

	tests := []testCase{
		{
			name:      "ExternalNoRecipient",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Recipient = nil },
			wantField: creator.FieldRecipient,
		},
		{
			name:      "ExternalNoLegalIDNoPartyID",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Recipient.LegalID = "" },
			wantField: creator.FieldLegalID,
		},
		{
			name:    "ExternalNoName",
			creator: "AccessCardInvoiceCreator",
			record:  externalRecord,
			mutate: func(r *billing.Record) {
				r.Recipient.FirstName = ""
				r.Recipient.LastName = " "
			},
			wantField: creator.FieldRecipientName,
		},
		{
			name:      "ExternalNoStreet",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Recipient.Address.Street = "" },
			wantField: creator.FieldStreet,
		},
		{
			name:      "ExternalNoAddress",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Recipient.Address = nil },
			wantField: creator.FieldStreet,
		},
		{
			name:      "ExternalNoCity",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Recipient.Address.City = "" },
			wantField: creator.FieldPostalCodeAndCity,
		},
		{
			name:      "ExternalNoAccountInformation",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].AccountInformation = nil },
			wantField: creator.FieldCounterpart,
		},
		{
			name:      "ExternalNoCustomerReference",
			creator:   "IsycaseInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.CustomerReference = "" },
			wantField: creator.FieldCustomerReference,
		},
		{
			name:      "ExternalNoVATCode",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].VATCode = "" },
			wantField: creator.FieldVATCode,
		},
		{
			name:      "ExternalNoRowDescription",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].Descriptions = nil },
			wantField: creator.FieldRowDescription,
		},
		{
			name:      "ExternalAmbiguousAccountAmount",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].AccountInformation[1].Amount = nil },
			wantField: creator.FieldAccountAmount,
		},
		{
			name:      "ExternalNoRows",
			creator:   "CustomerInvoiceCreator",
			record:    externalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows = nil },
			wantField: creator.FieldInvoiceRows,
		},
		{
			name:      "InternalNoRows",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows = nil },
			wantField: creator.FieldInvoiceRows,
		},
		{
			name:      "InternalNoCustomerID",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.CustomerID = "" },
			wantField: creator.FieldCustomerID,
		},
		{
			name:      "InternalNoDueDate",
			creator:   "MexInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.DueDate = nil },
			wantField: creator.FieldDueDate,
		},
		{
			name:      "InternalNoInvoiceDate",
			creator:   "MexInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Date = nil },
			wantField: creator.FieldInvoiceDate,
		},
		{
			name:      "InternalNoDescription",
			creator:   "SalaryAndPensionInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Description = "" },
			wantField: creator.FieldInvoiceDescription,
		},
		{
			name:      "InternalNoAccountInformation",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].AccountInformation = nil },
			wantField: creator.FieldAccountInformation,
		},
		{
			name:      "InternalNoCostCenter",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].AccountInformation[0].CostCenter = "" },
			wantField: creator.FieldCostCenter,
		},
		{
			name:      "InternalNoSubaccount",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].AccountInformation[0].Subaccount = "" },
			wantField: creator.FieldSubaccount,
		},
		{
			name:      "InternalNoDepartment",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.Rows[0].AccountInformation[0].Department = "" },
			wantField: creator.FieldDepartment,
		},
		{
			name:      "InternalNoOurReference",
			creator:   "InternalInvoiceCreator",
			record:    internalRecord,
			mutate:    func(r *billing.Record) { r.Invoice.OurReference = "" },
			wantField: creator.FieldOurReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record()
			tt.mutate(r)

			data, err := newCreator(t, tt.creator, nil).InvoiceData(context.Background(), r)
			require.ErrorIs(t, err, creator.ErrMissingField)
			assert.Nil(t, data)

			var mf *creator.MissingFieldError
			require.ErrorAs(t, err, &mf)
			assert.Equal(t, tt.wantField, mf.Field)
			assert.Equal(t, tt.wantField.Message(), err.Error())
		})
	}
}

func TestInvoiceCreator_InternalRowWithTwoAccounts(t *testing.T) {
	r := internalRecord()
	r.Invoice.Rows[0].AccountInformation = append(r.Invoice.Rows[0].AccountInformation, r.Invoice.Rows[0].AccountInformation[0])

	_, err := newCreator(t, "InternalInvoiceCreator", nil).InvoiceData(context.Background(), r)
	require.Error(t, err)
	assert.NotErrorIs(t, err, creator.ErrMissingField)
}

func TestInvoiceCreator_LegalIDLookup(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *creator.MockLegalIDResolver)
		wantID    string
		wantField bool
	}

	tests := []testCase{
		{
			name: "Resolved",
			setupMock: func(m *creator.MockLegalIDResolver) {
				m.EXPECT().LegalID(gomock.Any(), "2281", "party-1").Return("5591628136", nil)
			},
			wantID: "5591628136",
		},
		{
			name: "NotFound",
			setupMock: func(m *creator.MockLegalIDResolver) {
				m.EXPECT().LegalID(gomock.Any(), "2281", "party-1").Return("", party.ErrNotFound)
			},
			wantField: true,
		},
		{
			name: "ServiceDown",
			setupMock: func(m *creator.MockLegalIDResolver) {
				m.EXPECT().LegalID(gomock.Any(), "2281", "party-1").Return("", errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := creator.NewMockLegalIDResolver(ctrl)
			tt.setupMock(resolver)

			r := externalRecord()
			r.Recipient.LegalID = ""
			r.Recipient.PartyID = "party-1"

			data, err := newCreator(t, "CustomerInvoiceCreator", resolver).InvoiceData(context.Background(), r)

			switch {
			case tt.wantID != "":
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(string(data), "S"+left(tt.wantID, 16)))
			case tt.wantField:
				require.ErrorIs(t, err, creator.ErrMissingField)
				assert.EqualError(t, err, "legal id is not present")
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, creator.ErrMissingField)
			}
		})
	}
}

func TestInvoiceCreator_FileFooter(t *testing.T) {
	type testCase struct {
		name    string
		creator string
		records []*billing.Record
		want    string
	}

	salary := internalRecord()
	salary.Invoice.Rows[0].AccountInformation[0].Amount = amount(45)

	tests := []testCase{
		{
			name:    "InternalSingleRecord",
			creator: "MexInvoiceCreator",
			records: []*billing.Record{internalRecord()},
			want:    "T 50.00          \n",
		},
		{
			name:    "InternalTwoRecords",
			creator: "InternalInvoiceCreator",
			records: []*billing.Record{internalRecord(), internalRecord()},
			want:    "T 100.00         \n",
		},
		{
			name:    "AccountsSource",
			creator: "SalaryAndPensionInvoiceCreator",
			records: []*billing.Record{salary, internalRecord()},
			want:    "T 95.00          \n",
		},
		{
			name:    "External",
			creator: "CustomerInvoiceCreator",
			records: []*billing.Record{externalRecord(), externalRecord()},
			want:    "T+00000000010000\n",
		},
		{
			name:    "NoFooter",
			creator: "AccessCardInvoiceCreator",
			records: []*billing.Record{externalRecord()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer, err := newCreator(t, tt.creator, nil).FileFooter(tt.records)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(footer))
		})
	}
}

func TestInvoiceCreator_Terminator(t *testing.T) {
	c, err := creator.New(strategy(t, "MexInvoiceCreator"), creator.Options{Terminator: "\r\n"})
	require.NoError(t, err)

	footer, err := c.FileFooter([]*billing.Record{internalRecord()})
	require.NoError(t, err)
	assert.Equal(t, "T 50.00          \r\n", string(footer))
}

func TestNewAll(t *testing.T) {
	strategies, err := creator.LoadStrategies("")
	require.NoError(t, err)

	creators, err := creator.NewAll(strategies, creator.Options{})
	require.NoError(t, err)
	require.Len(t, creators, len(strategies))

	for i, c := range creators {
		assert.Equal(t, strategies[i].Name, c.Name())
	}
}
