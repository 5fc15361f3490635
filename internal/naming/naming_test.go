package naming_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/naming"
)

var fixedNow = time.Date(2024, 1, 1, 13, 0, 15, 0, time.UTC)

func TestExpand(t *testing.T) {
	type testCase struct {
		name    string
		pattern string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Date", pattern: "FILENAME_{yyyyMMdd}", want: "FILENAME_20240101"},
		{name: "DateTime", pattern: "FILENAME_{yyyyMMddHHmmss}", want: "FILENAME_20240101130015"},
		{name: "NoToken", pattern: "static.txt", want: "static.txt"},
		{name: "TwoTokens", pattern: "F_{yyyy}_{MM}.dat", want: "F_2024_01.dat"},
		{name: "Separators", pattern: "F_{yyyy-MM-dd_HH.mm}", want: "F_2024-01-01_13.00"},
		{name: "QuotedLiteral", pattern: "F_{yyyy'v1'}", want: "F_2024v1"},
		{name: "MonthName", pattern: "{MMM}", want: "Jan"},
		{name: "MillisZero", pattern: "F_{HHmmssSSS}", want: "F_130015000"},
		{name: "Unterminated", pattern: "F_{yyyy", wantErr: true},
		{name: "UnknownLetter", pattern: "F_{yyyyQ}", wantErr: true},
		{name: "EmptyToken", pattern: "F_{}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := naming.Expand(tt.pattern, fixedNow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_Millis(t *testing.T) {
	type testCase struct {
		name    string
		pattern string
		at      time.Time
		want    string
	}

	tests := []testCase{
		{name: "Millis", pattern: "F_{HHmmssSSS}", at: fixedNow.Add(123 * time.Millisecond), want: "F_130015123"},
		{name: "LeadingZeros", pattern: "F_{ss.SSS}", at: fixedNow.Add(7*time.Millisecond + 999*time.Microsecond), want: "F_15.007"},
		{name: "DistinctWithinSecond", pattern: "{yyyyMMddHHmmssSSS}", at: fixedNow.Add(999 * time.Millisecond), want: "20240101130015999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := naming.Expand(tt.pattern, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate_UnterminatedQuote(t *testing.T) {
	_, err := naming.FormatDate("yyyy'abc", fixedNow)
	assert.Error(t, err)
}

func TestResolver_Filename(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configs := invoicefile.NewMockConfigurationRepository(ctrl)
	configs.EXPECT().
		FindByTypeAndCategory(gomock.Any(), "EXTERNAL", "CUSTOMER_INVOICE").
		Return(&invoicefile.Configuration{FilenamePattern: "Faktura_{yyyyMMdd}"}, nil)
	configs.EXPECT().
		FindByCreatorName(gomock.Any(), "MexInvoiceCreator").
		Return(&invoicefile.Configuration{FilenamePattern: "MEX_{yyyyMMddHHmmss}"}, nil)

	r := naming.NewResolver(invoicefile.NewService(nil, configs), naming.FixedClock(fixedNow))

	name, err := r.Filename(context.Background(), "EXTERNAL", "CUSTOMER_INVOICE")
	require.NoError(t, err)
	assert.Equal(t, "Faktura_20240101", name)

	name, err = r.FilenameForCreator(context.Background(), "MexInvoiceCreator")
	require.NoError(t, err)
	assert.Equal(t, "MEX_20240101130015", name)

	name, err = r.FilenameFor(&invoicefile.Configuration{FilenamePattern: "ISY_{yyyyMMdd}"})
	require.NoError(t, err)
	assert.Equal(t, "ISY_20240101", name)

	_, err = r.FilenameFor(nil)
	require.ErrorIs(t, err, invoicefile.ErrConfigurationMissing)
}

func TestResolver_MissingConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	configs := invoicefile.NewMockConfigurationRepository(ctrl)
	configs.EXPECT().
		FindByTypeAndCategory(gomock.Any(), "INTERNAL", "UNKNOWN").
		Return(nil, invoicefile.ErrNotFound)

	r := naming.NewResolver(invoicefile.NewService(nil, configs), naming.FixedClock(fixedNow))

	_, err := r.Filename(context.Background(), "INTERNAL", "UNKNOWN")
	require.ErrorIs(t, err, invoicefile.ErrConfigurationMissing)
}
