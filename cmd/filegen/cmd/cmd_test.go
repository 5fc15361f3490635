package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billingfiles/internal/batch"
	"github.com/MrJamesThe3rd/billingfiles/internal/config"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/notify"
	"github.com/MrJamesThe3rd/billingfiles/internal/transfer"
)

type calls struct {
	municipalityID string
	filter         invoicefile.ListFilter
	closed         bool
}

func fakeServices(t *testing.T, svc *Services) *calls {
	t.Helper()

	c := &calls{}
	original := newServices

	newServices = func(context.Context, *config.Config) (*Services, error) {
		wrapped := *svc
		wrapped.Close = func() error {
			c.closed = true
			return nil
		}

		if svc.CreateFiles != nil {
			wrapped.CreateFiles = func(ctx context.Context, m string) (*batch.Result, error) {
				c.municipalityID = m
				return svc.CreateFiles(ctx, m)
			}
		}

		if svc.Transfer != nil {
			wrapped.Transfer = func(ctx context.Context, m string) (*transfer.Result, error) {
				c.municipalityID = m
				return svc.Transfer(ctx, m)
			}
		}

		if svc.ListFiles != nil {
			wrapped.ListFiles = func(ctx context.Context, f invoicefile.ListFilter) ([]*invoicefile.File, error) {
				c.filter = f
				return svc.ListFiles(ctx, f)
			}
		}

		return &wrapped, nil
	}

	t.Cleanup(func() { newServices = original })

	return c
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestCreate(t *testing.T) {
	id := uuid.New()

	c := fakeServices(t, &Services{
		CreateFiles: func(context.Context, string) (*batch.Result, error) {
			return &batch.Result{
				Files:  []*invoicefile.File{{Name: "MEX_20240101", Content: []byte("abcd")}},
				Errors: []notify.CreationError{{EntityID: &id, Creator: "MexInvoiceCreator", Message: "due date is not present"}},
			}, nil
		},
	})

	out, err := execute(t, "create", "-m", "2281")
	require.NoError(t, err)

	assert.Equal(t, "2281", c.municipalityID)
	assert.True(t, c.closed)
	assert.Contains(t, out, "Files created: 1")
	assert.Contains(t, out, "MEX_20240101")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "[MexInvoiceCreator] record "+id.String()+": due date is not present")
}

func TestCreate_StructuralFailure(t *testing.T) {
	fakeServices(t, &Services{
		CreateFiles: func(context.Context, string) (*batch.Result, error) {
			return &batch.Result{}, &batch.StructuralError{Creator: "MexInvoiceCreator", Stage: batch.StageNaming, Err: errors.New("taken")}
		},
	})

	out, err := execute(t, "create", "-m", "2281")

	var structural *batch.StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Contains(t, out, "Files created: 0")
}

func TestTransfer(t *testing.T) {
	c := fakeServices(t, &Services{
		Transfer: func(context.Context, string) (*transfer.Result, error) {
			return &transfer.Result{Sent: []string{"A"}, Failed: []string{"B"}}, nil
		},
	})

	out, err := execute(t, "transfer", "--municipality", "1440")
	require.NoError(t, err)

	assert.Equal(t, "1440", c.municipalityID)
	assert.Contains(t, out, "Files sent: 1\n  A\n")
	assert.Contains(t, out, "Files failed: 1\n  B\n")
}

func TestFiles(t *testing.T) {
	sent := time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC)

	c := fakeServices(t, &Services{
		ListFiles: func(context.Context, invoicefile.ListFilter) ([]*invoicefile.File, error) {
			return []*invoicefile.File{
				{ID: uuid.New(), Name: "FAKT_20240101", Type: "CUSTOMER_INVOICE", Status: invoicefile.StatusSendSuccessful, Created: sent.Add(-time.Hour), Sent: &sent},
			}, nil
		},
	})

	out, err := execute(t, "files", "-m", "2281", "--status", "send_successful")
	require.NoError(t, err)

	assert.Equal(t, invoicefile.ListFilter{
		MunicipalityID: "2281",
		Statuses:       []invoicefile.Status{invoicefile.StatusSendSuccessful},
	}, c.filter)
	assert.Contains(t, out, "FAKT_20240101")
	assert.Contains(t, out, "2024-01-02 08:30")
}

func TestFiles_InvalidStatus(t *testing.T) {
	fakeServices(t, &Services{})

	_, err := execute(t, "files", "-m", "2281", "--status", "LOST")
	assert.Error(t, err)
}

func TestWriteContent(t *testing.T) {
	f := &invoicefile.File{Content: []byte("S\xc5str\xf6m\n"), Encoding: "ISO-8859-1"}

	var decoded bytes.Buffer
	require.NoError(t, writeContent(&decoded, f, false))
	assert.Equal(t, "SÅström\n", decoded.String())

	var raw bytes.Buffer
	require.NoError(t, writeContent(&raw, f, true))
	assert.Equal(t, f.Content, raw.Bytes())
}
