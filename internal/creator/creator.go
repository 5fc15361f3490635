// Package creator encodes approved billing records into the fixed-width files of the
// internal and external ledgers. One InvoiceCreator exists per category; what differs
// between categories is captured by a Strategy.
package creator

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	"github.com/MrJamesThe3rd/billingfiles/internal/fixedwidth"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/naming"
	"github.com/MrJamesThe3rd/billingfiles/internal/party"
)

//go:generate mockgen -source=creator.go -destination=creator_mock.go -package=creator
type Creator interface {
	// Name is the key of the creator's invoice file configuration.
	Name() string
	// Bind returns the creator restricted to the type and category of cfg.
	Bind(cfg *invoicefile.Configuration) (Creator, error)
	ProcessableType() billing.Type
	ProcessableCategory() string
	FileHeader() ([]byte, error)
	InvoiceData(ctx context.Context, r *billing.Record) ([]byte, error)
	FileFooter(records []*billing.Record) ([]byte, error)
}

type LegalIDResolver interface {
	LegalID(ctx context.Context, municipalityID, partyID string) (string, error)
}

type Options struct {
	// Terminator ends every line, already unescaped.
	Terminator string
	LegalIDs   LegalIDResolver
	Clock      naming.Clock
}

// InvoiceCreator is the Creator of one strategy.
type InvoiceCreator struct {
	strategy   Strategy
	category   string
	terminator string
	legalIDs   LegalIDResolver
	clock      naming.Clock
	internal   internalSchema
}

func New(strategy Strategy, opts Options) (*InvoiceCreator, error) {
	if err := strategy.validate(); err != nil {
		return nil, err
	}

	if strategy.Footer && strategy.FooterAmount == "" {
		strategy.FooterAmount = AmountRows
	}

	if opts.Clock == nil {
		opts.Clock = naming.SystemClock{}
	}

	c := &InvoiceCreator{
		strategy:   strategy,
		terminator: opts.Terminator,
		legalIDs:   opts.LegalIDs,
		clock:      opts.Clock,
	}

	if strategy.Channel == billing.TypeInternal {
		format, err := fixedwidth.InternalAmount(strategy.AmountPattern)
		if err != nil {
			return nil, fmt.Errorf("creator %s: %w", strategy.Name, err)
		}

		c.internal = newInternalSchema(format)
	}

	return c, nil
}

// NewAll builds one creator per strategy.
func NewAll(strategies []Strategy, opts Options) ([]Creator, error) {
	creators := make([]Creator, 0, len(strategies))

	for _, s := range strategies {
		c, err := New(s, opts)
		if err != nil {
			return nil, err
		}

		creators = append(creators, c)
	}

	return creators, nil
}

func (c *InvoiceCreator) Name() string { return c.strategy.Name }

func (c *InvoiceCreator) Strategy() Strategy { return c.strategy }

func (c *InvoiceCreator) Bind(cfg *invoicefile.Configuration) (Creator, error) {
	if cfg == nil {
		return nil, &invoicefile.MissingConfigurationError{CreatorName: c.strategy.Name}
	}

	if billing.Type(cfg.Type) != c.strategy.Channel {
		return nil, fmt.Errorf("creator %s writes %s files but is configured for %s", c.strategy.Name, c.strategy.Channel, cfg.Type)
	}

	bound := *c
	bound.category = cfg.CategoryTag

	return &bound, nil
}

func (c *InvoiceCreator) ProcessableType() billing.Type { return c.strategy.Channel }

// ProcessableCategory is empty until the creator is bound.
func (c *InvoiceCreator) ProcessableCategory() string { return c.category }

func (c *InvoiceCreator) FileHeader() ([]byte, error) {
	if c.strategy.Channel != billing.TypeExternal {
		return nil, nil
	}

	buf := fixedwidth.NewBuffer(c.terminator)

	err := fixedwidth.Append(buf, external.header, externalHeader{
		system:  c.strategy.GeneratingSystem,
		created: c.clock.Now(),
		tag:     c.strategy.FileTag,
	})
	if err != nil {
		return nil, fmt.Errorf("writing file header: %w", err)
	}

	return buf.Bytes(), nil
}

func (c *InvoiceCreator) InvoiceData(ctx context.Context, r *billing.Record) ([]byte, error) {
	if c.strategy.Channel == billing.TypeExternal {
		return c.externalData(ctx, r)
	}

	return c.internalData(r)
}

func (c *InvoiceCreator) externalData(ctx context.Context, r *billing.Record) ([]byte, error) {
	legalID, err := c.legalID(ctx, r)
	if err != nil {
		return nil, err
	}

	invoiceRows, err := rows(r)
	if err != nil {
		return nil, err
	}

	buf := fixedwidth.NewBuffer(c.terminator)
	v := externalInvoice{record: r, legalID: legalID}

	if err := fixedwidth.Append(buf, external.customer, v); err != nil {
		return nil, err
	}

	if err := fixedwidth.Append(buf, external.invoice, v); err != nil {
		return nil, err
	}

	for _, row := range invoiceRows {
		if err := fixedwidth.Append(buf, external.row, row); err != nil {
			return nil, err
		}

		for _, d := range row.DescriptionsOf(billing.DescriptionDetailed) {
			if err := fixedwidth.Append(buf, external.detail, d); err != nil {
				return nil, err
			}
		}

		for _, line := range accountLines(row) {
			if err := fixedwidth.Append(buf, external.account, line); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

func (c *InvoiceCreator) internalData(r *billing.Record) ([]byte, error) {
	invoiceRows, err := rows(r)
	if err != nil {
		return nil, err
	}

	buf := fixedwidth.NewBuffer(c.terminator)

	if err := fixedwidth.Append(buf, c.internal.invoice, r); err != nil {
		return nil, err
	}

	if err := fixedwidth.Append(buf, c.internal.description, r); err != nil {
		return nil, err
	}

	for _, row := range invoiceRows {
		line, err := singleAccountLine(row)
		if err != nil {
			return nil, err
		}

		if err := fixedwidth.Append(buf, c.internal.row, row); err != nil {
			return nil, err
		}

		if err := fixedwidth.Append(buf, c.internal.account, line); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// legalID uses the recipient's own legal id and otherwise looks up its party id.
func (c *InvoiceCreator) legalID(ctx context.Context, r *billing.Record) (string, error) {
	rcp, err := recipient(r)
	if err != nil {
		return "", err
	}

	if rcp.LegalID != "" {
		return rcp.LegalID, nil
	}

	if rcp.PartyID == "" || c.legalIDs == nil {
		return "", missing(FieldLegalID)
	}

	id, err := c.legalIDs.LegalID(ctx, r.MunicipalityID, rcp.PartyID)
	if errors.Is(err, party.ErrNotFound) || (err == nil && id == "") {
		return "", missing(FieldLegalID)
	}

	if err != nil {
		return "", fmt.Errorf("resolving legal id: %w", err)
	}

	return id, nil
}

// FileFooter totals records. Strategies without a footer return nothing.
func (c *InvoiceCreator) FileFooter(records []*billing.Record) ([]byte, error) {
	if !c.strategy.Footer {
		return nil, nil
	}

	total, err := c.footerAmount(records)
	if err != nil {
		return nil, fmt.Errorf("computing footer amount: %w", err)
	}

	buf := fixedwidth.NewBuffer(c.terminator)

	footer := external.footer
	if c.strategy.Channel == billing.TypeInternal {
		footer = c.internal.footer
	}

	if err := fixedwidth.Append(buf, footer, total); err != nil {
		return nil, fmt.Errorf("writing file footer: %w", err)
	}

	return buf.Bytes(), nil
}

func (c *InvoiceCreator) footerAmount(records []*billing.Record) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, r := range records {
		if c.strategy.FooterAmount != AmountAccounts {
			total = total.Add(r.Invoice.TotalAmount())
			continue
		}

		for _, row := range r.Invoice.Rows {
			for _, line := range accountLines(row) {
				amount, err := line.amount()
				if err != nil {
					return decimal.Zero, fmt.Errorf("record %s: %w", r.ID, err)
				}

				total = total.Add(amount)
			}
		}
	}

	return total, nil
}
