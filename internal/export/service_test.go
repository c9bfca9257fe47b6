package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
	"github.com/joseph-ayodele/invoice-tracker/internal/repository"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExportInvoicesXLSX(t *testing.T) {
	ctx := context.Background()
	logger := quietLogger()
	store, err := repository.OpenInMemory(ctx, logger)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(store, logger) })

	repo := repository.NewInvoiceRepository(store, logger)
	require.NoError(t, repo.CreateTables(ctx))

	id1, err := repo.Persist(ctx, entity.InvoiceHeader{InvoiceID: "INV-1", Currency: "EUR"}, []entity.LineItem{
		{Description: "Widget", Quantity: "2", UnitPrice: "5", Total: "10"},
		{Description: "Bolt", Quantity: "1", UnitPrice: "1", Total: "1"},
	})
	require.NoError(t, err)
	id2, err := repo.Persist(ctx, entity.InvoiceHeader{InvoiceID: "INV-2"}, nil)
	require.NoError(t, err)

	data, err := NewService(repo, logger).ExportInvoicesXLSX(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{InvoiceSheet, ItemSheet}, f.GetSheetList())

	invRows, err := f.GetRows(InvoiceSheet)
	require.NoError(t, err)
	require.Len(t, invRows, 3)
	assert.Equal(t, "inv_id", invRows[0][0])
	assert.Equal(t, "remit_to_address", invRows[0][12])
	require.GreaterOrEqual(t, len(invRows[1]), 10)
	assert.Equal(t, itoa(id1), invRows[1][0])
	assert.Equal(t, "INV-1", invRows[1][2])
	assert.Equal(t, "EUR", invRows[1][9])
	require.GreaterOrEqual(t, len(invRows[2]), 3)
	assert.Equal(t, itoa(id2), invRows[2][0])
	assert.Equal(t, "INV-2", invRows[2][2])

	itemRows, err := f.GetRows(ItemSheet)
	require.NoError(t, err)
	require.Len(t, itemRows, 3)
	assert.Equal(t, []string{"invoice_id", "line", "description", "quantity", "unit_price", "total"}, itemRows[0])
	assert.Equal(t, []string{itoa(id1), "1", "Widget", "2", "5", "10"}, itemRows[1])
	assert.Equal(t, []string{itoa(id1), "2", "Bolt", "1", "1", "1"}, itemRows[2])
}

type failingRepo struct{ repository.InvoiceRepository }

func (failingRepo) List(context.Context) ([]*entity.Invoice, error) {
	return nil, errors.New("db down")
}

func TestExportInvoicesXLSXListError(t *testing.T) {
	_, err := NewService(failingRepo{}, quietLogger()).ExportInvoicesXLSX(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func itoa(n int64) string {
	return fmt.Sprint(n)
}
