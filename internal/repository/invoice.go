package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
)

type InvoiceRepository interface {
	CreateTables(ctx context.Context) error
	Persist(ctx context.Context, header entity.InvoiceHeader, items []entity.LineItem) (int64, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
	Get(ctx context.Context, id int64) (*entity.Invoice, error)
}

type invoiceRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewInvoiceRepository(store *Store, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{
		store:  store,
		logger: logger,
	}
}

func (r *invoiceRepository) CreateTables(ctx context.Context) error {
	if err := CreateTables(ctx, r.store); err != nil {
		r.logger.Error("failed to create tables", "host", r.store.Host, "error", err)
		return err
	}
	r.logger.Info("tables ready", "tables", []string{InvoiceTable, ItemTable})
	return nil
}

// Persist inserts the header and its items in one transaction and returns the
// generated inv_id. On any error the transaction is rolled back, so no header
// is left behind without the items that were meant to accompany it.
func (r *invoiceRepository) Persist(ctx context.Context, header entity.InvoiceHeader, items []entity.LineItem) (id int64, err error) {
	tx, err := r.store.DB().BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", "host", r.store.Host, "error", err)
		return 0, common.PersistenceError(r.store.Host, InvoiceTable, "begin", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.Error("rollback failed", "host", r.store.Host, "error", rbErr)
		}
	}()

	id, err = r.insertHeader(ctx, tx, header)
	if err != nil {
		r.logger.Error("insert invoice_info failed", "host", r.store.Host, "error", err)
		return 0, common.PersistenceError(r.store.Host, InvoiceTable, "insert", err)
	}
	r.logger.Debug("inserted invoice_info", "inv_id", id)

	for i, item := range items {
		query, args := entsql.Dialect(r.store.Dialect).
			Insert(ItemTable).
			Columns(append([]string{itemParentFK}, entity.ItemColumns...)...).
			Values(append([]any{id}, toAny(item.Values())...)...).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Error("insert item failed", "host", r.store.Host, "inv_id", id, "item", i, "error", err)
			return 0, common.PersistenceError(r.store.Host, ItemTable, fmt.Sprintf("insert row %d", i), err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("commit failed", "host", r.store.Host, "inv_id", id, "error", err)
		return 0, common.PersistenceError(r.store.Host, InvoiceTable, "commit", err)
	}
	committed = true
	r.logger.Info("invoice persisted", "inv_id", id, "items", len(items))
	return id, nil
}

func (r *invoiceRepository) insertHeader(ctx context.Context, tx *sql.Tx, header entity.InvoiceHeader) (int64, error) {
	b := entsql.Dialect(r.store.Dialect).
		Insert(InvoiceTable).
		Columns(entity.HeaderColumns...).
		Values(toAny(header.Values())...)

	if r.store.Dialect == dialect.Postgres {
		var id int64
		query, args := b.Returning(invoicePK).Query()
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query, args := b.Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *invoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	invoices, err := r.selectInvoices(ctx, nil)
	if err != nil {
		r.logger.Error("failed to list invoices", "host", r.store.Host, "error", err)
		return nil, common.PersistenceError(r.store.Host, InvoiceTable, "select", err)
	}
	if err := r.attachItems(ctx, invoices, nil); err != nil {
		r.logger.Error("failed to list items", "host", r.store.Host, "error", err)
		return nil, common.PersistenceError(r.store.Host, ItemTable, "select", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Get(ctx context.Context, id int64) (*entity.Invoice, error) {
	invoices, err := r.selectInvoices(ctx, entsql.EQ(invoicePK, id))
	if err != nil {
		return nil, common.PersistenceError(r.store.Host, InvoiceTable, "select", err)
	}
	if len(invoices) == 0 {
		return nil, fmt.Errorf("invoice %d: %w", id, common.ErrNotFound)
	}
	if err := r.attachItems(ctx, invoices, entsql.EQ(itemParentFK, id)); err != nil {
		return nil, common.PersistenceError(r.store.Host, ItemTable, "select", err)
	}
	return invoices[0], nil
}

func (r *invoiceRepository) selectInvoices(ctx context.Context, where *entsql.Predicate) ([]*entity.Invoice, error) {
	sel := entsql.Dialect(r.store.Dialect).
		Select(append([]string{invoicePK}, entity.HeaderColumns...)...).
		From(entsql.Dialect(r.store.Dialect).Table(InvoiceTable)).
		OrderBy(invoicePK)
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()
	rows, err := r.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv := &entity.Invoice{Items: []entity.LineItem{}}
		cols := make([]sql.NullString, len(entity.HeaderColumns))
		dest := []any{&inv.ID}
		for i := range cols {
			dest = append(dest, &cols[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		fields := inv.Header.Fields()
		for i, c := range cols {
			*fields[i] = c.String
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invoiceRepository) attachItems(ctx context.Context, invoices []*entity.Invoice, where *entsql.Predicate) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Invoice, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
	}

	sel := entsql.Dialect(r.store.Dialect).
		Select(append([]string{itemParentFK}, entity.ItemColumns...)...).
		From(entsql.Dialect(r.store.Dialect).Table(ItemTable)).
		OrderBy(itemParentFK, itemPK)
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()
	rows, err := r.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			parent                      int64
			desc, qty, unitPrice, total sql.NullString
		)
		if err := rows.Scan(&parent, &desc, &qty, &unitPrice, &total); err != nil {
			return err
		}
		if inv, ok := byID[parent]; ok {
			inv.Items = append(inv.Items, entity.LineItem{
				Description: desc.String,
				Quantity:    qty.String,
				UnitPrice:   unitPrice.String,
				Total:       total.String,
			})
		}
	}
	return rows.Err()
}

func toAny(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
