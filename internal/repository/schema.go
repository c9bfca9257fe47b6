package repository

import (
	"context"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
)

const (
	InvoiceTable = "invoice_info"
	ItemTable    = "item"

	invoicePK    = "inv_id"
	itemPK       = "id"
	itemParentFK = "invoice_id"
)

// CreateTables creates invoice_info and item when absent. Existing tables are
// left as they are; no migration is attempted.
func CreateTables(ctx context.Context, store *Store) error {
	for _, t := range []struct {
		name string
		ddl  entsql.Querier
	}{
		{InvoiceTable, invoiceTable(store.Dialect)},
		{ItemTable, itemTable(store.Dialect)},
	} {
		query, args := t.ddl.Query()
		if _, err := store.DB().ExecContext(ctx, query, args...); err != nil {
			return common.PersistenceError(store.Host, t.name, "create table", err)
		}
	}
	return nil
}

func invoiceTable(d string) entsql.Querier {
	return entsql.Dialect(d).Expr(func(b *entsql.Builder) {
		b.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(InvoiceTable).Pad().Wrap(func(b *entsql.Builder) {
			idColumn(b, invoicePK)
			textColumns(b, entity.HeaderColumns)
		})
	})
}

func itemTable(d string) entsql.Querier {
	return entsql.Dialect(d).Expr(func(b *entsql.Builder) {
		b.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(ItemTable).Pad().Wrap(func(b *entsql.Builder) {
			idColumn(b, itemPK)
			b.Comma().Ident(itemParentFK).WriteString(" BIGINT NOT NULL")
			textColumns(b, entity.ItemColumns)
			b.Comma().WriteString("CONSTRAINT ").Ident("item_invoice_id_fkey").
				WriteString(" FOREIGN KEY ").Wrap(func(b *entsql.Builder) { b.Ident(itemParentFK) }).
				WriteString(" REFERENCES ").Ident(InvoiceTable).Wrap(func(b *entsql.Builder) { b.Ident(invoicePK) })
		})
	})
}

func idColumn(b *entsql.Builder, name string) {
	b.Ident(name)
	if b.Dialect() == dialect.Postgres {
		b.WriteString(" BIGSERIAL PRIMARY KEY")
		return
	}
	b.WriteString(" INTEGER PRIMARY KEY AUTOINCREMENT")
}

func textColumns(b *entsql.Builder, cols []string) {
	for _, c := range cols {
		b.Comma().Ident(c).WriteString(" TEXT")
	}
}
