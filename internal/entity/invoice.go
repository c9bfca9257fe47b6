package entity

// InvoiceHeader holds the invoice_info value columns. Missing fields are "".
type InvoiceHeader struct {
	InvoiceDate     string `json:"invoice_date"`
	InvoiceID       string `json:"invoice_id"`
	DueDate         string `json:"due_date"`
	TotalAmount     string `json:"total_amount"`
	NetAmount       string `json:"net_amount"`
	TotalTaxAmount  string `json:"total_tax_amount"`
	SupplierEmail   string `json:"supplier_email"`
	SupplierAddress string `json:"supplier_address"`
	Currency        string `json:"currency"`
	SupplierName    string `json:"supplier_name"`
	ReceiverName    string `json:"receiver_name"`
	RemitToAddress  string `json:"remit_to_address"`
}

// HeaderColumns lists the invoice_info value columns in insert order.
var HeaderColumns = []string{
	"invoice_date",
	"invoice_id",
	"due_date",
	"total_amount",
	"net_amount",
	"total_tax_amount",
	"supplier_email",
	"supplier_address",
	"currency",
	"supplier_name",
	"receiver_name",
	"remit_to_address",
}

// Values returns the header values in HeaderColumns order.
func (h InvoiceHeader) Values() []string {
	return []string{
		h.InvoiceDate,
		h.InvoiceID,
		h.DueDate,
		h.TotalAmount,
		h.NetAmount,
		h.TotalTaxAmount,
		h.SupplierEmail,
		h.SupplierAddress,
		h.Currency,
		h.SupplierName,
		h.ReceiverName,
		h.RemitToAddress,
	}
}

// Fields returns pointers to the header fields in HeaderColumns order.
func (h *InvoiceHeader) Fields() []*string {
	return []*string{
		&h.InvoiceDate,
		&h.InvoiceID,
		&h.DueDate,
		&h.TotalAmount,
		&h.NetAmount,
		&h.TotalTaxAmount,
		&h.SupplierEmail,
		&h.SupplierAddress,
		&h.Currency,
		&h.SupplierName,
		&h.ReceiverName,
		&h.RemitToAddress,
	}
}

// Map returns the header keyed by column name.
func (h InvoiceHeader) Map() map[string]string {
	out := make(map[string]string, len(HeaderColumns))
	for i, v := range h.Values() {
		out[HeaderColumns[i]] = v
	}
	return out
}

// LineItem holds the item value columns.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// ItemColumns lists the item value columns in insert order (after invoice_id).
var ItemColumns = []string{"description", "quantity", "unit_price", "total"}

// Values returns the item values in ItemColumns order.
func (li LineItem) Values() []string {
	return []string{li.Description, li.Quantity, li.UnitPrice, li.Total}
}

// Invoice is a persisted header with its items.
type Invoice struct {
	ID     int64         `json:"inv_id"`
	Header InvoiceHeader `json:"header"`
	Items  []LineItem    `json:"items"`
}
