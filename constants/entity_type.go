package constants

// EntityType is a semantic tag emitted by the invoice classifier.
type EntityType string

const (
	InvoiceDate     EntityType = "invoice_date"
	InvoiceID       EntityType = "invoice_id"
	DueDate         EntityType = "due_date"
	TotalAmount     EntityType = "total_amount"
	NetAmount       EntityType = "net_amount"
	TotalTaxAmount  EntityType = "total_tax_amount"
	SupplierEmail   EntityType = "supplier_email"
	SupplierAddress EntityType = "supplier_address"
	Currency        EntityType = "currency"
	SupplierName    EntityType = "supplier_name"
	ReceiverName    EntityType = "receiver_name"
	RemitToAddress  EntityType = "remit_to_address"

	LineItem            EntityType = "line_item"
	LineItemDescription EntityType = "line_item/description"
	LineItemQuantity    EntityType = "line_item/quantity"
	LineItemUnitPrice   EntityType = "line_item/unit_price"
	LineItemAmount      EntityType = "line_item/amount"
)

// headerTypes is ordered to match the invoice_info value columns.
var headerTypes = []EntityType{
	InvoiceDate,
	InvoiceID,
	DueDate,
	TotalAmount,
	NetAmount,
	TotalTaxAmount,
	SupplierEmail,
	SupplierAddress,
	Currency,
	SupplierName,
	ReceiverName,
	RemitToAddress,
}

// HeaderTypes returns the recognized header types in column order.
func HeaderTypes() []EntityType {
	out := make([]EntityType, len(headerTypes))
	copy(out, headerTypes)
	return out
}

// IsHeaderType reports whether t maps onto an invoice_info column.
func IsHeaderType(t string) bool {
	for _, h := range headerTypes {
		if string(h) == t {
			return true
		}
	}
	return false
}
