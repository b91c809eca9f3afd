package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Record kinds embedded in generated ledger IDs.
const (
	KindTransaction = "tx"
	KindCustomer    = "cust"
)

// FormatTransactionID returns a ledger item ID like "3-tx-1".
func FormatTransactionID(companyID string, seq int) string {
	return fmt.Sprintf("%s-%s-%d", companyID, KindTransaction, seq)
}

// FormatCustomerID returns a debtor ID like "3-cust-1".
func FormatCustomerID(companyID string, seq int) string {
	return fmt.Sprintf("%s-%s-%d", companyID, KindCustomer, seq)
}

// FormatCustomerName returns a display name like "Customer 4".
func FormatCustomerName(seq int) string {
	return fmt.Sprintf("Customer %d", seq)
}

// FormatCustomerCode returns the ledger customer ref for item i, "CUST-1000" upwards.
func FormatCustomerCode(i int) string {
	return fmt.Sprintf("CUST-%d", 1000+i)
}

// FormatCustomerRef returns a debtor reference like "CUS-3-100".
func FormatCustomerRef(companyID string, i int) string {
	return fmt.Sprintf("CUS-%s-%d", companyID, 100+i)
}

// FormatDocument returns a document number like "DOC-3-2000".
func FormatDocument(companyID string, i int) string {
	return fmt.Sprintf("DOC-%s-%d", companyID, 2000+i)
}

// FormatAddress returns a demo street address.
func FormatAddress(i int) string {
	return fmt.Sprintf("%d High Street, Townsville", 10+i)
}

// ParseRecordID splits "3-tx-1" into company ID, kind and sequence.
// Company IDs may themselves contain dashes.
func ParseRecordID(id string) (companyID, kind string, seq int, err error) {
	last := strings.LastIndex(id, "-")
	if last <= 0 {
		return "", "", 0, fmt.Errorf("invalid record ID format: %q", id)
	}
	seq, err = strconv.Atoi(id[last+1:])
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid sequence in record ID %q: %w", id, err)
	}

	rest := id[:last]
	mid := strings.LastIndex(rest, "-")
	if mid <= 0 {
		return "", "", 0, fmt.Errorf("invalid record ID format: %q", id)
	}
	kind = rest[mid+1:]
	if kind != KindTransaction && kind != KindCustomer {
		return "", "", 0, fmt.Errorf("unknown record kind %q in %q", kind, id)
	}
	return rest[:mid], kind, seq, nil
}

// NextNumeric returns one more than the largest purely numeric ID in ids,
// or 1 when there are none.
func NextNumeric(ids []string) int64 {
	var max int64
	for _, s := range ids {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}
