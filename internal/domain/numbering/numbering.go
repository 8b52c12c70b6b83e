// Package numbering derives human-readable sequential identifiers from the
// last issued number. It is a pure domain service: the repository supplies the
// last number (queried inside the same transaction as the insert, so two
// concurrent writers cannot both see the same predecessor).
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default prefixes.
const (
	BillPrefix  = "BILL"
	OrderPrefix = "PO"

	billSeqWidth  = 4
	orderSeqWidth = 5
)

// NextBillNumber returns the next date-scoped bill number, format
// PREFIX-YYYYMMDD-0001. The sequence resets every calendar day. lastNumber is
// the lexicographically greatest number already issued for prefix+date, or
// empty when none exists.
func NextBillNumber(prefix string, date time.Time, lastNumber string) (string, error) {
	scope := prefix + "-" + date.Format("20060102") + "-"
	seq := nextSeq(lastNumber, scope)
	if err := checkWidth(seq, billSeqWidth); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", scope, billSeqWidth, seq), nil
}

// NextOrderNumber returns the next global purchase-order number, format
// PREFIX-00001. The sequence never resets.
func NextOrderNumber(prefix, lastNumber string) (string, error) {
	scope := prefix + "-"
	seq := nextSeq(lastNumber, scope)
	if err := checkWidth(seq, orderSeqWidth); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", scope, orderSeqWidth, seq), nil
}

// nextSeq parses the trailing numeric suffix of the last issued number and
// increments it. Missing or unparseable numbers restart the sequence at 1.
func nextSeq(lastNumber, scope string) int {
	if lastNumber == "" || !strings.HasPrefix(lastNumber, scope) {
		return 1
	}
	suffix := lastNumber[len(scope):]
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}

// checkWidth fails loudly when the sequence outgrows its zero padding; a wider
// number would no longer sort lexicographically and could collide.
func checkWidth(seq, width int) error {
	max := 1
	for i := 0; i < width; i++ {
		max *= 10
	}
	if seq >= max {
		return fmt.Errorf("numbering: sequence %d exceeds %d-digit field", seq, width)
	}
	return nil
}
