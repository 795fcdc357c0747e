package records

import (
	"regexp"
	"strings"
)

// Label spellings seen across county assessor and recorder sites.
var (
	parcelLabels = []string{"parcel id", "parcel number", "parcel no", "apn", "account number"}
	ownerLabels  = []string{"owner name", "owner of record", "current owner", "owner"}
	situsLabels  = []string{"situs address", "situs", "property address", "location address"}
	countyLabels = []string{"county"}
)

var (
	dateRe   = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2})\b`)
	amountRe = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
)

// docTypePrefixes are instrument names and codes that lead a transfer
// line on recorder abstracts, longest spellings first.
var docTypePrefixes = []string{
	"WARRANTY DEED", "QUIT CLAIM DEED", "QUITCLAIM DEED", "TRUST DEED",
	"GRANT DEED", "TAX DEED", "SHERIFF'S DEED", "DEED",
	"SWD", "QCD", "WD", "QC", "TD", "GD",
}

// fieldValue finds a labeled field among the text lines. It accepts both
// "Label: value" on one line and a label line followed by a value line,
// the shapes county pages collapse to once markup is stripped.
func fieldValue(lines []string, labels ...string) string {
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}

	for i, line := range lines {
		name, value, hasSep := strings.Cut(line, ":")
		if _, ok := want[normalizeLabel(name)]; !ok {
			continue
		}
		if hasSep {
			if v := strings.TrimSpace(value); v != "" {
				return v
			}
		}
		for _, next := range lines[i+1:] {
			if v := strings.TrimSpace(next); v != "" {
				return v
			}
		}
	}
	return ""
}

func normalizeLabel(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ":#.")
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// scanTransactions reads transfer lines of the form
// "01/02/2019 WD $125,000 SMITH JOHN & MARY": a leading date, then an
// optional instrument type, an optional amount, and the grantee text.
// Lines without a leading date are skipped.
func scanTransactions(lines []string) []Transaction {
	var txs []Transaction
	for _, line := range lines {
		line = strings.TrimSpace(line)
		date := dateRe.FindString(line)
		if date == "" {
			continue
		}
		rest := strings.TrimSpace(line[len(date):])

		var amount string
		if m := amountRe.FindString(rest); m != "" {
			amount = m
			rest = strings.TrimSpace(strings.Replace(rest, m, " ", 1))
		}

		var docType string
		upper := strings.ToUpper(rest)
		for _, prefix := range docTypePrefixes {
			if upper == prefix || strings.HasPrefix(upper, prefix+" ") {
				docType = prefix
				rest = strings.TrimSpace(rest[len(prefix):])
				break
			}
		}

		if rest == "" {
			continue
		}
		txs = append(txs, Transaction{Date: date, DocType: docType, Amount: amount, Grantee: rest})
	}
	return txs
}
