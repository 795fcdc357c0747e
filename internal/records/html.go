package records

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
)

// ExtractHTML reduces a county assessor detail page to a Record. The
// document's charset is detected from its own declarations, so legacy
// windows-1252 pages decode correctly before parsing.
func ExtractHTML(r io.Reader) (*Record, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	lines := textLines(doc)
	rec := &Record{
		ParcelID:  fieldValue(lines, parcelLabels...),
		Situs:     fieldValue(lines, situsLabels...),
		County:    fieldValue(lines, countyLabels...),
		OwnerName: fieldValue(lines, ownerLabels...),
	}

	// Structured sale tables first; plain transfer lines as fallback.
	rec.Transactions = granteeTableRows(doc)
	if len(rec.Transactions) == 0 {
		rec.Transactions = scanTransactions(lines)
	}

	if rec.ParcelID == "" {
		return nil, fmt.Errorf("page has no parcel id: %w", internalerr.ErrInvalidInput)
	}
	return rec, nil
}

// ExtractHTMLFile extracts a Record from an HTML file on disk
func ExtractHTMLFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := ExtractHTML(f)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	rec.SourcePath = path
	return rec, nil
}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "tr": {}, "td": {}, "th": {}, "li": {},
	"table": {}, "ul": {}, "ol": {}, "section": {}, "header": {}, "footer": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "head": {}, "noscript": {},
}

// textLines flattens the document into trimmed text lines, breaking at
// block elements so label/value table cells land on adjacent lines.
func textLines(doc *html.Node) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			lines = append(lines, s)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skipTags[n.Data]; skip {
				return
			}
			if _, block := blockTags[n.Data]; block {
				flush()
			}
		}
		if n.Type == html.TextNode {
			current.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			if _, block := blockTags[n.Data]; block {
				flush()
			}
		}
	}
	walk(doc)
	flush()
	return lines
}

// granteeColumns maps transfer-table header cells to column indexes
type granteeColumns struct {
	date    int
	docType int
	amount  int
	grantee int
}

// granteeTableRows pulls transactions out of any table whose header row
// names a grantee column
func granteeTableRows(doc *html.Node) []Transaction {
	var txs []Transaction
	for _, table := range findTables(doc) {
		rows := tableRows(table)
		if len(rows) < 2 {
			continue
		}
		cols := headerColumns(rows[0])
		if cols.grantee < 0 {
			continue
		}
		for _, cells := range rows[1:] {
			tx := Transaction{
				Date:    cellAt(cells, cols.date),
				DocType: cellAt(cells, cols.docType),
				Amount:  cellAt(cells, cols.amount),
				Grantee: cellAt(cells, cols.grantee),
			}
			if tx.Grantee == "" {
				continue
			}
			txs = append(txs, tx)
		}
	}
	return txs
}

func headerColumns(header []string) granteeColumns {
	cols := granteeColumns{date: -1, docType: -1, amount: -1, grantee: -1}
	for i, cell := range header {
		lower := strings.ToLower(cell)
		switch {
		case strings.Contains(lower, "grantee") || strings.Contains(lower, "buyer"):
			cols.grantee = i
		case strings.Contains(lower, "date"):
			cols.date = i
		case strings.Contains(lower, "price") || strings.Contains(lower, "amount") || strings.Contains(lower, "consideration"):
			cols.amount = i
		case strings.Contains(lower, "type") || strings.Contains(lower, "instrument") || strings.Contains(lower, "doc"):
			cols.docType = i
		}
	}
	return cols
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func findTables(n *html.Node) []*html.Node {
	var tables []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return tables
}

// tableRows collects the cell texts of each direct row, without
// descending into nested tables
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				if n != table {
					return
				}
			case "tr":
				var cells []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
						cells = append(cells, cellText(c))
					}
				}
				rows = append(rows, cells)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func cellText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}
