package records

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
)

// ExtractPDF reduces a recorded-document PDF to a Record. Text is read
// row by row so label/value pairs keep their line structure.
func ExtractPDF(path string) (*Record, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			line := strings.TrimSpace(strings.Join(words, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	rec := &Record{
		ParcelID:   fieldValue(lines, parcelLabels...),
		Situs:      fieldValue(lines, situsLabels...),
		County:     fieldValue(lines, countyLabels...),
		OwnerName:  fieldValue(lines, ownerLabels...),
		SourcePath: path,
	}
	rec.Transactions = scanTransactions(lines)

	if rec.ParcelID == "" {
		return nil, fmt.Errorf("%s has no parcel id: %w", path, internalerr.ErrInvalidInput)
	}
	return rec, nil
}
