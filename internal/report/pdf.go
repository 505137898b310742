package report

import (
	"errors"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/iwvelando/invoice-roi/pkg/constants"
)

// RenderPDF lays out the report entries as a single-page PDF: a centered
// title, the scenario line in bold and one line per remaining entry.
func RenderPDF(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New("report has no entries")
	}

	cfg := config.NewBuilder().Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, constants.ReportTitle, props.Text{
			Family: fontfamily.Helvetica,
			Size:   16,
			Style:  fontstyle.Bold,
			Align:  align.Center,
		}),
	)

	m.AddRow(15,
		text.NewCol(12, entries[0].String(), props.Text{
			Family: fontfamily.Helvetica,
			Size:   12,
			Style:  fontstyle.Bold,
			Top:    5,
		}),
	)

	for _, entry := range entries[1:] {
		m.AddRow(8,
			text.NewCol(12, entry.String(), props.Text{Family: fontfamily.Helvetica, Size: 12}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report PDF: %w", err)
	}
	return doc.GetBytes(), nil
}
