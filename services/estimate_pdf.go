package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateEstimatePDF renders a computed estimate as a one-page proposal
// document and returns the raw PDF bytes.
func GenerateEstimatePDF(data EstimateExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addEstimateTableHeader(m)
	for _, line := range data.Lines {
		addEstimateRow(m, line)
	}
	addEstimateTotal(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate estimate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addEstimateHeader(m core.Maroto, data EstimateExport) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	subtitle := props.Text{
		Size:  9,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	left := subtitle
	left.Align = align.Left
	right := subtitle
	right.Align = align.Right

	preparedFor := ""
	if data.PreparedFor != "" {
		preparedFor = fmt.Sprintf("Prepared for: %s", data.PreparedFor)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New(preparedFor, left)),
			col.New(6).Add(text.New(fmt.Sprintf("Date: %s", data.Date), right)),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

func addEstimateTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quantity", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Cost", headerText)).WithStyle(&headerCell),
		),
	)
}

func addEstimateRow(m core.Maroto, line LineItem) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(line.Label, leftText)),
			col.New(2).Add(text.New(FormatQuantity(line.Quantity), rightText)),
			col.New(2).Add(text.New(line.Unit, baseText)),
			col.New(2).Add(text.New(FormatUSD(line.Cost), rightText)),
		),
	)
}

func addEstimateTotal(m core.Maroto, data EstimateExport) {
	m.AddRows(row.New(3))

	totalText := props.Text{
		Size:  10,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(9).Add(
			col.New(10).Add(text.New("Total:", totalText)),
			col.New(2).Add(text.New(FormatUSD(data.Total), totalText)),
		),
	)
}
