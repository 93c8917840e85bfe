package capture

import (
	"fmt"

	"sidracap/coltab"
)

// Variable is one row of the persisted variables table, reduced to the
// fields the series stage consumes. Read-only input for request building.
type Variable struct {
	// ID is the variable identifier used in the values URL.
	ID string
	// Name is the display name, used only for progress logging.
	Name string
	// Decimals is the presentation decimal count for the /d/ URL segment.
	Decimals string
}

// readVariables loads the variables table written by the metadata stage and
// projects it onto []Variable, preserving row order. The Id column is
// required; rows with an empty Id are skipped.
func readVariables(path string) ([]Variable, error) {
	table, err := coltab.ReadFile(path)
	if err != nil {
		return nil, err
	}

	idCol := table.ColumnIndex("Id")
	if idCol < 0 {
		return nil, fmt.Errorf("variables table has no Id column")
	}
	nameCol := table.ColumnIndex("Nome")
	decimalsCol := table.ColumnIndex("DecimaisApresentacao")

	variables := make([]Variable, 0, table.NumRows())
	for row := 0; row < table.NumRows(); row++ {
		id := table.Cell(row, idCol).Text()
		if id == "" {
			continue
		}
		variables = append(variables, Variable{
			ID:       id,
			Name:     table.Cell(row, nameCol).Text(),
			Decimals: table.Cell(row, decimalsCol).Text(),
		})
	}

	return variables, nil
}

// seriesURL builds the numeric values URL for one variable:
// {base}/values/t/{tableId}/n1/all/v/{id}/p/all/d/v{id}%20{decimals}
func seriesURL(base, tableID, variableID, decimals string) string {
	return fmt.Sprintf("%s/values/t/%s/n1/all/v/%s/p/all/d/v%s%%20%s",
		base, tableID, variableID, variableID, decimals)
}
