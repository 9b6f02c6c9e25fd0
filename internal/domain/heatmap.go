package domain

// HeatmapCell represents a single cell of the correlation heatmap
type HeatmapCell struct {
	Row       int         `json:"row"`
	Col       int         `json:"col"`
	RowLabel  string      `json:"row_label"`
	ColLabel  string      `json:"col_label"`
	Intensity Coefficient `json:"intensity"` // -1..1, null when undefined
}

// Cells flattens the matrix row by row
func (m CorrelationMatrix) Cells() []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(m.Variables)*len(m.Variables))
	for i := range m.Values {
		for j := range m.Values[i] {
			cells = append(cells, HeatmapCell{
				Row:       i,
				Col:       j,
				RowLabel:  m.Variables[i],
				ColLabel:  m.Variables[j],
				Intensity: m.Values[i][j],
			})
		}
	}
	return cells
}
