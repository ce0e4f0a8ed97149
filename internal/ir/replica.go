package ir

// Replica is the intermediate representation passed between the pipeline
// and the rendering adapters. Rows holds one gradient specification per
// image row, top to bottom (len = Height); each covers Width 1px stops.
type Replica struct {
	Width  int
	Height int
	Format string // color format used in the stops
	Rows   []string
}
