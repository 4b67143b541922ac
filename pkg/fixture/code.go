package fixture

import (
	"fmt"
	"strconv"
)

// CodeFormat describes how sequential identifiers and display names are built.
// Index 7 with Prefix "Room_", Width 3 and NamePrefix "Classroom " gives
// "Room_007" / "Classroom 7" (or "Classroom 007" when PadName is set).
type CodeFormat struct {
	Prefix     string
	Width      int
	NamePrefix string
	PadName    bool
}

// Code returns the identifier for a 1-based index.
func (f CodeFormat) Code(index int) string {
	return f.Prefix + f.pad(index)
}

// Name returns the display name for a 1-based index.
func (f CodeFormat) Name(index int) string {
	if f.PadName {
		return f.NamePrefix + f.pad(index)
	}
	return f.NamePrefix + strconv.Itoa(index)
}

func (f CodeFormat) pad(index int) string {
	if f.Width <= 0 {
		return strconv.Itoa(index)
	}
	return fmt.Sprintf("%0*d", f.Width, index)
}
