package processor

// LayoutAnnotation places a plan record on screen.
type LayoutAnnotation struct {
	// Lane is the column of the record within its group.
	Lane int `yaml:"lane"`
	// GroupSize is the number of records sharing the row, or 0 if the record plays alone.
	GroupSize int `yaml:"group_size"`
}

// Solo returns whether the record takes the full width.
func (a LayoutAnnotation) Solo() bool {
	return a.GroupSize == 0
}

// AssignLanes groups records whose start ticks are within theta of each other and assigns them equal-width lanes.
//
// A group starts at the first record not yet placed and extends over the
// following records as long as each starts less than theta ticks after
// the group's first record. Groups are never reopened. If maxLanes is
// positive, groups are closed once they reach that size.
func AssignLanes(records []PlanRecord, theta int64, maxLanes int) []LayoutAnnotation {
	layout := make([]LayoutAnnotation, len(records))
	for i := 0; i < len(records); {
		leader := records[i].StartTick
		size := 1
		for i+size < len(records) && records[i+size].StartTick-leader < theta {
			if maxLanes > 0 && size >= maxLanes {
				break
			}
			size++
		}
		if size > 1 {
			for lane := 0; lane < size; lane++ {
				layout[i+lane] = LayoutAnnotation{Lane: lane, GroupSize: size}
			}
		}
		i += size
	}
	return layout
}
