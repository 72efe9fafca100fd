package analyzer

// report records the evaluation outcome for one line. Consecutive violations
// in the same direction coalesce into a single problem anchored at the run's
// first line; every evaluated line still receives a mark so the presentation
// layer can highlight it. A compliant line always closes the current run.
func (s *scanState) report(lineIndex, detected, target int, compliant bool, res *Result) {
	if compliant {
		s.lastDir = DirectionNone
		res.Marks = append(res.Marks, LineMark{
			LineIndex: lineIndex,
			StartCol:  detected,
			EndCol:    detected,
			Direction: DirectionNone,
		})
		return
	}

	dir := DirectionUnder
	if detected > target {
		dir = DirectionOver
	}

	mark := LineMark{
		LineIndex: lineIndex,
		Direction: dir,
	}
	if dir == DirectionOver {
		// Highlight the excess columns between the target and the first
		// non-space character
		mark.StartCol = target
		mark.EndCol = detected
	} else {
		// Highlight the whole detected prefix
		mark.StartCol = 0
		mark.EndCol = detected
	}

	if dir != s.lastDir {
		res.Problems = append(res.Problems, newProblem(dir, lineIndex, detected, target))
		mark.RunStart = true
		s.lastDir = dir
	}

	res.Marks = append(res.Marks, mark)
}
