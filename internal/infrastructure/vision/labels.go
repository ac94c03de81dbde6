package vision

import "fmt"

func bestClass(scores []float32) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

func classLabel(id int) string {
	if id == 0 {
		return "person"
	}
	return fmt.Sprintf("class %d", id)
}
