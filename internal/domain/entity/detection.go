package entity

// BoundingBox рамка найденного объекта в координатах кадра
type BoundingBox struct {
	X1, Y1     int     // левый верхний угол
	X2, Y2     int     // правый нижний угол
	ClassID    int     // класс детектора (0 = person для COCO)
	Label      string  // имя класса
	Confidence float32 // уверенность детектора
}

// Width возвращает ширину рамки
func (b BoundingBox) Width() int {
	return b.X2 - b.X1
}

// Height возвращает высоту рамки
func (b BoundingBox) Height() int {
	return b.Y2 - b.Y1
}

// Center возвращает координаты центра рамки
func (b BoundingBox) Center() (x, y int) {
	return b.X1 + b.Width()/2, b.Y1 + b.Height()/2
}

// DetectionResult итог одного прогона детектора людей.
// Порядок рамок задаёт детектор и смысла не несёт.
type DetectionResult struct {
	Boxes []BoundingBox
}

// Empty сообщает, что ничего не найдено
func (r *DetectionResult) Empty() bool {
	return r == nil || len(r.Boxes) == 0
}

// First возвращает первую (представительную) рамку.
func (r *DetectionResult) First() (BoundingBox, bool) {
	if r.Empty() {
		return BoundingBox{}, false
	}
	return r.Boxes[0], true
}

// DetectOptions фильтр и параметры инференса детектора людей
type DetectOptions struct {
	ClassID       int     // оставляем только этот класс
	MinConfidence float32 // отбрасываем рамки ниже порога
	InputSize     int     // сторона квадратного входа сети
}
