package entity

// Mode режим работы контроллера наблюдения
type Mode string

const (
	ModeMotionWatch Mode = "motion_watch" // Дешёвое ожидание движения
	ModePersonWatch Mode = "person_watch" // Дорогой поиск человека
)

// String возвращает человекочитаемое название режима
func (m Mode) String() string {
	switch m {
	case ModeMotionWatch:
		return "motion watch"
	case ModePersonWatch:
		return "person watch"
	default:
		return string(m)
	}
}
