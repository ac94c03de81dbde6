package entity

import "time"

// Snapshot согласованный срез доски результатов.
// Все поля относятся к одному и тому же циклу.
type Snapshot struct {
	Status    string    // последнее сообщение о состоянии
	Frame     *Frame    // последний (возможно размеченный) кадр, nil если нет
	Alert     bool      // человек сейчас считается присутствующим
	Mode      Mode      // режим, в котором контроллер окажется после цикла
	Cycle     uint64    // номер цикла внутри запуска
	RunID     string    // идентификатор запуска
	Running   bool      // крутится ли рабочий цикл
	UpdatedAt time.Time // время публикации
}

// HasFrame сообщает, есть ли в снимке кадр
func (s Snapshot) HasFrame() bool {
	return !s.Frame.Empty()
}
