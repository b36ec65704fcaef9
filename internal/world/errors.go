package world

import "errors"

var (
	// ErrAlreadyOccupied: ячейка уже занята каким-либо блоком
	ErrAlreadyOccupied = errors.New("ячейка уже занята")
	// ErrNoHit: луч не пересёк ни одного блока в пределах дальности
	ErrNoHit = errors.New("луч не попал в блок")
	// ErrStaleReference: ссылка на блок устарела (блок удалён, индекс сдвинулся или хендл из прошлой эпохи)
	ErrStaleReference = errors.New("устаревшая ссылка на блок")
	// ErrDuplicateCell: генератор выдал две записи для одной ячейки
	ErrDuplicateCell = errors.New("повторяющаяся ячейка в сущности")
	// ErrUnknownPart: у сущности нет такой части
	ErrUnknownPart = errors.New("неизвестная часть сущности")
)
