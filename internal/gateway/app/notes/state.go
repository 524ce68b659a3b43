package notes

import (
	"notegrid/internal/gateway/domain/entities"
)

// OpKind - класс операции над коллекцией.
type OpKind string

// Классы операций.
const (
	OpFetch  OpKind = "fetch"
	OpAdd    OpKind = "add"
	OpSave   OpKind = "save"
	OpDelete OpKind = "delete"
)

// OpKinds перечисляет все классы операций.
var OpKinds = []OpKind{OpFetch, OpAdd, OpSave, OpDelete}

// OpStatus - состояние класса операций.
type OpStatus string

// Состояния.
const (
	StatusIdle     OpStatus = "idle"
	StatusInFlight OpStatus = "in_flight"
	StatusFailed   OpStatus = "failed"
)

// OpState - помеченное состояние Idle | InFlight | Failed.
// LastError задан только в состоянии Failed.
type OpState struct {
	Status    OpStatus        `json:"status"`
	LastError *OperationError `json:"lastError,omitempty"`
}

// Pending сообщает, выполняется ли операция.
func (s OpState) Pending() bool {
	return s.Status == StatusInFlight
}

func idle() OpState { return OpState{Status: StatusIdle} }

func inFlight() OpState { return OpState{Status: StatusInFlight} }

func failed(err error) OpState {
	return OpState{Status: StatusFailed, LastError: newOperationError(err)}
}

// State - снимок коллекции заметок и состояний операций.
type State struct {
	Notes      []entities.Note    `json:"notes"`
	Operations map[OpKind]OpState `json:"operations"`
}

// Pending возвращает состояние класса операций.
func (s State) Pending(kind OpKind) bool {
	return s.Operations[kind].Pending()
}

// LastError возвращает последнюю ошибку класса операций или nil.
func (s State) LastError(kind OpKind) *OperationError {
	return s.Operations[kind].LastError
}
