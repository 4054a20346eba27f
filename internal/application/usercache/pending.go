package usercache

import "github.com/jhoicas/user-console/internal/domain/entity"

// OperationKind tipo de mutación optimista.
type OperationKind string

const (
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// OperationState applied -> confirmed | rolled_back.
type OperationState string

const (
	StateApplied    OperationState = "applied"
	StateConfirmed  OperationState = "confirmed"
	StateRolledBack OperationState = "rolled_back"
)

// PendingOperation mutación en vuelo para un id. Snapshot es nil si el registro no estaba en la página;
// Index es la posición que tenía (-1 si no estaba).
type PendingOperation struct {
	ID       int            `json:"id"`
	Kind     OperationKind  `json:"kind"`
	Snapshot *entity.User   `json:"snapshot,omitempty"`
	Index    int            `json:"index"`
	State    OperationState `json:"state"`

	rank int
}

func (p PendingOperation) clone() PendingOperation {
	if p.Snapshot != nil {
		s := p.Snapshot.Clone()
		p.Snapshot = &s
	}
	return p
}

func (p *PendingOperation) resolve(to OperationState) {
	if p.State != StateApplied {
		return
	}
	p.State = to
}
