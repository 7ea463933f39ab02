package identity

// Identity é o profissional autenticado. Vem do token e é passado
// explicitamente para cada use case.
type Identity struct {
	ProfessionalID uint
	Role           string
}

func (i Identity) Owns(professionalID uint) bool {
	return i.ProfessionalID != 0 && i.ProfessionalID == professionalID
}

func (i Identity) ActorID() *uint {
	if i.ProfessionalID == 0 {
		return nil
	}
	id := i.ProfessionalID
	return &id
}
