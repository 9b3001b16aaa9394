package kernel

import "errors"

// Actor is the authenticated caller of a core operation, as supplied by the
// identity provider. The core trusts it unconditionally.
type Actor struct {
	userID UUID
	role   Role
}

// NewActor validates both parts.
func NewActor(userID UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, role: role}, nil
}

func (a Actor) UserID() UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

// Can reports whether the actor's role grants c.
func (a Actor) Can(c Capability) bool {
	return a.role.Can(c)
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID UUID) bool {
	return a.userID.IsEqual(userID)
}

// Validate rejects a zero-value Actor.
func (a Actor) Validate() error {
	return errors.Join(a.userID.Validate(), a.role.Validate())
}
