package access

// Principal is a capability a caller can be checked against. It is either
// Manager or RoleHolder.
type Principal interface {
	isPrincipal()
}

// Manager is held only by the registry manager.
type Manager struct{}

// RoleHolder is held by the manager and by every member of Role.
type RoleHolder struct {
	Role [32]byte
}

func (Manager) isPrincipal()    {}
func (RoleHolder) isPrincipal() {}

// Check reports whether who holds any of the capabilities.
func (r *Registry) Check(store RoleReader, who [32]byte, anyOf ...Principal) (bool, error) {
	for _, p := range anyOf {
		switch p := p.(type) {
		case Manager:
			if who == r.manager {
				return true, nil
			}
		case RoleHolder:
			if who == r.manager {
				return true, nil
			}
			member, err := store.RoleMember(p.Role, who)
			if err != nil {
				return false, err
			}
			if member {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *Registry) require(store RoleReader, who [32]byte, anyOf ...Principal) error {
	ok, err := r.Check(store, who, anyOf...)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccessDenied
	}
	return nil
}
