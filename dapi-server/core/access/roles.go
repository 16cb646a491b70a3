package access

// HasRole reports whether who holds role. The manager holds every role.
func (r *Registry) HasRole(store RoleReader, role, who [32]byte) (bool, error) {
	return r.Check(store, who, RoleHolder{Role: role})
}

// GrantRole grants role to who. The caller must be the manager, a holder of
// role or a holder of the admin role. Granting a held role is a no-op.
func (r *Registry) GrantRole(store RoleWriter, caller, role, who [32]byte) error {
	if err := r.require(store, caller, Manager{}, RoleHolder{Role: role}, RoleHolder{Role: r.adminRole}); err != nil {
		return err
	}
	return store.SaveRoleMember(role, who, true)
}

// RevokeRole revokes role from who under the same rules as GrantRole.
func (r *Registry) RevokeRole(store RoleWriter, caller, role, who [32]byte) error {
	if err := r.require(store, caller, Manager{}, RoleHolder{Role: role}, RoleHolder{Role: r.adminRole}); err != nil {
		return err
	}
	return store.SaveRoleMember(role, who, false)
}

// RenounceRole lets who give up role. Only who may call it.
func (r *Registry) RenounceRole(store RoleWriter, caller, role, who [32]byte) error {
	if caller != who {
		return ErrAccessDenied
	}
	return store.SaveRoleMember(role, who, false)
}
