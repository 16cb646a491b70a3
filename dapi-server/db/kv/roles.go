package kv

// RoleMember returns whether who was granted role. It does not account for
// the manager.
func (t *transaction) RoleMember(role, who [32]byte) (bool, error) {
	return decodeFlag(t.tx.Bucket(rolesBucket).Get(compositeKey(role, who))), nil
}

// SaveRoleMember records the membership of who in role.
func (t *transaction) SaveRoleMember(role, who [32]byte, granted bool) error {
	return t.tx.Bucket(rolesBucket).Put(compositeKey(role, who), encodeFlag(granted))
}
