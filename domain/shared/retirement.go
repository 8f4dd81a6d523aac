package shared

// Retirement 退役标记，Product/Category/Tag 共用
// 退役不可逆：已退役实体不能再次退役，也不能被更新或建立新的关联
type Retirement struct {
	retired bool
}

// RestoreRetirement 仓储重建时使用
func RestoreRetirement(retired bool) Retirement {
	return Retirement{retired: retired}
}

func (r Retirement) IsRetired() bool {
	return r.retired
}

// Retire 标记退役，已退役时返回 ErrAlreadyRetired
func (r *Retirement) Retire(entity, id string) error {
	if r.retired {
		return NewAlreadyRetiredError(entity, id)
	}
	r.retired = true
	return nil
}

// EnsureActive 未退役时返回 nil，否则返回 ErrUnavailable
func (r Retirement) EnsureActive(entity, id string) error {
	if r.retired {
		return NewUnavailableError(entity, id)
	}
	return nil
}
