package domain

// next holds the single forward edge out of each status. PAID is terminal.
var next = map[OrderStatus]OrderStatus{
	StatusPending:   StatusValidated,
	StatusValidated: StatusReady,
	StatusReady:     StatusPaid,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusReady, StatusPaid:
		return true
	}
	return false
}

func (t OrderType) Valid() bool {
	return t == TypeDineIn || t == TypeTakeaway
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentTicketCard, PaymentCash, PaymentPaperTicket:
		return true
	}
	return false
}

func CanTransition(from, to OrderStatus) bool {
	n, ok := next[from]
	return ok && n == to
}

// InitialStatus is VALIDATED for staff-created orders and PENDING otherwise.
func InitialStatus(role Role) OrderStatus {
	if role.IsStaff() {
		return StatusValidated
	}
	return StatusPending
}

func (r Role) IsStaff() bool {
	return r == RoleWaiter || r == RoleAdmin
}

// Allowed reports whether the role may move an order into the target status.
// An empty role is trusted (internal callers).
func (r Role) Allowed(to OrderStatus) bool {
	switch r {
	case "":
		return true
	case RoleWaiter, RoleAdmin:
		return true
	case RoleChef:
		return to == StatusReady
	}
	return false
}

func (r Role) CanCook() bool {
	return r == "" || r == RoleChef || r == RoleAdmin
}

func (r Role) CanSeat() bool {
	return r == "" || r.IsStaff()
}

// CheckTransition validates a forward status move on the order.
func (o *Order) CheckTransition(to OrderStatus) error {
	if !to.Valid() || !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	return nil
}

// CheckMainsStarted validates raising the mains flag. Raising it twice is not
// an error.
func (o *Order) CheckMainsStarted() error {
	if o.Status != StatusValidated && !o.MainsStarted {
		return ErrInvalidTransition
	}
	return nil
}

// AssignmentPatch builds the single update for seating the order at label:
// a PENDING order is validated together with the table change.
func (o *Order) AssignmentPatch(label, by string) OrderPatch {
	patch := OrderPatch{TableNumber: StringPtr(label)}
	if o.Status == StatusPending {
		patch.Status = StatusPtr(StatusValidated)
		if by != "" {
			patch.ValidatedBy = StringPtr(by)
		}
	}
	return patch
}
