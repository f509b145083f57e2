package orders

// Fulfillment statuses. The pipeline runs pending → processing → packed →
// shipped → delivered; cancelled and refunded branch off from any
// non-terminal state.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusPacked     = "packed"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentInitiated = "initiated"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

var fulfillmentNext = map[string]string{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusPacked,
	StatusPacked:     StatusShipped,
	StatusShipped:    StatusDelivered,
}

func IsFulfillmentStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPacked, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func IsTerminal(s string) bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransition enforces the closed fulfillment state machine. Moving
// backwards (e.g. delivered → pending) is rejected.
func CanTransition(from, to string) bool {
	if !IsFulfillmentStatus(to) || IsTerminal(from) {
		return false
	}
	if to == StatusCancelled || to == StatusRefunded {
		return true
	}
	return fulfillmentNext[from] == to
}

// stockStillHeld reports whether goods for an order in this state are still
// in the warehouse, i.e. whether cancelling releases reservable stock.
func stockStillHeld(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusPacked:
		return true
	}
	return false
}
