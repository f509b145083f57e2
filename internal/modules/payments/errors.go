package payments

import "errors"

var (
	// ErrProcessor marks a failed or timed-out processor call, as opposed
	// to "payment not completed yet".
	ErrProcessor = errors.New("payment processor unavailable")

	// ErrVerification marks a webhook whose signature did not check out.
	ErrVerification = errors.New("webhook verification failed")
)
