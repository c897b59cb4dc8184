package registration

import (
	"context"
	"errors"
)

// ErrRejected is wrapped by Submitter errors that carry a backend response
// outside the success range, as opposed to transport failures.
var ErrRejected = errors.New("registration: backend rejected submission")

// Notification texts.
const (
	MsgAccountCreated = "Account created successfully!"
	MsgAccountFailed  = "Failed to create account."
	MsgSubmitError    = "An error occurred. Please try again."
)

// NoticeKind classifies a notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
)

// Notice is the user-facing outcome of a submission that reached the network.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, notice Notice)

// Notify implements Notifier.
func (fn NotifierFunc) Notify(ctx context.Context, notice Notice) {
	if fn != nil {
		fn(ctx, notice)
	}
}

func successNotice() Notice {
	return Notice{Kind: NoticeSuccess, Message: MsgAccountCreated}
}

// failureNotice keeps the original wording split between a backend refusal
// and an unreachable backend; both are the same kind and handled identically.
func failureNotice(err error) Notice {
	if errors.Is(err, ErrRejected) {
		return Notice{Kind: NoticeFailure, Message: MsgAccountFailed}
	}
	return Notice{Kind: NoticeFailure, Message: MsgSubmitError}
}
