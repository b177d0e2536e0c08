package notification

import "errors"

var ErrNoRecipients = errors.New("notification: no recipients configured")
