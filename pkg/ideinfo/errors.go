package ideinfo

import "errors"

// ErrUnexpectedMessage is returned when a wire message does not have the
// shape of the message being decoded.
var ErrUnexpectedMessage = errors.New("unexpected message")
