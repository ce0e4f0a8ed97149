package gradient

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPixel matches any *MissingPixelError.
	ErrMissingPixel = errors.New("missing pixel")
	// ErrInvalidChannel matches any *InvalidChannelError.
	ErrInvalidChannel = errors.New("invalid channel")
)

// MissingPixelError reports a row that holds fewer pixels than its width.
// Column is the first absent position.
type MissingPixelError struct {
	Row    int
	Column int
}

func (e *MissingPixelError) Error() string {
	return fmt.Sprintf("pixel at row %d, column %d does not exist", e.Row, e.Column)
}

func (e *MissingPixelError) Is(target error) bool { return target == ErrMissingPixel }

// InvalidChannelError reports a pixel whose channel at index Channel is
// absent or outside [0,255]. Values holds the channels that were present.
type InvalidChannelError struct {
	Row     int
	Column  int
	Channel int
	Values  []int
}

func (e *InvalidChannelError) Error() string {
	name := "channel " + fmt.Sprint(e.Channel)
	if e.Channel >= 0 && e.Channel < len(channelNames) {
		name = channelNames[e.Channel]
	}
	if e.Channel >= len(e.Values) {
		return fmt.Sprintf("pixel at row %d, column %d: %s missing (got %v)", e.Row, e.Column, name, e.Values)
	}
	return fmt.Sprintf("pixel at row %d, column %d: %s=%d out of range [0,255] (got %v)",
		e.Row, e.Column, name, e.Values[e.Channel], e.Values)
}

func (e *InvalidChannelError) Is(target error) bool { return target == ErrInvalidChannel }

var channelNames = [...]string{"r", "g", "b", "a"}
