package topic

import (
	"time"

	"github.com/ritwikg/ctutor/internal/tutor"
)

// contentMsg is sent when a generation request finishes.
type contentMsg struct {
	Mode tutor.Mode
	Text string
	Err  error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
