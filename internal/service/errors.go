package service

import "errors"

var (
	// ErrChannelExists means the handle is already tracked.
	ErrChannelExists = errors.New("channel already exists")
	// ErrAlreadyRunning means the automation loop is active.
	ErrAlreadyRunning = errors.New("automation already running")
	// ErrNotRunning means the automation loop is not active.
	ErrNotRunning = errors.New("automation not running")
	// ErrAutomationDisabled means settings have isActive=false.
	ErrAutomationDisabled = errors.New("automation is disabled in settings")
	// ErrRetryExhausted means a queue item reached its attempt ceiling.
	ErrRetryExhausted = errors.New("queue item retry limit reached")
)
