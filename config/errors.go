package config

import "errors"

var (
	errInitFailed = errors.New(
		"unable to initialise bored settings from the configuration file",
	)

	errInvalidSince = errors.New(
		"please provide a valid date for --since",
	)

	errFutureSince = errors.New(
		"the --since date must not be in the future",
	)
)
