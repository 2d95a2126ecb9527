package config

import "errors"

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrMaxFilesOutOfRange = errors.New("max_files must be in (0, 100000]")
	ErrResolutionOutOfRange = errors.New("resolution bound out of range")
)
