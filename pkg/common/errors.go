package common

import "fmt"

// FileNotFoundError is returned when the requested image does not exist
type FileNotFoundError struct {
	Name string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("File %s not found in the current directory.", e.Name)
}

// DecodeError is returned when an image container cannot be read
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Decode Error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("Decode Error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Configuration Error: %s", e.Message)
}

func NewFileNotFoundError(name string) error {
	return &FileNotFoundError{Name: name}
}

func NewDecodeError(message string, err error) error {
	return &DecodeError{Message: message, Err: err}
}

func NewConfigError(message string) error {
	return &ConfigError{Message: message}
}
