// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrInvalidEnv is returned when a variable is set but cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses an integer variable, or returns fallback if it is unset or empty.
func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := lookup(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%w %s=%q: %v", ErrInvalidEnv, key, value, err)
	}
	return n, nil
}

// GetEnvFloat parses a float variable, or returns fallback if it is unset or empty.
func GetEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := lookup(key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w %s=%q: %v", ErrInvalidEnv, key, value, err)
	}
	return f, nil
}

// GetEnvBool parses a boolean variable (1/0, true/false, ...), or returns
// fallback if it is unset or empty.
func GetEnvBool(key string, fallback bool) (bool, error) {
	value, ok := lookup(key)
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%w %s=%q: %v", ErrInvalidEnv, key, value, err)
	}
	return b, nil
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
