package optset

import (
	"cmp"
	"fmt"
	"os"
	"regexp"
	"slices"
)

// Validation helpers for OptionBuilder.Validate

// ValidateFile checks that a path is non-empty and, if mustExist, exists
func ValidateFile(mustExist bool) func(string) error {
	return func(path string) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		if mustExist {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("file does not exist: %s", path)
			} else if err != nil {
				return fmt.Errorf("cannot access file %s: %v", path, err)
			}
		}
		return nil
	}
}

// ValidateDir checks that a path is non-empty and, if mustExist, is a directory
func ValidateDir(mustExist bool) func(string) error {
	return func(path string) error {
		if path == "" {
			return fmt.Errorf("directory path cannot be empty")
		}
		if mustExist {
			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				return fmt.Errorf("directory does not exist: %s", path)
			} else if err != nil {
				return fmt.Errorf("cannot access directory %s: %v", path, err)
			} else if !info.IsDir() {
				return fmt.Errorf("path is not a directory: %s", path)
			}
		}
		return nil
	}
}

// ValidateRegex checks strings against pattern, compiled once
func ValidateRegex(pattern string) func(string) error {
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return func(string) error {
			return fmt.Errorf("invalid regex pattern '%s': %v", pattern, err)
		}
	}

	return func(value string) error {
		if !regex.MatchString(value) {
			return fmt.Errorf("value '%s' does not match pattern '%s'", value, pattern)
		}
		return nil
	}
}

// ValidateOneOf checks that the value is one of values
func ValidateOneOf[V comparable](values ...V) func(V) error {
	return func(value V) error {
		if slices.Contains(values, value) {
			return nil
		}
		return fmt.Errorf("value %v is not one of the allowed values: %v", value, values)
	}
}

// ValidateRange checks lo <= value <= hi
func ValidateRange[V cmp.Ordered](lo, hi V) func(V) error {
	return func(value V) error {
		if value < lo || value > hi {
			return fmt.Errorf("value %v is out of range [%v, %v]", value, lo, hi)
		}
		return nil
	}
}
