// Package domain defines core data models and interfaces shared across opkit.
// It contains plain types (platforms, commands, submissions), the error
// taxonomy and the contracts (interfaces) implemented by the process runner
// and the review tool.
package domain
