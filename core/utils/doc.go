// Package utils provides common helpers for the source-manager application.
// It includes path normalization and volume-root resolution shared by the
// validator, the document store and the volume scanner.
package utils
