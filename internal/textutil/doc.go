// Package textutil sanitizes labels for places with naming rules: file
// names and worksheet names.
package textutil
