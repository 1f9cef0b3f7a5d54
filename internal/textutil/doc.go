// Package textutil sanitizes user-supplied names before they reach the
// filesystem: upload file names and per-job directory tokens.
package textutil
