//go:build cgo

package storage

import _ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
