//go:build !linux

package probe

import "errors"

func readARPTable() ([]tableEntry, error) {
	return nil, errors.New("system ARP table not readable on this platform")
}
