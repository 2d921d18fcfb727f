//go:build !darwin && !linux
// +build !darwin,!linux

package nettools

import "syscall"

func probe(syscall.RawConn) bool {
	return true
}
