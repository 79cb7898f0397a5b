//go:build !linux

package data

func adviseSequential(b []byte) {}
