//go:build !unix

package player

import "os/exec"

// killGroupOnCancel keeps the default behaviour of killing only the direct child.
func killGroupOnCancel(*exec.Cmd) {}
