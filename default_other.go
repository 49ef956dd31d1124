//go:build !darwin && !windows

package spellbound

const defaultBackend = "hunspell"
