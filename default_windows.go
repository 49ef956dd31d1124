package spellbound

const defaultBackend = "winspell"
