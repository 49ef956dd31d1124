package spellbound

const defaultBackend = "appkit"
