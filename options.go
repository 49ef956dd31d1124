package spellbound

import "go.uber.org/zap"

type options struct {
	logger   *zap.Logger
	backend  string
	language string
	dictDir  string
}

// Option configures New.
type Option func(*options)

// WithBackend selects a backend by registry name instead of the platform
// default.
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

// WithLanguage sets the locale, such as "en_US". It is fixed for the life of
// the Checker.
func WithLanguage(lang string) Option {
	return func(o *options) { o.language = lang }
}

// WithDictDir sets the directory searched for <language>.aff and
// <language>.dic by dictionary based backends.
func WithDictDir(dir string) Option {
	return func(o *options) { o.dictDir = dir }
}

// WithLogger sets the logger for the Checker and its engine session.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}
