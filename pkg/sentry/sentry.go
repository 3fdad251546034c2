// Package sentry reports errors and messages to Sentry, picking the hub
// attached to the echo request when there is one.
package sentry

import (
	"fmt"
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long main waits for buffered events on exit.
var FlushTime = 2 * time.Second

type Sentry struct {
	context       echo.Context
	error         error
	message       string
	level         sentrygo.Level
	extras        map[string]interface{}
	tags          map[string]string
	contextValues map[string]sentrygo.Context
}

func WithContext(c echo.Context) *Sentry {
	return new(Sentry).WithContext(c)
}

func WithExtras(extras map[string]interface{}) *Sentry {
	return new(Sentry).WithExtras(extras)
}

func WithTags(tags map[string]string) *Sentry {
	return new(Sentry).WithTags(tags)
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.error = err
	return s
}

func (s *Sentry) WithMessage(msg string) *Sentry {
	s.message = msg
	return s
}

func (s *Sentry) WithLevel(level sentrygo.Level) *Sentry {
	s.level = level
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) WithContextValues(values map[string]sentrygo.Context) *Sentry {
	s.contextValues = values
	return s
}

func (s *Sentry) Info(msg string) {
	s.WithMessage(msg).WithLevel(sentrygo.LevelInfo).sendMessage()
}

func (s *Sentry) Warning(msg string) {
	s.WithMessage(msg).WithLevel(sentrygo.LevelWarning).sendMessage()
}

func (s *Sentry) Warningf(format string, args ...interface{}) {
	s.Warning(fmt.Sprintf(format, args...))
}

func (s *Sentry) Error(err error) {
	s.WithError(err).WithLevel(sentrygo.LevelError).sendError()
}

func (s *Sentry) Errorf(format string, args ...interface{}) {
	s.Error(fmt.Errorf(format, args...))
}

func Error(err error) {
	new(Sentry).Error(err)
}

func Warning(msg string) {
	new(Sentry).Warning(msg)
}

func enabled() bool {
	return os.Getenv("APP_ENV") != "local" && os.Getenv("SENTRY_DSN") != ""
}

func (s *Sentry) getHub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}

func (s *Sentry) configScope(scope *sentrygo.Scope) {
	if s.level != "" {
		scope.SetLevel(s.level)
	}
	if len(s.extras) > 0 {
		scope.SetExtras(s.extras)
	}
	if len(s.tags) > 0 {
		scope.SetTags(s.tags)
	}
	for key, value := range s.contextValues {
		scope.SetContext(key, value)
	}
	if s.context != nil {
		scope.SetRequest(s.context.Request())
	}
}

func (s *Sentry) sendError() {
	if !enabled() || s.error == nil {
		return
	}
	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureException(s.error)
	})
}

func (s *Sentry) sendMessage() {
	if !enabled() || s.message == "" {
		return
	}
	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureMessage(s.message)
	})
}
