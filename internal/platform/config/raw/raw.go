// Package raw reads bootstrap settings straight from the environment
// the logger is configured through it, so it must not log
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a prefixed view of the environment
type Env struct{ prefix string }

// Prefix returns an Env whose keys all start with p
func Prefix(p string) Env { return Env{prefix: p} }

func (e Env) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(e.prefix + key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// String returns the value of key or def when unset
func (e Env) String(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

// Bool accepts strconv booleans plus yes/no and on/off, anything else is def
func (e Env) Bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// Int returns key as a non negative int or def
func (e Env) Int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
