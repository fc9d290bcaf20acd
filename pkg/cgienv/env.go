package cgienv

import (
	"fmt"
	"os"
	"strings"
)

const (
	// Unset is printed in place of a standard variable that is not set.
	Unset = "<unset>"
	// HTTPPrefix marks variables carrying request headers.
	HTTPPrefix = "HTTP_"
)

// Names is the allow-list of standard CGI variables, in output order.
var Names = []string{
	"AUTH_TYPE",
	"CONTENT_LENGTH",
	"CONTENT_TYPE",
	"GATEWAY_INTERFACE",
	"PATH_INFO",
	"PATH_TRANSLATED",
	"QUERY_STRING",
	"REMOTE_ADDR",
	"REMOTE_HOST",
	"REMOTE_IDENT",
	"REMOTE_PORT",
	"REMOTE_USER",
	"REQUEST_METHOD",
	"REQUEST_URI",
	"SCRIPT_NAME",
	"SERVER_NAME",
	"SERVER_PORT",
	"SERVER_PROTOCOL",
	"SERVER_SOFTWARE",
	"UNIQUE_ID",
	"HTTPS",
}

// Var is a single NAME=value pair.
type Var struct {
	Name  string
	Value string
}

// String renders the pair as "NAME = value".
func (v Var) String() string {
	return fmt.Sprintf("%s = %s", v.Name, v.Value)
}

// Environment is a read-only view of a process environment.
type Environment interface {
	// Lookup returns the value of name and whether it is set.
	Lookup(name string) (string, bool)
	// Vars returns every variable in enumeration order.
	Vars() []Var
}

// Env is an Environment backed by an ordered slice.
type Env []Var

// FromOS captures the current process environment.
func FromOS() Env {
	return Parse(os.Environ())
}

// Parse builds an Env from "NAME=value" pairs as returned by os.Environ.
// Entries without a name are skipped. When a name repeats, Lookup returns
// the first occurrence.
func Parse(pairs []string) Env {
	env := make(Env, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		env = append(env, Var{Name: name, Value: value})
	}
	return env
}

func (e Env) Lookup(name string) (string, bool) {
	for _, v := range e {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

func (e Env) Vars() []Var {
	return e
}

// Standard resolves every allow-listed name, substituting Unset for the
// ones that are missing.
func Standard(env Environment) []Var {
	out := make([]Var, 0, len(Names))
	for _, name := range Names {
		value, ok := env.Lookup(name)
		if !ok {
			value = Unset
		}
		out = append(out, Var{Name: name, Value: value})
	}
	return out
}

// Headers returns the HTTP_* variables in enumeration order.
func Headers(env Environment) []Var {
	var out []Var
	for _, v := range env.Vars() {
		if strings.HasPrefix(v.Name, HTTPPrefix) {
			out = append(out, v)
		}
	}
	return out
}

// Dump returns Standard followed by Headers.
func Dump(env Environment) []Var {
	return append(Standard(env), Headers(env)...)
}
