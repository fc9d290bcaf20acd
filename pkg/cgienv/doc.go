/*
Package cgienv reads CGI-style request metadata from an environment.

The standard variables of RFC 3875 are resolved from a fixed allow-list in
a fixed order, followed by every HTTP_* variable (one per request header)
in the order the environment enumerates them. Missing standard variables
are reported with the Unset sentinel rather than as an error.
*/
package cgienv
