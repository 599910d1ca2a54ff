// Package dnscheck verifies that the configured public domain resolves.
//
// Resolution failure is informational: the deployment works without DNS,
// it just is not reachable under its public name yet.
package dnscheck

import (
	"context"
	"net"
)

// lookupHost is swapped in tests to avoid real DNS traffic.
var lookupHost = func(ctx context.Context, domain string) ([]string, error) {
	return net.DefaultResolver.LookupHost(ctx, domain)
}

// Result holds the outcome of a domain resolution attempt.
type Result struct {
	Domain    string
	Addresses []string
	Err       error
}

// OK reports whether the domain resolved to at least one address.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Addresses) > 0
}

// Resolve looks up the domain and returns whatever came back. The
// error, if any, is carried in the Result rather than returned: callers
// report it and move on.
func Resolve(ctx context.Context, domain string) Result {
	addresses, err := lookupHost(ctx, domain)
	return Result{Domain: domain, Addresses: addresses, Err: err}
}
