// Package dns checks that an email domain is able to receive mail.
package dns

import (
	"context"
	"fmt"
	"net"
	"time"
)

const defaultLookupTimeout = 5 * time.Second

// mxResolver is the subset of *net.Resolver used by MXChecker.
type mxResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// MXChecker implements ports.MailDomainChecker with a bounded MX lookup.
type MXChecker struct {
	resolver mxResolver
	timeout  time.Duration
}

// NewMXChecker returns a checker using the system resolver.
func NewMXChecker(timeout time.Duration) *MXChecker {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &MXChecker{resolver: net.DefaultResolver, timeout: timeout}
}

// HasMX reports whether domain publishes at least one MX record.
func (c *MXChecker) HasMX(ctx context.Context, domain string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.resolver.LookupMX(ctx, domain)
	if err != nil {
		return false, fmt.Errorf("lookup mx %s: %w", domain, err)
	}
	return len(records) > 0, nil
}
