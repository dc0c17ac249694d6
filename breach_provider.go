package trustkit

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// BreachProvider answers whether a password is known-compromised. Check
// returns true when the password appears in the provider's corpus. A nil
// error with false means the password is clear as far as this provider
// knows; collisions and staleness are inherent to the data source.
type BreachProvider interface {
	Check(ctx context.Context, password string) (bool, error)
}

var staticBreachRoster = []string{
	"password",
	"123456",
	"qwerty",
	"admin",
	"letmein",
	"welcome",
	"monkey",
	"dragon",
	"master",
	"123456789",
}

// StaticBreachList is the default [BreachProvider]: case-insensitive
// membership in a small fixed roster, with a simulated lookup latency so
// callers exercise the same asynchrony a remote provider would impose.
type StaticBreachList struct {
	latency time.Duration
	roster  map[string]struct{}
}

// NewStaticBreachList creates a [StaticBreachList] with the given simulated
// latency. A latency of zero resolves synchronously.
func NewStaticBreachList(latency time.Duration) *StaticBreachList {
	roster := make(map[string]struct{}, len(staticBreachRoster))
	for _, pw := range staticBreachRoster {
		roster[pw] = struct{}{}
	}
	return &StaticBreachList{
		latency: latency,
		roster:  roster,
	}
}

// Check describes the check operation and its observable behavior.
//
// Check may return an error when input validation, dependency calls, or security checks fail.
// Check does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *StaticBreachList) Check(ctx context.Context, password string) (bool, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	_, breached := p.roster[strings.ToLower(password)]
	return breached, nil
}

// HIBPRangeProvider is a [BreachProvider] backed by a k-anonymity range
// endpoint. Only the first five hex characters of the password's SHA-1
// leave the process; the response is a newline-separated list of
// SUFFIX:COUNT pairs to match locally.
type HIBPRangeProvider struct {
	baseURL string
	client  *http.Client
}

// NewHIBPRangeProvider creates a range-query provider against baseURL
// (e.g. "https://api.pwnedpasswords.com/range"). A nil client uses a
// default with a 10s timeout.
func NewHIBPRangeProvider(baseURL string, client *http.Client) *HIBPRangeProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HIBPRangeProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Check describes the check operation and its observable behavior.
//
// Check may return an error when input validation, dependency calls, or security checks fail.
// Check does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *HIBPRangeProvider) Check(ctx context.Context, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+prefix, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBreachUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBreachUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: range query status %d", ErrBreachUnavailable, resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		candidate, _, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.EqualFold(candidate, suffix) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBreachUnavailable, err)
	}

	return false, nil
}

var _ BreachProvider = (*StaticBreachList)(nil)
var _ BreachProvider = (*HIBPRangeProvider)(nil)

func mapBreachError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return ErrBreachTimeout
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, ErrBreachUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrBreachUnavailable, err)
	}
}
