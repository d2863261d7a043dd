package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/sirupsen/logrus"
)

const (
	certsCacheKey     = "homenest:signer-certs"
	defaultCertsTTL   = time.Hour
	memcachedFallback = 5 * time.Minute
)

// certSet is a parsed snapshot of the provider's signing keys, keyed by kid.
type certSet struct {
	keys map[string]*rsa.PublicKey
}

// KeySource resolves the provider's token-signing keys with a two-level
// cache: a local in-process cache first, then an optional shared memcached,
// then the provider's x509 endpoint.
type KeySource struct {
	certsURL   string
	httpClient *http.Client
	local      *ccache.Cache[*certSet]
	memcached  *memcache.Client
}

// NewKeySource builds a key source for the given certificate endpoint.
// memcachedHost may be empty, in which case only the local cache is used.
func NewKeySource(certsURL, memcachedHost string) *KeySource {
	ks := &KeySource{
		certsURL:   certsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		local:      ccache.New(ccache.Configure[*certSet]().MaxSize(10)),
	}
	if memcachedHost != "" {
		ks.memcached = memcache.New(memcachedHost)
	}
	return ks
}

// Key returns the public key for a token's kid header.
func (ks *KeySource) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	set, err := ks.certs(ctx)
	if err != nil {
		return nil, err
	}
	key, ok := set.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no signer certificate for kid %q", kid)
	}
	return key, nil
}

func (ks *KeySource) certs(ctx context.Context) (*certSet, error) {
	if item := ks.local.Get(certsCacheKey); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	if ks.memcached != nil {
		if cached, err := ks.memcached.Get(certsCacheKey); err == nil {
			set, err := parseCerts(cached.Value)
			if err == nil {
				ks.local.Set(certsCacheKey, set, memcachedFallback)
				return set, nil
			}
			logrus.WithError(err).Warn("discarding unparseable signer certificates from memcached")
		} else if err != memcache.ErrCacheMiss {
			logrus.WithError(err).Warn("memcached lookup for signer certificates failed")
		}
	}

	return ks.fetch(ctx)
}

func (ks *KeySource) fetch(ctx context.Context) (*certSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ks.certsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ks.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching signer certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signer certificate endpoint returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	set, err := parseCerts(body)
	if err != nil {
		return nil, err
	}

	ttl := maxAge(resp.Header.Get("Cache-Control"))
	ks.local.Set(certsCacheKey, set, ttl)
	if ks.memcached != nil {
		item := &memcache.Item{
			Key:        certsCacheKey,
			Value:      body,
			Expiration: int32(ttl / time.Second),
		}
		if err := ks.memcached.Set(item); err != nil {
			logrus.WithError(err).Warn("failed to store signer certificates in memcached")
		}
	}
	return set, nil
}

// parseCerts decodes the provider's kid -> PEM certificate map.
func parseCerts(data []byte) (*certSet, error) {
	var pems map[string]string
	if err := json.Unmarshal(data, &pems); err != nil {
		return nil, fmt.Errorf("decoding signer certificates: %w", err)
	}
	if len(pems) == 0 {
		return nil, fmt.Errorf("signer certificate payload is empty")
	}

	keys := make(map[string]*rsa.PublicKey, len(pems))
	for kid, certPEM := range pems {
		block, _ := pem.Decode([]byte(certPEM))
		if block == nil {
			return nil, fmt.Errorf("signer certificate %q is not PEM", kid)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing signer certificate %q: %w", kid, err)
		}
		key, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("signer certificate %q does not carry an RSA key", kid)
		}
		keys[kid] = key
	}
	return &certSet{keys: keys}, nil
}

// maxAge extracts the caching lifetime the endpoint granted.
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if val, ok := strings.CutPrefix(directive, "max-age="); ok {
			if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}
	return defaultCertsTTL
}
