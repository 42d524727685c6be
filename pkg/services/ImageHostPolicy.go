package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/adampresley/adamgokit/slices"
)

var (
	ErrImageHostNotAllowed = fmt.Errorf("image host not allowed")
)

/*
DefaultImageHosts are the photo CDN, its alternate subdomain and the
object-storage host.
*/
var DefaultImageHosts = []string{
	"images.unsplash.com",
	"source.unsplash.com",
	"f000.backblazeb2.com",
}

type ImageHostPolicy struct {
	hosts []string
}

func NewImageHostPolicy(hosts []string) ImageHostPolicy {
	cleaned := []string{}

	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))

		if h != "" {
			cleaned = append(cleaned, h)
		}
	}

	return ImageHostPolicy{
		hosts: cleaned,
	}
}

/*
ParseImageHosts splits a comma separated host list, as it comes from
configuration.
*/
func ParseImageHosts(value string) []string {
	if strings.TrimSpace(value) == "" {
		return DefaultImageHosts
	}

	return strings.Split(value, ",")
}

func (p ImageHostPolicy) Hosts() []string {
	return p.hosts
}

// Check parses rawURL and fails unless it is http(s) on an allowed host.
func (p ImageHostPolicy) Check(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)

	if err != nil {
		return nil, fmt.Errorf("invalid image URL '%s': %w", rawURL, err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("%w: scheme '%s'", ErrImageHostNotAllowed, u.Scheme)
	}

	host := strings.ToLower(u.Host)

	if slices.IsInSlice(host, p.hosts) || slices.IsInSlice(strings.ToLower(u.Hostname()), p.hosts) {
		return u, nil
	}

	return nil, fmt.Errorf("%w: '%s'", ErrImageHostNotAllowed, u.Host)
}
