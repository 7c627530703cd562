package page

import "net/url"

// RequestUrl is the URL of an HTTP request.
//
// RequestUrl and ResponseUrl are distinct types on purpose: serialization
// preserves which of the two a value is, and the type names are part of the
// on-disk fixture format (e.g. "ResponseUrl.txt").
type RequestUrl string

// ResponseUrl is the URL of an HTTP response, after all redirects.
type ResponseUrl string

func (u RequestUrl) String() string { return string(u) }

func (u ResponseUrl) String() string { return string(u) }

// Join resolves ref against u and returns it as a request URL.
func (u RequestUrl) Join(ref string) (RequestUrl, error) {
	return joinURL(string(u), ref)
}

// Join resolves ref against u. The result is a RequestUrl: a joined URL is
// something to be requested, not something already downloaded.
func (u ResponseUrl) Join(ref string) (RequestUrl, error) {
	return joinURL(string(u), ref)
}

func joinURL(base, ref string) (RequestUrl, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return RequestUrl(b.ResolveReference(r).String()), nil
}
