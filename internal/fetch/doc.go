// Package fetch is the transport used to download storefront pages.
//
// A Fetcher performs exactly one GET per call and returns the body as text.
// It never retries and never inspects the status code: a page that carries
// the wanted data is useful no matter how the server labelled the response.
package fetch
