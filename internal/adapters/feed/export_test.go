package feed

// NewFetcherWithClient exports newFetcherWithClient for tests.
var NewFetcherWithClient = newFetcherWithClient
