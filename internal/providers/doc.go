// Package providers implements the Generator interface for each supported
// external feedback model.
//
// Supported providers: OpenAI (chat completions) and Ollama / LM Studio for
// local models. Both share the OpenAI wire format and a common retry helper
// with exponential back-off for rate-limit and server errors. Base URLs can
// be redirected via environment variables so tests run against local
// httptest servers without live API calls.
//
// Use [New] to obtain a Generator by provider name and model string. A
// provider failure is never fatal to the pipeline: the feedback engine falls
// back to its template path per file.
package providers
