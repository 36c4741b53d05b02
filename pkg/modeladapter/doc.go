// Package modeladapter defines the Completer interface and the embeddable
// [ModelAdapter] base used by concrete chat endpoint adapters.
//
// ModelAdapter carries the model name, base URL, HTTP client, extra headers
// and the token usage of the last call. It contains no endpoint-specific wire
// format; adapters such as [github.com/germanamz/directive/pkg/providers/ollama]
// embed it and define their own Complete method.
package modeladapter
