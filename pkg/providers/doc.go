// Package providers groups the concrete chat endpoint adapters.
//
// Each sub-package embeds [github.com/germanamz/directive/pkg/modeladapter.ModelAdapter]
// and implements [github.com/germanamz/directive/pkg/modeladapter.Completer]
// for one wire format:
//   - [github.com/germanamz/directive/pkg/providers/ollama] - Ollama /api/chat, non-streaming
package providers
