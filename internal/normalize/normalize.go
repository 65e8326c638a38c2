// Package normalize reshapes arbitrary webhook payloads into a uniform
// list of per-model result records.
//
// The upstream automation graph has no fixed output schema, so Normalize
// is a total best-effort adapter: it never fails and always yields
// records with all fields populated. The only exception is an empty
// object or array, which yields zero records.
package normalize

import (
	"ai-multi/internal/jsonx"
	"ai-multi/internal/models"
)

// Sentinels used when the input carries no model identifier.
const (
	ModelUnknown = "unknown"
	ModelResult  = "result"
)

// responseKeys and latencyKeys are the recognized field synonyms, tried
// in order. A falsy value falls through to the next synonym, so a
// present-but-zero latency is indistinguishable from an absent one.
// Known quirk of the upstream contract, kept on purpose.
var (
	responseKeys = []string{"response", "text"}
	latencyKeys  = []string{"latency", "latencyMs", "latency_ms"}
)

// Normalize converts any decoded JSON value into an ordered sequence of
// result records. Input order is preserved; nothing is filtered or
// deduplicated.
func Normalize(v jsonx.Value) []models.ResultRecord {
	// One level of envelope unwrap, never recursive.
	if wrapped, ok := v.Get("responses"); ok {
		v = wrapped
	}

	switch v.Kind() {
	case jsonx.KindObject:
		out := make([]models.ResultRecord, 0, v.Len())
		for _, m := range v.Members() {
			out = append(out, recordForModel(m.Key, m.Value))
		}
		return out

	case jsonx.KindArray:
		out := make([]models.ResultRecord, 0, v.Len())
		for _, item := range v.Items() {
			out = append(out, recordForElement(item))
		}
		return out

	default:
		return []models.ResultRecord{{
			Model:    ModelUnknown,
			Response: v.Text(),
			Latency:  0,
		}}
	}
}

// recordForModel builds the record for one member of a model-keyed object.
func recordForModel(model string, data jsonx.Value) models.ResultRecord {
	if data.Kind() != jsonx.KindObject {
		return models.ResultRecord{Model: model, Response: data.Text(), Latency: 0}
	}
	return models.ResultRecord{
		Model:    model,
		Response: responseText(data),
		Latency:  latencyMillis(data),
	}
}

// recordForElement builds the record for one element of a result list.
func recordForElement(item jsonx.Value) models.ResultRecord {
	if item.Kind() != jsonx.KindObject {
		return models.ResultRecord{Model: ModelResult, Response: item.Text(), Latency: 0}
	}

	model := ModelUnknown
	if mv, ok := item.Get("model"); ok {
		model = mv.Text()
	}
	return models.ResultRecord{
		Model:    model,
		Response: responseText(item),
		Latency:  latencyMillis(item),
	}
}

// responseText picks the display text for one per-model object: the
// first truthy response synonym written as read, else a pretty-printed
// rendering of the whole object.
func responseText(data jsonx.Value) string {
	for _, key := range responseKeys {
		field, ok := data.Get(key)
		if !ok || !field.Truthy() {
			continue
		}
		if field.Kind() == jsonx.KindString {
			return field.Str()
		}
		// Non-string response values are carried over as-is, without
		// coercion beyond their JSON encoding.
		return field.JSONString()
	}
	return data.Pretty()
}

// latencyMillis extracts the latency of one per-model object. The first
// truthy synonym wins; a truthy non-number still terminates the chain
// but contributes 0.
func latencyMillis(data jsonx.Value) float64 {
	for _, key := range latencyKeys {
		field, ok := data.Get(key)
		if !ok || !field.Truthy() {
			continue
		}
		if field.Kind() != jsonx.KindNumber {
			return 0
		}
		ms, err := field.Num().Float64()
		if err != nil || ms < 0 {
			return 0
		}
		return ms
	}
	return 0
}
