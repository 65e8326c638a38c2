package models

// ModelInfo describes one entry of the model catalog shown in the picker
type ModelInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

var availableModels = []ModelInfo{
	{ID: "gpt4o", Title: "GPT-4o", Desc: "High-capacity LLM"},
	{ID: "gpt4o-mini", Title: "GPT-4o Mini", Desc: "Fast, cheap LLM"},
	{ID: "whisper", Title: "Whisper", Desc: "Audio → Text"},
	{ID: "gpt4o-vision", Title: "Vision", Desc: "Image understanding"},
}

// AvailableModels returns the built-in model catalog
func AvailableModels() []ModelInfo {
	out := make([]ModelInfo, len(availableModels))
	copy(out, availableModels)
	return out
}

// KnownModel reports whether id is part of the catalog
func KnownModel(id string) bool {
	for _, m := range availableModels {
		if m.ID == id {
			return true
		}
	}
	return false
}
