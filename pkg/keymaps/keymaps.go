package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":       {"ctrl+b", "show/hide commands"},
	"QuitApp":        {"q", "quit"},
	"SwitchPane":     {"tab", "switch between notes and todos"},
	"AddNote":        {"a,alt+n", "add a note for today"},
	"AddTodo":        {"t,alt+t", "add a todo"},
	"EditEntry":      {"enter,e", "edit selected entry"},
	"DeleteEntry":    {"d", "delete selected entry"},
	"ToggleDone":     {"space", "toggle todo done"},
	"ToggleCollapse": {"z", "collapse/expand week or todo list"},
	"SearchNotes":    {"/,ctrl+f", "search notes"},
	"AttachPhoto":    {"p", "attach a photo to the note"},
	"RemovePhoto":    {"P", "remove the note's photo"},
	"ExportData":     {"x", "export everything to a file"},
	"ImportData":     {"i", "import from a file"},
	"ToggleTheme":    {"m", "toggle light/dark theme"},
}

type KeyMap struct {
	ShowHelp       key.Binding
	QuitApp        key.Binding
	SwitchPane     key.Binding
	AddNote        key.Binding
	AddTodo        key.Binding
	EditEntry      key.Binding
	DeleteEntry    key.Binding
	ToggleDone     key.Binding
	ToggleCollapse key.Binding
	SearchNotes    key.Binding
	AttachPhoto    key.Binding
	RemovePhoto    key.Binding
	ExportData     key.Binding
	ImportData     key.Binding
	ToggleTheme    key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[action]; exists && override != "" {
			keyStr = override
		}

		switch action {
		case "ShowHelp":
			km.ShowHelp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "QuitApp":
			km.QuitApp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "SwitchPane":
			km.SwitchPane = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddNote":
			km.AddNote = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddTodo":
			km.AddTodo = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "EditEntry":
			km.EditEntry = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "DeleteEntry":
			km.DeleteEntry = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleDone":
			km.ToggleDone = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleCollapse":
			km.ToggleCollapse = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "SearchNotes":
			km.SearchNotes = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AttachPhoto":
			km.AttachPhoto = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "RemovePhoto":
			km.RemovePhoto = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ExportData":
			km.ExportData = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ImportData":
			km.ImportData = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleTheme":
			km.ToggleTheme = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
