package ui

import "dailyfocus/pkg/store"

// Theme holds the palette for one theme preference.
type Theme struct {
	Name string

	BorderColor  string
	AccentColor  string
	NormalText   string
	MutedText    string
	SelectedText string
	SelectedBg   string
	ErrorColor   string
	DoneColor    string
	LinkColor    string
}

func darkTheme() Theme {
	return Theme{
		Name:         store.ThemeDark,
		BorderColor:  "240",
		AccentColor:  "205",
		NormalText:   "252",
		MutedText:    "244",
		SelectedText: "229",
		SelectedBg:   "57",
		ErrorColor:   "9",
		DoneColor:    "242",
		LinkColor:    "39",
	}
}

func lightTheme() Theme {
	return Theme{
		Name:         store.ThemeLight,
		BorderColor:  "250",
		AccentColor:  "162",
		NormalText:   "235",
		MutedText:    "246",
		SelectedText: "230",
		SelectedBg:   "98",
		ErrorColor:   "124",
		DoneColor:    "248",
		LinkColor:    "26",
	}
}

// ThemeByName resolves a stored theme preference to a palette,
// defaulting to dark.
func ThemeByName(name string) Theme {
	if name == store.ThemeLight {
		return lightTheme()
	}
	return darkTheme()
}

// Next returns the other theme.
func (t Theme) Next() Theme {
	if t.Name == store.ThemeDark {
		return lightTheme()
	}
	return darkTheme()
}
