package theme

var tokyoNight = Theme{
	Name:                "tokyonight",
	Primary:             c("#82aaff", "#2e7de9"),
	Secondary:           c("#c099ff", "#9854f1"),
	Accent:              c("#ff966c", "#b15c00"),
	Error:               c("#ff757f", "#f52a65"),
	Warning:             c("#ffc777", "#8c6c3e"),
	Success:             c("#c3e88d", "#587539"),
	Info:                c("#7dcfff", "#0db9d7"),
	Text:                c("#c8d3f5", "#3760bf"),
	TextMuted:           c("#636da6", "#848cb5"),
	TextEmphasized:      c("#ffc777", "#8c6c3e"),
	Background:          c("#222436", "#e1e2e7"),
	BackgroundSecondary: c("#2f334d", "#c8c9ce"),
	BackgroundDarker:    c("#1e2030", "#d5d6db"),
	BorderNormal:        c("#3b4261", "#a8aecb"),
	BorderFocused:       c("#82aaff", "#2e7de9"),
	BorderDim:           c("#292e42", "#c8c9ce"),
}

var catppuccin = Theme{
	Name:                "catppuccin",
	Primary:             c("#89b4fa", "#1e66f5"),
	Secondary:           c("#cba6f7", "#8839ef"),
	Accent:              c("#fab387", "#fe640b"),
	Error:               c("#f38ba8", "#d20f39"),
	Warning:             c("#f9e2af", "#df8e1d"),
	Success:             c("#a6e3a1", "#40a02b"),
	Info:                c("#89b4fa", "#1e66f5"),
	Text:                c("#cdd6f4", "#4c4f69"),
	TextMuted:           c("#6c7086", "#9ca0b0"),
	TextEmphasized:      c("#f5e0dc", "#dc8a78"),
	Background:          c("#1e1e2e", "#eff1f5"),
	BackgroundSecondary: c("#313244", "#e6e9ef"),
	BackgroundDarker:    c("#181825", "#dce0e8"),
	BorderNormal:        c("#6c7086", "#9ca0b0"),
	BorderFocused:       c("#89b4fa", "#1e66f5"),
	BorderDim:           c("#45475a", "#ccd0da"),
}

var dracula = Theme{
	Name:                "dracula",
	Primary:             c("#bd93f9", "#7e57c2"),
	Secondary:           c("#8be9fd", "#0097a7"),
	Accent:              c("#f1fa8c", "#f9a825"),
	Error:               c("#ff5555", "#d32f2f"),
	Warning:             c("#ffb86c", "#ef6c00"),
	Success:             c("#50fa7b", "#388e3c"),
	Info:                c("#8be9fd", "#1976d2"),
	Text:                c("#f8f8f2", "#212121"),
	TextMuted:           c("#6272a4", "#757575"),
	TextEmphasized:      c("#f8f8f2", "#000000"),
	Background:          c("#282a36", "#ffffff"),
	BackgroundSecondary: c("#44475a", "#e0e0e0"),
	BackgroundDarker:    c("#1e1f29", "#bdbdbd"),
	BorderNormal:        c("#6272a4", "#bdbdbd"),
	BorderFocused:       c("#bd93f9", "#7e57c2"),
	BorderDim:           c("#44475a", "#e0e0e0"),
}

var gruvbox = Theme{
	Name:                "gruvbox",
	Primary:             c("#83a598", "#076678"),
	Secondary:           c("#d3869b", "#8f3f71"),
	Accent:              c("#fabd2f", "#b57614"),
	Error:               c("#fb4934", "#9d0006"),
	Warning:             c("#fe8019", "#af3a03"),
	Success:             c("#b8bb26", "#79740e"),
	Info:                c("#83a598", "#076678"),
	Text:                c("#ebdbb2", "#3c3836"),
	TextMuted:           c("#a89984", "#7c6f64"),
	TextEmphasized:      c("#fabd2f", "#b57614"),
	Background:          c("#282828", "#fbf1c7"),
	BackgroundSecondary: c("#504945", "#ebdbb2"),
	BackgroundDarker:    c("#1d2021", "#d5c4a1"),
	BorderNormal:        c("#504945", "#bdae93"),
	BorderFocused:       c("#83a598", "#076678"),
	BorderDim:           c("#3c3836", "#d5c4a1"),
}

func init() {
	Register(tokyoNight)
	Register(catppuccin)
	Register(dracula)
	Register(gruvbox)
}
