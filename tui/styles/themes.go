package styles

// Themes is the built-in Base16 scheme catalog, keyed by slug.
var Themes = map[string]Theme{
	"solarized-dark": {
		Name:   "Solarized Dark",
		Base00: "#002b36", Base01: "#073642", Base02: "#586e75", Base03: "#657b83",
		Base04: "#839496", Base05: "#93a1a1", Base06: "#eee8d5", Base07: "#fdf6e3",
		Base08: "#dc322f", Base09: "#cb4b16", Base0A: "#b58900", Base0B: "#859900",
		Base0C: "#2aa198", Base0D: "#268bd2", Base0E: "#6c71c4", Base0F: "#d33682",
	},
	"solarized-light": {
		Name:   "Solarized Light",
		Base00: "#fdf6e3", Base01: "#eee8d5", Base02: "#93a1a1", Base03: "#839496",
		Base04: "#657b83", Base05: "#586e75", Base06: "#073642", Base07: "#002b36",
		Base08: "#dc322f", Base09: "#cb4b16", Base0A: "#b58900", Base0B: "#859900",
		Base0C: "#2aa198", Base0D: "#268bd2", Base0E: "#6c71c4", Base0F: "#d33682",
	},
	"dracula": {
		Name:   "Dracula",
		Base00: "#282936", Base01: "#3a3c4e", Base02: "#4d4f68", Base03: "#626483",
		Base04: "#62d6e8", Base05: "#e9e9f4", Base06: "#f1f2f8", Base07: "#f7f7fb",
		Base08: "#ea51b2", Base09: "#b45bcf", Base0A: "#00f769", Base0B: "#ebff87",
		Base0C: "#a1efe4", Base0D: "#62d6e8", Base0E: "#b45bcf", Base0F: "#00f769",
	},
	"nord": {
		Name:   "Nord",
		Base00: "#2e3440", Base01: "#3b4252", Base02: "#434c5e", Base03: "#4c566a",
		Base04: "#d8dee9", Base05: "#e5e9f0", Base06: "#eceff4", Base07: "#8fbcbb",
		Base08: "#bf616a", Base09: "#d08770", Base0A: "#ebcb8b", Base0B: "#a3be8c",
		Base0C: "#88c0d0", Base0D: "#81a1c1", Base0E: "#b48ead", Base0F: "#5e81ac",
	},
	"gruvbox-dark-hard": {
		Name:   "Gruvbox Dark Hard",
		Base00: "#1d2021", Base01: "#3c3836", Base02: "#504945", Base03: "#665c54",
		Base04: "#bdae93", Base05: "#d5c4a1", Base06: "#ebdbb2", Base07: "#fbf1c7",
		Base08: "#fb4934", Base09: "#fe8019", Base0A: "#fabd2f", Base0B: "#b8bb26",
		Base0C: "#8ec07c", Base0D: "#83a598", Base0E: "#d3869b", Base0F: "#d65d0e",
	},
	"gruvbox-dark-medium": {
		Name:   "Gruvbox Dark Medium",
		Base00: "#282828", Base01: "#3c3836", Base02: "#504945", Base03: "#665c54",
		Base04: "#bdae93", Base05: "#d5c4a1", Base06: "#ebdbb2", Base07: "#fbf1c7",
		Base08: "#fb4934", Base09: "#fe8019", Base0A: "#fabd2f", Base0B: "#b8bb26",
		Base0C: "#8ec07c", Base0D: "#83a598", Base0E: "#d3869b", Base0F: "#d65d0e",
	},
	"gruvbox-light-hard": {
		Name:   "Gruvbox Light Hard",
		Base00: "#f9f5d7", Base01: "#ebdbb2", Base02: "#d5c4a1", Base03: "#bdae93",
		Base04: "#665c54", Base05: "#504945", Base06: "#3c3836", Base07: "#282828",
		Base08: "#9d0006", Base09: "#af3a03", Base0A: "#b57614", Base0B: "#79740e",
		Base0C: "#427b58", Base0D: "#076678", Base0E: "#8f3f71", Base0F: "#d65d0e",
	},
	"monokai": {
		Name:   "Monokai",
		Base00: "#272822", Base01: "#383830", Base02: "#49483e", Base03: "#75715e",
		Base04: "#a59f85", Base05: "#f8f8f2", Base06: "#f5f4f1", Base07: "#f9f8f5",
		Base08: "#f92672", Base09: "#fd971f", Base0A: "#f4bf75", Base0B: "#a6e22e",
		Base0C: "#a1efe4", Base0D: "#66d9ef", Base0E: "#ae81ff", Base0F: "#cc6633",
	},
	"tomorrow": {
		Name:   "Tomorrow",
		Base00: "#ffffff", Base01: "#e0e0e0", Base02: "#d6d6d6", Base03: "#8e908c",
		Base04: "#969896", Base05: "#4d4d4c", Base06: "#282a2e", Base07: "#1d1f21",
		Base08: "#c82829", Base09: "#f5871f", Base0A: "#eab700", Base0B: "#718c00",
		Base0C: "#3e999f", Base0D: "#4271ae", Base0E: "#8959a8", Base0F: "#a3685a",
	},
	"tomorrow-night": {
		Name:   "Tomorrow Night",
		Base00: "#1d1f21", Base01: "#282a2e", Base02: "#373b41", Base03: "#969896",
		Base04: "#b4b7b4", Base05: "#c5c8c6", Base06: "#e0e0e0", Base07: "#ffffff",
		Base08: "#cc6666", Base09: "#de935f", Base0A: "#f0c674", Base0B: "#b5bd68",
		Base0C: "#8abeb7", Base0D: "#81a2be", Base0E: "#b294bb", Base0F: "#a3685a",
	},
	"ocean": {
		Name:   "Ocean",
		Base00: "#2b303b", Base01: "#343d46", Base02: "#4f5b66", Base03: "#65737e",
		Base04: "#a7adba", Base05: "#c0c5ce", Base06: "#dfe1e8", Base07: "#eff1f5",
		Base08: "#bf616a", Base09: "#d08770", Base0A: "#ebcb8b", Base0B: "#a3be8c",
		Base0C: "#96b5b4", Base0D: "#8fa1b3", Base0E: "#b48ead", Base0F: "#ab7967",
	},
	"oceanicnext": {
		Name:   "OceanicNext",
		Base00: "#1b2b34", Base01: "#343d46", Base02: "#4f5b66", Base03: "#65737e",
		Base04: "#a7adba", Base05: "#c0c5ce", Base06: "#cdd3de", Base07: "#d8dee9",
		Base08: "#ec5f67", Base09: "#f99157", Base0A: "#fac863", Base0B: "#99c794",
		Base0C: "#5fb3b3", Base0D: "#6699cc", Base0E: "#c594c5", Base0F: "#ab7967",
	},
	"onedark": {
		Name:   "OneDark",
		Base00: "#282c34", Base01: "#353b45", Base02: "#3e4451", Base03: "#545862",
		Base04: "#565c64", Base05: "#abb2bf", Base06: "#b6bdca", Base07: "#c8ccd4",
		Base08: "#e06c75", Base09: "#d19a66", Base0A: "#e5c07b", Base0B: "#98c379",
		Base0C: "#56b6c2", Base0D: "#61afef", Base0E: "#c678dd", Base0F: "#be5046",
	},
	"github": {
		Name:   "GitHub",
		Base00: "#ffffff", Base01: "#f5f5f5", Base02: "#c8c8fa", Base03: "#969896",
		Base04: "#e8e8e8", Base05: "#333333", Base06: "#ffffff", Base07: "#ffffff",
		Base08: "#ed6a43", Base09: "#0086b3", Base0A: "#795da3", Base0B: "#183691",
		Base0C: "#183691", Base0D: "#795da3", Base0E: "#a71d5d", Base0F: "#333333",
	},
	"material": {
		Name:   "Material",
		Base00: "#263238", Base01: "#2e3c43", Base02: "#314549", Base03: "#546e7a",
		Base04: "#b2ccd6", Base05: "#eeffff", Base06: "#eeffff", Base07: "#ffffff",
		Base08: "#f07178", Base09: "#f78c6c", Base0A: "#ffcb6b", Base0B: "#c3e88d",
		Base0C: "#89ddff", Base0D: "#82aaff", Base0E: "#c792ea", Base0F: "#ff5370",
	},
	"material-darker": {
		Name:   "Material Darker",
		Base00: "#212121", Base01: "#303030", Base02: "#353535", Base03: "#4a4a4a",
		Base04: "#b2ccd6", Base05: "#eeffff", Base06: "#eeffff", Base07: "#ffffff",
		Base08: "#f07178", Base09: "#f78c6c", Base0A: "#ffcb6b", Base0B: "#c3e88d",
		Base0C: "#89ddff", Base0D: "#82aaff", Base0E: "#c792ea", Base0F: "#ff5370",
	},
	"catppuccin-mocha": {
		Name:   "Catppuccin Mocha",
		Base00: "#1e1e2e", Base01: "#181825", Base02: "#313244", Base03: "#45475a",
		Base04: "#585b70", Base05: "#cdd6f4", Base06: "#f5e0dc", Base07: "#b4befe",
		Base08: "#f38ba8", Base09: "#fab387", Base0A: "#f9e2af", Base0B: "#a6e3a1",
		Base0C: "#94e2d5", Base0D: "#89b4fa", Base0E: "#cba6f7", Base0F: "#f2cdcd",
	},
	"catppuccin-latte": {
		Name:   "Catppuccin Latte",
		Base00: "#eff1f5", Base01: "#e6e9ef", Base02: "#ccd0da", Base03: "#bcc0cc",
		Base04: "#acb0be", Base05: "#4c4f69", Base06: "#dc8a78", Base07: "#7287fd",
		Base08: "#d20f39", Base09: "#fe640b", Base0A: "#df8e1d", Base0B: "#40a02b",
		Base0C: "#179299", Base0D: "#1e66f5", Base0E: "#8839ef", Base0F: "#dd7878",
	},
	"tokyo-night-dark": {
		Name:   "Tokyo Night Dark",
		Base00: "#1a1b26", Base01: "#16161e", Base02: "#2f3549", Base03: "#444b6a",
		Base04: "#787c99", Base05: "#a9b1d6", Base06: "#cbccd1", Base07: "#d5d6db",
		Base08: "#c0caf5", Base09: "#a9b1d6", Base0A: "#0db9d7", Base0B: "#9ece6a",
		Base0C: "#b4f9f8", Base0D: "#2ac3de", Base0E: "#bb9af7", Base0F: "#f7768e",
	},
	"zenburn": {
		Name:   "Zenburn",
		Base00: "#383838", Base01: "#404040", Base02: "#606060", Base03: "#6f6f6f",
		Base04: "#808080", Base05: "#dcdccc", Base06: "#c0c0c0", Base07: "#ffffff",
		Base08: "#dca3a3", Base09: "#dfaf8f", Base0A: "#e0cf9f", Base0B: "#5f7f5f",
		Base0C: "#93e0e3", Base0D: "#7cb8bb", Base0E: "#dc8cc3", Base0F: "#000000",
	},
	"eighties": {
		Name:   "Eighties",
		Base00: "#2d2d2d", Base01: "#393939", Base02: "#515151", Base03: "#747369",
		Base04: "#a09f93", Base05: "#d3d0c8", Base06: "#e8e6df", Base07: "#f2f0ec",
		Base08: "#f2777a", Base09: "#f99157", Base0A: "#ffcc66", Base0B: "#99cc99",
		Base0C: "#66cccc", Base0D: "#6699cc", Base0E: "#cc99cc", Base0F: "#d27b53",
	},
	"mocha": {
		Name:   "Mocha",
		Base00: "#3b3228", Base01: "#534636", Base02: "#645240", Base03: "#7e705a",
		Base04: "#b8afad", Base05: "#d0c8c6", Base06: "#e9e1dd", Base07: "#f5eeeb",
		Base08: "#cb6077", Base09: "#d28b71", Base0A: "#f4bc87", Base0B: "#beb55b",
		Base0C: "#7bbda4", Base0D: "#8ab3b5", Base0E: "#a89bb9", Base0F: "#bb9584",
	},
	"railscasts": {
		Name:   "Railscasts",
		Base00: "#2b2b2b", Base01: "#272935", Base02: "#3a4055", Base03: "#5a647e",
		Base04: "#d4cfc9", Base05: "#e6e1dc", Base06: "#f4f1ed", Base07: "#f9f7f3",
		Base08: "#da4939", Base09: "#cc7833", Base0A: "#ffc66d", Base0B: "#a5c261",
		Base0C: "#519f50", Base0D: "#6d9cbe", Base0E: "#b6b3eb", Base0F: "#bc9458",
	},
	"twilight": {
		Name:   "Twilight",
		Base00: "#1e1e1e", Base01: "#323537", Base02: "#464b50", Base03: "#5f5a60",
		Base04: "#838184", Base05: "#a7a7a7", Base06: "#c3c3c3", Base07: "#ffffff",
		Base08: "#cf6a4c", Base09: "#cda869", Base0A: "#f9ee98", Base0B: "#8f9d6a",
		Base0C: "#afc4db", Base0D: "#7587a6", Base0E: "#9b859d", Base0F: "#9b703f",
	},
	"seti": {
		Name:   "Seti",
		Base00: "#151718", Base01: "#282a2b", Base02: "#3b758c", Base03: "#41535b",
		Base04: "#43a5d5", Base05: "#d6d6d6", Base06: "#eeeeee", Base07: "#ffffff",
		Base08: "#cd3f45", Base09: "#db7b55", Base0A: "#e6cd69", Base0B: "#9fca56",
		Base0C: "#55dbbe", Base0D: "#55b5db", Base0E: "#a074c4", Base0F: "#8a553f",
	},
	"rose-pine": {
		Name:   "Rose Pine",
		Base00: "#191724", Base01: "#1f1d2e", Base02: "#26233a", Base03: "#6e6a86",
		Base04: "#908caa", Base05: "#e0def4", Base06: "#e0def4", Base07: "#524f67",
		Base08: "#eb6f92", Base09: "#f6c177", Base0A: "#ebbcba", Base0B: "#31748f",
		Base0C: "#9ccfd8", Base0D: "#c4a7e7", Base0E: "#f6c177", Base0F: "#524f67",
	},
}
