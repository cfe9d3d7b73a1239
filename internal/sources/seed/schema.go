package seed

// ToolEntry represents one starter tool in the seed YAML
type ToolEntry struct {
	Name        string   `yaml:"name"`
	Link        string   `yaml:"link"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Keywords    []string `yaml:"keywords"`
	Price       int      `yaml:"price"`
}

// Config is the root structure of the seed file:
//
//	tools:
//	  - name: ChatGPT
//	    link: https://chat.openai.com
//	    keywords: [ai, chat]
type Config struct {
	Tools []ToolEntry `yaml:"tools"`
}
