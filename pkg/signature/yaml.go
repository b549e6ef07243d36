package signature

// yamlSignature is the intermediate struct for parsing signature files.
type yamlSignature struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Pattern          string   `yaml:"pattern"`
	Description      string   `yaml:"description,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
	References       []string `yaml:"references,omitempty"`
	Categories       []string `yaml:"categories,omitempty"`
}

// yamlSignaturesFile represents the top-level structure of a signature file.
type yamlSignaturesFile struct {
	Signatures []yamlSignature `yaml:"signatures"`
}
