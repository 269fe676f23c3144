package homepage

import (
	"os"
	"regexp"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

var templateVariable = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader handles loading and parsing of Homepage services.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new Homepage loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the services.yaml file
func (l *Loader) Load() (ServicesConfig, error) {
	errb := oops.In("homepage").With("path", l.filePath)

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, errb.Wrapf(err, "read services file")
	}

	config, err := Parse(data)
	if err != nil {
		return nil, errb.Wrap(err)
	}
	return config, nil
}

// Parse decodes services.yaml content
func Parse(data []byte) (ServicesConfig, error) {
	data = stripTemplateVariables(data)

	var config ServicesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, oops.In("homepage").Wrapf(err, "parse services yaml")
	}
	return config, nil
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVariable.ReplaceAll(data, []byte(`""`))
}
