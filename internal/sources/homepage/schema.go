package homepage

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ServicesConfig is the content of a Homepage services.yaml, in file order.
//
// Homepage writes groups as a list of single-key maps:
//
//	- Media:
//	    - Jellyfin:
//	        href: https://jellyfin.lan
type ServicesConfig []Group

// Group is a named list of services
type Group struct {
	Name     string
	Services []Service
}

// Service is one named entry of a group
type Service struct {
	Name  string
	Props ServiceProps
}

// ServiceProps contains the actual service properties
type ServiceProps struct {
	Href        string                 `yaml:"href"`
	Icon        string                 `yaml:"icon,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Target      string                 `yaml:"target,omitempty"`
	Ping        string                 `yaml:"ping,omitempty"`
	SiteMonitor string                 `yaml:"siteMonitor,omitempty"`
	Widget      map[string]interface{} `yaml:"widget,omitempty"`
}

// UnmarshalYAML walks the nodes by hand: decoding into Go maps would lose the file order.
func (c *ServicesConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: services must be a list of groups", node.Line)
	}

	groups := make(ServicesConfig, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: group must be a mapping", item.Line)
		}
		for i := 0; i+1 < len(item.Content); i += 2 {
			group := Group{Name: item.Content[i].Value}
			if err := decodeServices(item.Content[i+1], &group.Services); err != nil {
				return err
			}
			groups = append(groups, group)
		}
	}

	*c = groups
	return nil
}

// decodeServices appends the services of a group node to out.
// Nested groups (a service whose value is itself a list) are flattened.
func decodeServices(node *yaml.Node, out *[]Service) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: group content must be a list", node.Line)
	}

	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: service must be a mapping", item.Line)
		}
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, value := item.Content[i], item.Content[i+1]

			if value.Kind == yaml.SequenceNode {
				if err := decodeServices(value, out); err != nil {
					return err
				}
				continue
			}

			var props ServiceProps
			if err := value.Decode(&props); err != nil {
				return fmt.Errorf("service %q: %w", key.Value, err)
			}
			*out = append(*out, Service{Name: key.Value, Props: props})
		}
	}
	return nil
}
